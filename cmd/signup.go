// ABOUTME: Signup command for the candidate CLI
// ABOUTME: Checks signup details locally; accounts are created by TalentID

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Talentid15/Candidate/internal/forms"
)

// MsgSignupValid is printed when the details pass validation
const MsgSignupValid = "Signup details look good. Log in with your TalentID account once it is active."

var (
	signupName  string
	signupEmail string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Check signup details",
	Long: `Check a full name, email and password against the signup rules. There is
no signup endpoint, so nothing is sent to the server.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), int(os.Stdin.Fd()))
		exitCode := runSignup(p, cmd.OutOrStdout(), signupName, signupEmail)
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupName, "name", "", "Full name (prompted when empty)")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email (prompted when empty)")
}

// runSignup prompts for missing details and validates them
func runSignup(p *prompter, w io.Writer, name, email string) int {
	var err error
	if name == "" {
		if name, err = p.Line("Full name"); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	if email == "" {
		if email, err = p.Line("Email"); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	password, err := p.Secret("Password")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	form := forms.SignupForm{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := forms.Validate(form); err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(w, "Error: %s\n", ve.First())
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return exitError
	}

	slog.Debug("Signup details validated", "email", form.Email)
	fmt.Fprintln(w, MsgSignupValid)
	return exitOK
}
