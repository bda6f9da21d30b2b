// ABOUTME: Login, logout and whoami commands for the candidate CLI
// ABOUTME: Persist or clear the session the TUI restores on start

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/forms"
	"github.com/Talentid15/Candidate/internal/session"
)

var (
	loginEmail         string
	loginPasswordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in with your TalentID candidate account. The session is stored in the
config directory and reused by the other commands and the TUI.

The password is prompted for without echo, or read from the first line of
stdin with --password-stdin.`,
	Args: cobra.NoArgs,
	Run: command(func(ctx context.Context, rt *runtime, cmd *cobra.Command, args []string) int {
		p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), int(os.Stdin.Fd()))
		creds, err := readCredentials(p, loginEmail, loginPasswordStdin)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
			return exitError
		}
		return runLogin(ctx, rt, cmd.OutOrStdout(), creds)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Args:  cobra.NoArgs,
	Run: command(func(ctx context.Context, rt *runtime, cmd *cobra.Command, args []string) int {
		return runLogout(ctx, rt, cmd.OutOrStdout())
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in candidate",
	Long:  `Fetch the profile of the logged-in candidate. An expired session is cleared.`,
	Args:  cobra.NoArgs,
	Run: command(func(ctx context.Context, rt *runtime, cmd *cobra.Command, args []string) int {
		return runWhoami(ctx, rt, cmd.OutOrStdout())
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email (prompted when empty)")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "Read the password from stdin")
}

// readCredentials fills in whatever the flags did not provide
func readCredentials(p *prompter, email string, passwordStdin bool) (client.Credentials, error) {
	var err error
	if email == "" && !passwordStdin {
		if email, err = p.Line("Email"); err != nil {
			return client.Credentials{}, err
		}
	}

	var password string
	if passwordStdin {
		password, err = p.readLine()
	} else {
		password, err = p.Secret("Password")
	}
	if err != nil {
		return client.Credentials{}, fmt.Errorf("reading password: %w", err)
	}
	return client.Credentials{Email: strings.TrimSpace(email), Password: password}, nil
}

// runLogin logs in and returns exit code
func runLogin(ctx context.Context, rt *runtime, w io.Writer, creds client.Credentials) int {
	if err := rt.session.Login(ctx, creds); err != nil {
		return reportSessionError(w, rt.session, err)
	}

	s := rt.session.Snapshot()
	if IsJSONOutput() {
		fmt.Fprintln(w, formatProfileJSON(s.User))
	} else {
		fmt.Fprintf(w, "Welcome, %s\n", s.User.DisplayName())
	}
	return exitOK
}

// runLogout clears the session even when the server call fails
func runLogout(ctx context.Context, rt *runtime, w io.Writer) int {
	rt.restore(ctx)
	if !rt.session.Snapshot().IsAuthenticated {
		fmt.Fprintln(w, "Not logged in")
		return exitOK
	}

	if err := rt.session.Logout(ctx); err != nil {
		fmt.Fprintf(w, "Logged out locally (%s)\n", client.MessageOf(err, session.MsgLogoutFailed))
		return exitOK
	}
	fmt.Fprintln(w, "Logged out")
	return exitOK
}

// runWhoami prints the profile of the stored session
func runWhoami(ctx context.Context, rt *runtime, w io.Writer) int {
	rt.restore(ctx)
	if !rt.session.Snapshot().IsAuthenticated {
		fmt.Fprintln(w, "Not logged in. Run `candidate login` first.")
		return exitFailure
	}

	profile, err := rt.session.FetchProfile(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(w, "Session expired. Run `candidate login` again.")
			return exitFailure
		}
		fmt.Fprintf(w, "Error: %s\n", client.MessageOf(err, session.MsgProfileFailed))
		return exitError
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatProfileJSON(profile))
	} else {
		fmt.Fprintln(w, formatProfileHuman(profile))
	}
	return exitOK
}

// reportSessionError prints the session's error and maps err to an exit code
func reportSessionError(w io.Writer, sess *session.Manager, err error) int {
	msg := sess.Snapshot().Error
	if msg == "" {
		msg = err.Error()
	}
	fmt.Fprintf(w, "Error: %s\n", msg)

	switch {
	case forms.IsValidation(err):
		return exitError
	case errors.Is(err, client.ErrUnauthorized):
		return exitFailure
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return exitFailure
	}
	return exitError
}

// formatProfileHuman formats a profile for human readability
func formatProfileHuman(p *client.Profile) string {
	var phone string
	if p != nil {
		phone = p.Data.Phone
	}
	return fmt.Sprintf(`Name:  %s
Email: %s
Phone: %s`, p.DisplayName(), orNA(p.DisplayEmail()), orNA(phone))
}

// formatProfileJSON formats a profile as JSON
func formatProfileJSON(p *client.Profile) string {
	output := map[string]string{
		"name":  p.DisplayName(),
		"email": p.DisplayEmail(),
	}
	if p != nil && p.Data.Phone != "" {
		output["phone"] = p.Data.Phone
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
