// ABOUTME: Password recovery command for the candidate CLI
// ABOUTME: Walks the email, OTP and new-password steps on the terminal

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Talentid15/Candidate/internal/forms"
	"github.com/Talentid15/Candidate/internal/recovery"
)

// maxRecoveryAttempts bounds the retries of the OTP and reset steps
const maxRecoveryAttempts = 3

// MsgRecoveryDone is printed once the new password is set
const MsgRecoveryDone = "Password updated. Log in with your new password."

var recoverEmail string

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Reset a forgotten password",
	Long: `Reset a forgotten password in three steps: an OTP is sent to your email,
you enter it, then you choose a new password of at least 6 characters.

The OTP and password steps may be retried up to 3 times.`,
	Args: cobra.NoArgs,
	Run: command(func(ctx context.Context, rt *runtime, cmd *cobra.Command, args []string) int {
		p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), int(os.Stdin.Fd()))
		return runRecover(ctx, rt.recovery, p, cmd.OutOrStdout(), recoverEmail)
	}),
}

func init() {
	rootCmd.AddCommand(recoverCmd)
	recoverCmd.Flags().StringVar(&recoverEmail, "email", "", "Account email (prompted when empty)")
}

// runRecover drives flow to completion and returns exit code
func runRecover(ctx context.Context, flow *recovery.Flow, p *prompter, w io.Writer, email string) int {
	defer func() {
		if !flow.Completed() {
			flow.Cancel()
		}
	}()

	var err error
	if email == "" {
		if email, err = p.Line("Email"); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
	}
	if err := flow.SubmitEmail(ctx, email); err != nil {
		return recoveryFailed(w, flow, err)
	}
	fmt.Fprintf(w, "OTP sent to %s\n", flow.Email())

	code := retry(w, flow, func() error {
		otp, err := p.Line("OTP")
		if err != nil {
			return err
		}
		return flow.SubmitOTP(ctx, otp)
	})
	if code != exitOK {
		return code
	}

	code = retry(w, flow, func() error {
		password, err := p.Secret("New password")
		if err != nil {
			return err
		}
		confirm, err := p.Secret("Confirm password")
		if err != nil {
			return err
		}
		return flow.SubmitReset(ctx, password, confirm)
	})
	if code != exitOK {
		return code
	}

	fmt.Fprintln(w, MsgRecoveryDone)
	return exitOK
}

// retry runs step until it succeeds, input runs out, or the attempts are used
func retry(w io.Writer, flow *recovery.Flow, step func() error) int {
	var err error
	for range maxRecoveryAttempts {
		if err = step(); err == nil {
			return exitOK
		}
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			break
		}
		fmt.Fprintf(w, "Error: %s\n", recoveryMessage(flow, err))
	}
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "Password recovery cancelled")
		return exitError
	}
	return exitFailure
}

func recoveryFailed(w io.Writer, flow *recovery.Flow, err error) int {
	fmt.Fprintf(w, "Error: %s\n", recoveryMessage(flow, err))
	if forms.IsValidation(err) {
		return exitError
	}
	return exitFailure
}

// recoveryMessage prefers the flow's display message over the raw error
func recoveryMessage(flow *recovery.Flow, err error) string {
	if msg := flow.Error(); msg != "" {
		return msg
	}
	return err.Error()
}
