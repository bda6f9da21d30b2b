// ABOUTME: Forgot-password state machine: email, then OTP, then new password
// ABOUTME: Advances strictly forward, one request at a time, cancel resets to Idle

package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/forms"
)

// Stage is the step the flow is waiting on
type Stage int

const (
	Idle Stage = iota
	AwaitingOTP
	AwaitingReset
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingOTP:
		return "awaiting-otp"
	case AwaitingReset:
		return "awaiting-reset"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// User-facing messages
const (
	MsgSendOTPFailed = "Failed to send OTP"
	MsgInvalidOTP    = "Invalid OTP"
	MsgResetFailed   = "Reset failed"
	MsgResetDone     = "Password updated successfully! Please log in."
)

var (
	// ErrInFlight is returned when a submit arrives while a request is pending
	ErrInFlight = errors.New("recovery: request already in flight")
	// ErrWrongStage is returned when a submit does not match the current stage
	ErrWrongStage = errors.New("recovery: submit does not match current stage")
)

// API is the backend surface of the flow
type API interface {
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, req client.ResetRequest) error
}

// Flow is safe for concurrent use; submits are serialized by a gate that
// rejects rather than queues.
type Flow struct {
	api API

	mu        sync.Mutex
	stage     Stage
	email     string
	otp       string
	loading   bool
	err       string
	completed bool
	gen       uint64
}

// New creates a flow in the Idle stage
func New(api API) *Flow {
	return &Flow{api: api}
}

func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Email is the address captured by SubmitEmail
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Loading reports whether a request is pending, including one abandoned by Cancel
func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Error is the message of the last failed step, empty after a success
func (f *Flow) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Completed reports whether the last run ended with a successful reset
func (f *Flow) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// SubmitEmail requests an OTP for email. Idle → AwaitingOTP.
func (f *Flow) SubmitEmail(ctx context.Context, email string) error {
	return f.submit(ctx, step{
		want:     Idle,
		form:     forms.EmailForm{Email: email},
		fallback: MsgSendOTPFailed,
		call: func(ctx context.Context, _ string) error {
			return f.api.RequestPasswordReset(ctx, email)
		},
		onSuccess: func() {
			f.email = email
			f.completed = false
			f.stage = AwaitingOTP
		},
	})
}

// SubmitOTP verifies otp for the captured email. AwaitingOTP → AwaitingReset.
func (f *Flow) SubmitOTP(ctx context.Context, otp string) error {
	return f.submit(ctx, step{
		want:     AwaitingOTP,
		form:     forms.OTPForm{OTP: otp},
		fallback: MsgInvalidOTP,
		call: func(ctx context.Context, email string) error {
			return f.api.VerifyOTP(ctx, email, otp)
		},
		onSuccess: func() {
			f.otp = otp
			f.stage = AwaitingReset
		},
	})
}

// SubmitReset sets the new password. AwaitingReset → Idle with Completed true.
func (f *Flow) SubmitReset(ctx context.Context, password, confirm string) error {
	return f.submit(ctx, step{
		want:     AwaitingReset,
		form:     forms.ResetForm{Password: password, Confirm: confirm},
		fallback: MsgResetFailed,
		call: func(ctx context.Context, email string) error {
			return f.api.ResetPassword(ctx, client.ResetRequest{
				Email:                email,
				Password:             password,
				ConfirmPasswordValue: confirm,
			})
		},
		onSuccess: func() {
			f.resetLocked()
			f.completed = true
		},
	})
}

// Cancel discards everything and returns to Idle. A response still in flight
// is ignored when it arrives, and the gate stays closed until it does.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	f.completed = false
}

type step struct {
	want      Stage
	form      any
	fallback  string
	call      func(ctx context.Context, email string) error
	onSuccess func()
}

func (f *Flow) submit(ctx context.Context, s step) error {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return ErrInFlight
	}
	if f.stage != s.want {
		current := f.stage
		f.mu.Unlock()
		return fmt.Errorf("%w: at %s, submit expects %s", ErrWrongStage, current, s.want)
	}
	if err := forms.Validate(s.form); err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			f.err = ve.First()
		}
		f.mu.Unlock()
		return err
	}
	f.loading = true
	f.err = ""
	gen := f.gen
	email := f.email
	f.mu.Unlock()

	err := s.call(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if f.gen != gen {
		slog.Debug("Discarding recovery response after cancel", "stage", s.want)
		return context.Canceled
	}
	if err != nil {
		f.err = client.MessageOf(err, s.fallback)
		slog.Warn("Password recovery step failed", "stage", s.want, "error", err)
		return fmt.Errorf("%s: %w", s.want, err)
	}
	s.onSuccess()
	slog.Info("Password recovery advanced", "from", s.want, "to", f.stage)
	return nil
}

func (f *Flow) resetLocked() {
	f.stage = Idle
	f.email = ""
	f.otp = ""
	f.err = ""
	f.gen++
}
