// ABOUTME: Tests for the password recovery popup
// ABOUTME: Drives each step against the in-process fake backend

package wizard

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/fakeapi"
	"github.com/Talentid15/Candidate/internal/recovery"
)

func newTestWizard(t *testing.T) (*Wizard, *recovery.Flow, *fakeapi.Server) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	flow := recovery.New(client.New(srv.URL))
	return New(context.Background(), flow), flow, srv
}

// run executes a submit and feeds its result back into the wizard
func run(t *testing.T, w *Wizard) tea.Msg {
	t.Helper()
	msg := w.submit()()
	_, cmd := w.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestWizardStartsAtEmailStep(t *testing.T) {
	w, _, _ := newTestWizard(t)

	if w.Step() != 1 {
		t.Errorf("expected step 1, got %d", w.Step())
	}
	if !strings.Contains(w.View(), "Step 1: Email") {
		t.Error("expected email step title in view")
	}
}

func TestWizardCompletesRecovery(t *testing.T) {
	w, flow, srv := newTestWizard(t)

	w.email = fakeapi.DefaultEmail
	run(t, w)
	if w.Step() != 2 {
		t.Fatalf("expected step 2 after email, got %d (error %q)", w.Step(), flow.Error())
	}

	w.otp = fakeapi.DefaultOTP
	run(t, w)
	if w.Step() != 3 {
		t.Fatalf("expected step 3 after OTP, got %d (error %q)", w.Step(), flow.Error())
	}

	w.password, w.confirm = "brandnew", "brandnew"
	msg := run(t, w)
	done, ok := msg.(RecoveryDoneMsg)
	if !ok {
		t.Fatalf("expected RecoveryDoneMsg, got %T", msg)
	}
	if done.Notice != recovery.MsgResetDone {
		t.Errorf("expected notice %q, got %q", recovery.MsgResetDone, done.Notice)
	}
	if srv.Password(fakeapi.DefaultEmail) != "brandnew" {
		t.Error("expected backend password to change")
	}
}

func TestWizardShowsServerError(t *testing.T) {
	w, flow, _ := newTestWizard(t)

	w.email = fakeapi.DefaultEmail
	run(t, w)

	w.otp = "000000"
	run(t, w)

	if w.Step() != 2 {
		t.Errorf("expected to stay on step 2, got %d", w.Step())
	}
	if flow.Error() != "Invalid OTP" {
		t.Errorf("expected Invalid OTP, got %q", flow.Error())
	}
	if !strings.Contains(w.View(), "Invalid OTP") {
		t.Error("expected error in view")
	}
}

func TestWizardIgnoresKeysWhilePending(t *testing.T) {
	w, _, _ := newTestWizard(t)

	w.email = fakeapi.DefaultEmail
	submit := w.submit()
	if !w.Pending() {
		t.Fatal("expected pending after submit")
	}
	if !strings.Contains(w.View(), "Sending OTP...") {
		t.Error("expected pending label in view")
	}

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Error("expected keys to be ignored while pending")
	}

	w.Update(submit())
	if w.Pending() {
		t.Error("expected pending to clear after the result")
	}
}

func TestWizardEscCancels(t *testing.T) {
	w, flow, _ := newTestWizard(t)

	w.email = fakeapi.DefaultEmail
	run(t, w)

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(RecoveryCancelledMsg); !ok {
		t.Error("expected RecoveryCancelledMsg")
	}
	if flow.Stage() != recovery.Idle {
		t.Errorf("expected flow back at idle, got %s", flow.Stage())
	}
}

func TestWizardDropsCancelledResult(t *testing.T) {
	w, flow, _ := newTestWizard(t)

	w.email = fakeapi.DefaultEmail
	w.submit()
	w.Update(tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd := w.Update(stepResultMsg{stage: recovery.Idle, err: context.Canceled})
	if cmd != nil {
		t.Error("expected cancelled result to be dropped")
	}
	if flow.Stage() != recovery.Idle {
		t.Errorf("expected idle, got %s", flow.Stage())
	}
}

func TestRenderProgressWidth(t *testing.T) {
	w, _, _ := newTestWizard(t)
	w.SetWidth(100)

	for _, line := range strings.Split(w.renderProgress(), "\n") {
		if got := lipgloss.Width(line); got != 92 {
			t.Errorf("expected progress line width 92, got %d: %q", got, line)
		}
	}
}
