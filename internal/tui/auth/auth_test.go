// ABOUTME: Tests for the login and signup screens
// ABOUTME: Validates submit messages, failure handling, and local validation

package auth

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Talentid15/Candidate/internal/forms"
)

func TestLoginPrefillsEmail(t *testing.T) {
	l := NewLogin("jane@example.com")

	if l.Email() != "jane@example.com" {
		t.Errorf("expected prefilled email, got %q", l.Email())
	}
	if !strings.Contains(l.View(), "Candidate Login") {
		t.Error("expected login title")
	}
}

func TestLoginSubmitEmitsCredentials(t *testing.T) {
	l := NewLogin(" jane@example.com ")
	l.password = "secret1"

	cmd := l.submit()
	msg, ok := cmd().(LoginSubmittedMsg)
	if !ok {
		t.Fatal("expected LoginSubmittedMsg")
	}
	if msg.Credentials.Email != "jane@example.com" {
		t.Errorf("expected trimmed email, got %q", msg.Credentials.Email)
	}
	if msg.Credentials.Password != "secret1" {
		t.Errorf("expected password, got %q", msg.Credentials.Password)
	}
	if !l.Pending() {
		t.Error("expected pending after submit")
	}
	if !strings.Contains(l.View(), "Logging in...") {
		t.Error("expected pending label")
	}
}

func TestLoginIgnoresKeysWhilePending(t *testing.T) {
	l := NewLogin("")
	l.submit()

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd != nil {
		t.Error("expected keys ignored while pending")
	}
}

func TestLoginFailKeepsEmail(t *testing.T) {
	l := NewLogin("jane@example.com")
	l.password = "wrong"
	l.submit()

	l.Fail("Invalid credentials")

	if l.Pending() {
		t.Error("expected pending cleared")
	}
	if l.Email() != "jane@example.com" {
		t.Errorf("expected email kept, got %q", l.Email())
	}
	if l.password != "" {
		t.Error("expected password cleared")
	}
	if !strings.Contains(l.View(), "Invalid credentials") {
		t.Error("expected error in view")
	}
}

func TestLoginNotice(t *testing.T) {
	l := NewLogin("")
	l.SetNotice("Password updated successfully! Please log in.")

	if !strings.Contains(l.View(), "Password updated successfully!") {
		t.Error("expected notice in view")
	}
}

func TestSignupSubmitValid(t *testing.T) {
	s := NewSignup()
	s.name, s.email, s.password = "Jane Doe", "jane@example.com", "secret1"

	cmd := s.submit()
	msg, ok := cmd().(SignupSubmittedMsg)
	if !ok {
		t.Fatal("expected SignupSubmittedMsg")
	}
	want := forms.SignupForm{Name: "Jane Doe", Email: "jane@example.com", Password: "secret1"}
	if msg.Form != want {
		t.Errorf("expected %+v, got %+v", want, msg.Form)
	}
}

func TestSignupSubmitInvalid(t *testing.T) {
	s := NewSignup()
	s.name, s.email, s.password = "Jane Doe", "jane@example.com", "abc"

	cmd := s.submit()
	if cmd != nil {
		if _, ok := cmd().(SignupSubmittedMsg); ok {
			t.Fatal("expected no submit for a short password")
		}
	}
	if !strings.Contains(s.View(), "Password must be at least 6 characters") {
		t.Errorf("expected length error in view\nView:\n%s", s.View())
	}
}
