// ABOUTME: Tests for the login, logout and whoami commands
// ABOUTME: Runs them against the fake backend and checks output and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/fakeapi"
)

func defaultCreds() client.Credentials {
	return client.Credentials{Email: fakeapi.DefaultEmail, Password: fakeapi.DefaultPassword}
}

// loginIn logs in through a runtime on dir so later runtimes restore it
func loginIn(t *testing.T, srv *fakeapi.Server, dir string) {
	t.Helper()
	var buf bytes.Buffer
	if code := runLogin(context.Background(), newTestRuntime(t, srv, dir), &buf, defaultCreds()); code != 0 {
		t.Fatalf("login failed with exit code %d: %s", code, buf.String())
	}
}

func TestLoginCommand_Success(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	rt := newTestRuntime(t, srv, t.TempDir())

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), rt, &buf, defaultCreds())

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Welcome, "+fakeapi.DefaultName) {
		t.Errorf("expected greeting, got: %s", buf.String())
	}
}

func TestLoginCommand_JSON(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	rt := newTestRuntime(t, srv, t.TempDir())

	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), rt, &buf, defaultCreds()); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	var parsed map[string]string
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["email"] != fakeapi.DefaultEmail {
		t.Errorf("expected email in JSON, got %v", parsed["email"])
	}
}

func TestLoginCommand_WrongPassword(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	rt := newTestRuntime(t, srv, t.TempDir())

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), rt, &buf, client.Credentials{Email: fakeapi.DefaultEmail, Password: "wrong-pw"})

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Invalid email or password") {
		t.Errorf("expected server message, got: %s", buf.String())
	}
	if rt.session.Snapshot().IsAuthenticated {
		t.Error("expected session to stay unauthenticated")
	}
}

func TestLoginCommand_InvalidEmailSkipsNetwork(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	rt := newTestRuntime(t, srv, t.TempDir())

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), rt, &buf, client.Credentials{Email: "not-an-email", Password: "pw"})

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Enter a valid email address") {
		t.Errorf("expected validation message, got: %s", buf.String())
	}
	if calls := srv.Calls(client.PathLogin); calls != 0 {
		t.Errorf("expected no login request, got %d", calls)
	}
}

func TestLoginCommand_ConnectionError(t *testing.T) {
	srv := fakeapi.New()
	rt := newTestRuntime(t, srv, t.TempDir())
	srv.Close()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), rt, &buf, defaultCreds()); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestReadCredentials_Prompts(t *testing.T) {
	var prompts bytes.Buffer
	p := newPrompter(strings.NewReader("jane@example.com\nsecret1\n"), &prompts, -1)

	creds, err := readCredentials(p, "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Email != "jane@example.com" || creds.Password != "secret1" {
		t.Errorf("unexpected credentials %+v", creds)
	}
	if !strings.Contains(prompts.String(), "Email: ") || !strings.Contains(prompts.String(), "Password: ") {
		t.Errorf("expected both prompts, got %q", prompts.String())
	}
}

func TestReadCredentials_PasswordStdin(t *testing.T) {
	var prompts bytes.Buffer
	p := newPrompter(strings.NewReader("secret1"), &prompts, -1)

	creds, err := readCredentials(p, " jane@example.com ", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.Email != "jane@example.com" || creds.Password != "secret1" {
		t.Errorf("unexpected credentials %+v", creds)
	}
	if prompts.Len() != 0 {
		t.Errorf("expected no prompts with --password-stdin, got %q", prompts.String())
	}
}

func TestReadCredentials_EmptyInput(t *testing.T) {
	p := newPrompter(strings.NewReader(""), &bytes.Buffer{}, -1)
	if _, err := readCredentials(p, "jane@example.com", false); err == nil {
		t.Error("expected error when stdin is empty")
	}
}

func TestWhoamiCommand_RestoresSession(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	dir := t.TempDir()
	loginIn(t, srv, dir)

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), newTestRuntime(t, srv, dir), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	output := buf.String()
	for _, want := range []string{"Name:  " + fakeapi.DefaultName, "Email: " + fakeapi.DefaultEmail, "Phone: +1 555 0199"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), newTestRuntime(t, srv, t.TempDir()), &buf); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("expected not logged in message, got: %s", buf.String())
	}
}

func TestWhoamiCommand_ExpiredSessionIsCleared(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	dir := t.TempDir()
	loginIn(t, srv, dir)
	srv.RevokeAll()

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), newTestRuntime(t, srv, dir), &buf); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "Session expired") {
		t.Errorf("expected session expired message, got: %s", buf.String())
	}

	buf.Reset()
	runWhoami(context.Background(), newTestRuntime(t, srv, dir), &buf)
	if !strings.Contains(buf.String(), "Not logged in") {
		t.Errorf("expected stored session to be gone, got: %s", buf.String())
	}
}

func TestWhoamiCommand_ServerError(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	dir := t.TempDir()
	loginIn(t, srv, dir)
	srv.FailWith(client.DefaultProfilePath, http.StatusInternalServerError)

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), newTestRuntime(t, srv, dir), &buf); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}

func TestLogoutCommand(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	dir := t.TempDir()
	loginIn(t, srv, dir)

	var buf bytes.Buffer
	if code := runLogout(context.Background(), newTestRuntime(t, srv, dir), &buf); code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if strings.TrimSpace(buf.String()) != "Logged out" {
		t.Errorf("expected Logged out, got: %s", buf.String())
	}
	if calls := srv.Calls(client.DefaultLogoutPath); calls != 1 {
		t.Errorf("expected one logout request, got %d", calls)
	}

	buf.Reset()
	if code := runWhoami(context.Background(), newTestRuntime(t, srv, dir), &buf); code != 1 {
		t.Errorf("expected whoami to fail after logout, got exit code %d", code)
	}
}

func TestLogoutCommand_ServerFailureStillClears(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	dir := t.TempDir()
	loginIn(t, srv, dir)
	srv.FailWith(client.DefaultLogoutPath, http.StatusInternalServerError)

	var buf bytes.Buffer
	if code := runLogout(context.Background(), newTestRuntime(t, srv, dir), &buf); code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Logged out locally") {
		t.Errorf("expected local logout notice, got: %s", buf.String())
	}

	rt := newTestRuntime(t, srv, dir)
	rt.restore(context.Background())
	if rt.session.Snapshot().IsAuthenticated {
		t.Error("expected stored session to be cleared")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()

	var buf bytes.Buffer
	if code := runLogout(context.Background(), newTestRuntime(t, srv, t.TempDir()), &buf); code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if calls := srv.Calls(client.DefaultLogoutPath); calls != 0 {
		t.Errorf("expected no logout request, got %d", calls)
	}
}

func TestFormatProfileHuman_Defaults(t *testing.T) {
	output := formatProfileHuman(nil)
	if !strings.Contains(output, "Name:  User") || !strings.Contains(output, "Email: N/A") {
		t.Errorf("expected defaults for a missing profile, got: %s", output)
	}
}
