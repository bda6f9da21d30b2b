// ABOUTME: Tests for the TalentID API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSearchCompanies_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathSearchCompanies {
			t.Errorf("expected path %s, got %s", PathSearchCompanies, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", got)
		}
		if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("expected UUID request id, got %q", r.Header.Get(RequestIDHeader))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []Company{{CompanyName: "Acme Corp"}, {CompanyName: "Globex"}},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	companies, err := c.SearchCompanies(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(companies) != 2 {
		t.Fatalf("expected 2 companies, got %d", len(companies))
	}
	if companies[0].CompanyName != "Acme Corp" {
		t.Errorf("expected Acme Corp first, got %s", companies[0].CompanyName)
	}
}

func TestSearchCompanies_NullData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	companies, err := New(server.URL).SearchCompanies(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if companies == nil || len(companies) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", companies)
	}
}

func TestSearchCompanies_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "jwt expired"})
	}))
	defer server.Close()

	_, err := New(server.URL).SearchCompanies(context.Background(), "tok")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("401 should not be classified as a network error")
	}
	if got := MessageOf(err, "fallback"); got != "jwt expired" {
		t.Errorf("expected server message, got %q", got)
	}
}

func TestCompany_EscapesName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/company/Acme%20Corp" {
			t.Errorf("expected escaped path, got %s", r.URL.EscapedPath())
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("company lookup must not send credentials")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": CompanyDetail{CompanyName: "Acme Corp", Rating: 4.5},
		})
	}))
	defer server.Close()

	detail, err := New(server.URL).Company(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", detail.Rating)
	}
}

func TestCompany_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "Company not found"})
	}))
	defer server.Close()

	_, err := New(server.URL).Company(context.Background(), "Unknown Co")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLogin_TokenInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "jane@example.com" || creds.Password != "pw" {
			t.Errorf("unexpected credentials %+v", creds)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "abc"})
	}))
	defer server.Close()

	token, err := New(server.URL).Login(context.Background(), Credentials{Email: "jane@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "abc" {
		t.Errorf("expected token abc, got %s", token)
	}
}

func TestLogin_TokenInCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: TokenCookie, Value: "from-cookie"})
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()

	token, err := New(server.URL).Login(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "from-cookie" {
		t.Errorf("expected cookie token, got %s", token)
	}
}

func TestLogin_NoToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()

	_, err := New(server.URL).Login(context.Background(), Credentials{Email: "a@b.co", Password: "pw"})
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestAuthBaseURL(t *testing.T) {
	companies := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("candidate endpoint hit the companies server: %s", r.URL.Path)
	}))
	defer companies.Close()

	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathForgotEmail {
			t.Errorf("expected %s, got %s", PathForgotEmail, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer auth.Close()

	c := New(companies.URL, WithAuthBaseURL(auth.URL))
	if err := c.RequestPasswordReset(context.Background(), "a@b.co"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProfileAndLogoutPaths(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		json.NewEncoder(w).Encode(Profile{Data: ProfileData{Name: "Jane"}})
	}))
	defer server.Close()

	c := New(server.URL, WithProfilePath("/me"), WithLogoutPath("/bye"))
	profile, err := c.Profile(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.DisplayName() != "Jane" {
		t.Errorf("expected Jane, got %s", profile.DisplayName())
	}
	if err := c.Logout(context.Background(), "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 || paths[0] != "GET /me" || paths[1] != "POST /bye" {
		t.Errorf("unexpected request paths %v", paths)
	}
}

func TestResetPassword_ServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ResetRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.ConfirmPasswordValue != "newpass" {
			t.Errorf("expected confirmPasswordValue to be sent, got %+v", req)
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Message: "OTP not verified"})
	}))
	defer server.Close()

	err := New(server.URL).ResetPassword(context.Background(), ResetRequest{
		Email: "a@b.co", Password: "newpass", ConfirmPasswordValue: "newpass",
	})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork classification for 400, got %v", err)
	}
	if got := MessageOf(err, "Reset failed"); got != "OTP not verified" {
		t.Errorf("expected server message, got %q", got)
	}
}

func TestConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.SearchCompanies(context.Background(), "tok")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
	if got := MessageOf(err, "Failed to fetch companies"); got != "Failed to fetch companies" {
		t.Errorf("expected fallback message, got %q", got)
	}
}

func TestContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).SearchCompanies(ctx, "tok")
	if err == nil {
		t.Fatal("expected error for timed out context, got nil")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := New(server.URL).Logout(ctx, "tok"); err == nil {
		t.Error("expected error for canceled context, got nil")
	}
}

func TestProfileDisplayDefaults(t *testing.T) {
	var p *Profile
	if p.DisplayName() != "User" {
		t.Errorf("expected User for nil profile, got %s", p.DisplayName())
	}
	if p.DisplayEmail() != "" {
		t.Errorf("expected empty email for nil profile, got %s", p.DisplayEmail())
	}
}
