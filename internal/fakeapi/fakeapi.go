// ABOUTME: In-process fake of the TalentID backend for tests
// ABOUTME: Serves every candidate endpoint with bearer auth backed by HS256 JWTs

package fakeapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/golang-jwt/jwt/v5"
)

// Fixture credentials
const (
	DefaultEmail    = "jane@example.com"
	DefaultPassword = "secret1"
	DefaultName     = "Jane Doe"
	DefaultOTP      = "123456"
)

// Server is a fake backend configured through its setters; all state is
// guarded by mu.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	companies []client.Company
	details   map[string]client.CompanyDetail
	passwords map[string]string
	profiles  map[string]client.ProfileData
	otps      map[string]string
	verified  map[string]bool
	tokens    map[string]string
	calls     map[string]int
	key       []byte

	tokenTTL      time.Duration
	tokenInCookie bool
	failStatus    map[string]int
}

// New starts a fake backend loaded with default fixtures
func New() *Server {
	s := &Server{
		companies: []client.Company{
			{ID: "c1", CompanyName: "Acme Corp", Industry: "Manufacturing"},
			{ID: "c2", CompanyName: "Globex", Industry: "Energy"},
			{ID: "c3", CompanyName: "Initech", Industry: "Software"},
			{ID: "c4", CompanyName: "Umbrella Health", Industry: "Healthcare"},
		},
		details: map[string]client.CompanyDetail{
			"Acme Corp": {
				CompanyName:      "Acme Corp",
				Logo:             "https://cdn.example.com/acme.png",
				Address:          "1 Road Runner Way, Phoenix",
				Website:          "https://acme.example.com",
				About:            "Acme builds everything.",
				ShortDescription: "Everything company",
				ContactPhone:     "+1 555 0100",
				ContactEmail:     "careers@acme.example.com",
				Rating:           4.6,
				Industry:         "Manufacturing",
				EmployeeCount:    1250,
				FoundedYear:      1949,
			},
			"Globex": {
				CompanyName: "Globex",
				Industry:    "Energy",
			},
		},
		passwords: map[string]string{DefaultEmail: DefaultPassword},
		profiles: map[string]client.ProfileData{
			DefaultEmail: {ID: "u1", Name: DefaultName, Email: DefaultEmail, Phone: "+1 555 0199"},
		},
		otps:       map[string]string{},
		verified:   map[string]bool{},
		tokens:     map[string]string{},
		calls:      map[string]int{},
		key:        []byte("fakeapi-signing-key"),
		tokenTTL:   time.Hour,
		failStatus: map[string]int{},
	}
	s.Server = httptest.NewServer(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+client.PathLogin, s.count(s.handleLogin))
	mux.HandleFunc("GET "+client.DefaultProfilePath, s.count(s.requireAuth(s.handleProfile)))
	mux.HandleFunc("POST "+client.DefaultLogoutPath, s.count(s.requireAuth(s.handleLogout)))
	mux.HandleFunc("GET "+client.PathSearchCompanies, s.count(s.requireAuth(s.handleSearchCompanies)))
	mux.HandleFunc("GET "+client.PathCompany+"{name}", s.count(s.handleCompany))
	mux.HandleFunc("POST "+client.PathForgotEmail, s.count(s.handleForgotEmail))
	mux.HandleFunc("POST "+client.PathVerifyOTP, s.count(s.handleVerifyOTP))
	mux.HandleFunc("POST "+client.PathForgotPassword, s.count(s.handleForgotPassword))
	return mux
}

// Calls returns how many requests reached the given path
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// SetCompanies replaces the company directory
func (s *Server) SetCompanies(companies []client.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = companies
}

// SetDetail registers career page data for a company
func (s *Server) SetDetail(name string, detail client.CompanyDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[name] = detail
}

// SetTokenInCookie makes login return the token as a cookie instead of JSON
func (s *Server) SetTokenInCookie(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenInCookie = v
}

// FailWith makes every request to path answer with status until cleared with 0
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failStatus, path)
		return
	}
	s.failStatus[path] = status
}

// RevokeAll invalidates every issued token
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// Password returns the current password for email
func (s *Server) Password(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passwords[email]
}

// IssueToken mints a token for email that expires after ttl. A negative ttl
// yields an already expired token.
func (s *Server) IssueToken(email string, ttl time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(email, ttl)
}

func (s *Server) issueLocked(email string, ttl time.Duration) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        fmt.Sprintf("%d", now.UnixNano()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		panic(err)
	}
	s.tokens[signed] = email
	return signed
}

func (s *Server) count(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[r.URL.Path]++
		status, fail := s.failStatus[r.URL.Path]
		s.mu.Unlock()

		if fail {
			writeJSONError(w, http.StatusText(status), status)
			return
		}
		next(w, r)
	}
}

// requireAuth rejects requests without a valid, unrevoked bearer token
func (s *Server) requireAuth(next func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeJSONError(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
			return s.key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			slog.Debug("fakeapi: rejected token", "error", err)
			writeJSONError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		s.mu.Lock()
		email, ok := s.tokens[token]
		s.mu.Unlock()
		if !ok {
			writeJSONError(w, "Session expired", http.StatusUnauthorized)
			return
		}
		next(w, r, email)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds client.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	password, ok := s.passwords[creds.Email]
	if !ok || password != creds.Password {
		s.mu.Unlock()
		writeJSONError(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	token := s.issueLocked(creds.Email, s.tokenTTL)
	inCookie := s.tokenInCookie
	s.mu.Unlock()

	if inCookie {
		http.SetCookie(w, &http.Cookie{Name: client.TokenCookie, Value: token, Path: "/", HttpOnly: true})
		writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful", "token": token})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, email string) {
	s.mu.Lock()
	profile := s.profiles[email]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, client.Profile{Data: profile})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, email string) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleSearchCompanies(w http.ResponseWriter, r *http.Request, email string) {
	s.mu.Lock()
	companies := append([]client.Company(nil), s.companies...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": companies})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.mu.Lock()
	detail, ok := s.details[name]
	s.mu.Unlock()
	if !ok {
		writeJSONError(w, "Company not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": detail})
}

func (s *Server) handleForgotEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeJSONError(w, "Email is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.passwords[body.Email]; !ok {
		writeJSONError(w, "No candidate registered with this email", http.StatusNotFound)
		return
	}
	s.otps[body.Email] = DefaultOTP
	delete(s.verified, body.Email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	expected, ok := s.otps[body.Email]
	if !ok || expected != body.OTP {
		writeJSONError(w, "Invalid OTP", http.StatusBadRequest)
		return
	}
	s.verified[body.Email] = true
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP verified"})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body client.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.verified[body.Email] {
		writeJSONError(w, "OTP not verified", http.StatusForbidden)
		return
	}
	if body.Password != body.ConfirmPasswordValue {
		writeJSONError(w, "Passwords do not match", http.StatusBadRequest)
		return
	}
	s.passwords[body.Email] = body.Password
	delete(s.verified, body.Email)
	delete(s.otps, body.Email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeJSONError writes an error body in the backend's {message} format
func writeJSONError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, client.ErrorResponse{Message: message})
}
