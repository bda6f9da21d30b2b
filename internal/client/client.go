// ABOUTME: HTTP client for the TalentID candidate API
// ABOUTME: Wraps API calls with request IDs, tracing, and error classification

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Endpoint paths
const (
	PathSearchCompanies = "/api/users/search-companies"
	PathCompany         = "/api/company/"
	PathLogin           = "/api/candidate/candidate-login"
	PathForgotEmail     = "/api/candidate/forgot-password-email"
	PathVerifyOTP       = "/api/candidate/verify-otp"
	PathForgotPassword  = "/api/candidate/forgot-password"

	DefaultProfilePath = "/api/candidate/get-candidate-details"
	DefaultLogoutPath  = "/api/candidate/logout"
)

// RequestIDHeader carries a per-request UUID
const RequestIDHeader = "X-Request-ID"

// TokenCookie is the cookie name the backend may use for the session token
const TokenCookie = "token"

// Client is the API client for the TalentID backend
type Client struct {
	baseURL     string
	authBaseURL string
	profilePath string
	logoutPath  string
	httpClient  *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithAuthBaseURL sets the base URL for /api/candidate endpoints
func WithAuthBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.authBaseURL = u
		}
	}
}

// WithTimeout overrides the request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithProfilePath overrides the candidate details endpoint
func WithProfilePath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.profilePath = p
		}
	}
}

// WithLogoutPath overrides the logout endpoint
func WithLogoutPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.logoutPath = p
		}
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		authBaseURL: baseURL,
		profilePath: DefaultProfilePath,
		logoutPath:  DefaultLogoutPath,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the companies API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchCompanies calls GET /api/users/search-companies
func (c *Client) SearchCompanies(ctx context.Context, token string) ([]Company, error) {
	var out companiesResponse
	if _, err := c.do(ctx, http.MethodGet, c.baseURL+PathSearchCompanies, token, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return []Company{}, nil
	}
	return out.Data, nil
}

// Company calls GET /api/company/{companyName}
func (c *Client) Company(ctx context.Context, companyName string) (*CompanyDetail, error) {
	var out companyResponse
	endpoint := c.baseURL + PathCompany + url.PathEscape(companyName)
	if _, err := c.do(ctx, http.MethodGet, endpoint, "", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return &CompanyDetail{}, nil
	}
	return out.Data, nil
}

// Login calls POST /api/candidate/candidate-login and returns the bearer token
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var out LoginResponse
	resp, err := c.do(ctx, http.MethodPost, c.authBaseURL+PathLogin, "", creds, &out)
	if err != nil {
		return "", err
	}

	switch {
	case out.Token != "":
		return out.Token, nil
	case out.Data.Token != "":
		return out.Data.Token, nil
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == TokenCookie && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", ErrNoToken
}

// Profile calls the candidate details endpoint
func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	var out Profile
	if _, err := c.do(ctx, http.MethodGet, c.authBaseURL+c.profilePath, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout calls the logout endpoint
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, c.authBaseURL+c.logoutPath, token, nil, nil)
	return err
}

// RequestPasswordReset calls POST /api/candidate/forgot-password-email
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, c.authBaseURL+PathForgotEmail, "", emailRequest{Email: email}, nil)
	return err
}

// VerifyOTP calls POST /api/candidate/verify-otp
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	_, err := c.do(ctx, http.MethodPost, c.authBaseURL+PathVerifyOTP, "", otpRequest{Email: email, OTP: otp}, nil)
	return err
}

// ResetPassword calls POST /api/candidate/forgot-password
func (c *Client) ResetPassword(ctx context.Context, req ResetRequest) error {
	_, err := c.do(ctx, http.MethodPost, c.authBaseURL+PathForgotPassword, "", req, nil)
	return err
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
// The response body is closed before returning.
func (c *Client) do(ctx context.Context, method, endpoint, token string, in, out any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("API request failed", "method", method, "url", endpoint, "request_id", requestID, "error", err)
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	slog.Debug("API request",
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, c.handleErrorResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return resp, fmt.Errorf("%w: invalid response from backend: %w", ErrNetwork, err)
		}
	}
	return resp, nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%w: request canceled", ErrNetwork)
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", ErrNetwork)
	}
	return fmt.Errorf("%w: cannot connect to backend at %s: %w", ErrNetwork, c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		apiErr.Message = errResp.Message
		if apiErr.Message == "" {
			apiErr.Message = errResp.Error
		}
	}
	return apiErr
}
