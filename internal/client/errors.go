// ABOUTME: Error taxonomy for candidate API calls
// ABOUTME: Classifies HTTP failures into auth, not-found, and network errors

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors matched with errors.Is against values returned by Client.
var (
	// ErrUnauthorized is returned for 401 responses from any endpoint.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrNetwork covers transport failures and every other non-2xx status.
	ErrNetwork = errors.New("network error")
	// ErrNoToken is returned when a login succeeds without yielding a bearer token.
	ErrNoToken = errors.New("login response carried no token")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Is maps the status code onto the sentinel errors
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrNetwork:
		return e.Status != http.StatusUnauthorized && e.Status != http.StatusNotFound
	}
	return false
}

// ErrorResponse is the JSON error body returned by the backend
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageOf returns the server-provided message carried by err, or fallback
// when the error did not come with one.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
