package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is a 401 from a login or register endpoint.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired is a 401 from any other endpoint. The credential has already
	// been cleared and the navigator told to go to the login page.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden is a backend 403. The session stays valid.
	ErrForbidden = errors.New("forbidden")
	// ErrTransport wraps network failures. No retry is attempted.
	ErrTransport = errors.New("backend unreachable")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// Unwrap exposes the taxonomy sentinel so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	return e.kind
}

// errorBody is the backend's error payload.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text(status int) string {
	switch {
	case b.Error != "":
		return b.Error
	case b.Message != "":
		return b.Message
	case status == http.StatusUnauthorized:
		return "Invalid email or password"
	default:
		return http.StatusText(status)
	}
}
