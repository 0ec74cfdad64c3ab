package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork covers transport failures, timeouts, unreadable responses
	// and any error status not listed below.
	ErrNetwork = errors.New("network error")
	// ErrAuthentication means the server rejected the credentials or token.
	ErrAuthentication = errors.New("authentication failed")
	// ErrValidation means the payload was malformed or conflicts with
	// existing data (e.g. email already registered).
	ErrValidation = errors.New("validation failed")
)

// HTTPError is a non-2xx response. Message carries the server's detail text.
// errors.Is matches it against the sentinel for its status class.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return classify(e.StatusCode)
}

func classify(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrAuthentication
	case status == http.StatusBadRequest, status == http.StatusConflict, status == http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrNetwork
	}
}

// IsStatus reports whether err wraps an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Detail returns the server-provided message if err carries one.
func Detail(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return ""
}
