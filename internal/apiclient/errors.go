package apiclient

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned after a 401. The role's token has already been
// cleared and navigation to its login page requested.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidRequest means a request payload failed validation and was not sent
var ErrInvalidRequest = errors.New("invalid request")

// APIError is a non-2xx, non-401 response from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError means no response was obtained. It never logs the user out.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err came from a 401
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork reports whether err is a transport failure
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusOf returns the HTTP status carried by err, or 0
func StatusOf(err error) int {
	if IsUnauthorized(err) {
		return 401
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func genericMessage(status int) string {
	return fmt.Sprintf("API error: %d", status)
}
