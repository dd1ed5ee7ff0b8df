package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the service reported no such record.
	ErrNotFound = errors.New("backend.not_found")

	// ErrUnavailable indicates a transport-level failure: timeout,
	// connection error or a malformed response.
	ErrUnavailable = errors.New("backend.unavailable")
)

// StatusError is a non-success response from a service, carrying the body
// the service reported so callers can surface the reason.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: unexpected status %d: %s", e.Code, e.Body)
}

// Reason returns the service-reported body as text.
func (e *StatusError) Reason() string {
	return string(e.Body)
}
