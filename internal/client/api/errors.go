package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the backend could not be reached at all
	// (connection refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the backend rejected the bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a business-rule rejection decoded from a non-2xx JSON body.
// Message is the server-provided text, surfaced to the user verbatim.
// RequiresVerification and Email accompany login/registration failures for
// accounts with an unconfirmed email address.
type Error struct {
	Status               int
	Message              string
	RequiresVerification bool
	Email                string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed (status %d)", e.Status)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match rejected-credential
// responses while the server message stays available on the Error itself.
func (e *Error) Unwrap() error {
	if e.Status == 401 || e.Status == 403 {
		return ErrUnauthorized
	}
	return nil
}

// AsAPIError unwraps err into *Error if it carries one.
func AsAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
