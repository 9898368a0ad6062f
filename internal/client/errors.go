package client

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned when the server rejects the stored token.
	// The session has already been cleared when it is returned.
	ErrSessionExpired = errors.New("session expired")

	// ErrNotLoggedIn is returned when an operation needs a session and none is stored.
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError is a failure the server explained with a message.
type APIError struct {
	Status  int
	Message string
}

// Error returns the server's message unchanged.
func (e *APIError) Error() string {
	return e.Message
}

// RequestError is a failure without a server message, e.g. a transport
// error or an unreadable response. It reads as "<Action> failed".
type RequestError struct {
	Action string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s failed", e.Action)
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}
