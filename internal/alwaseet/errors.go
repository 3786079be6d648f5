package alwaseet

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by Client, TokenManager and Service
// matches exactly one of these through errors.Is.
var (
	// ErrAuthenticationFailed: the upstream rejected the merchant credentials.
	ErrAuthenticationFailed = errors.New("alwaseet: authentication failed")
	// ErrUpstreamRejected: the call went through but the envelope reported failure.
	ErrUpstreamRejected = errors.New("alwaseet: request rejected")
	// ErrUpstreamUnreachable: network error, timeout, non-2xx status or unreadable body.
	ErrUpstreamUnreachable = errors.New("alwaseet: upstream unreachable")
)

// Error carries a failure kind plus the human-readable detail shown to callers.
type Error struct {
	Kind   error
	Op     string // "login", "cities", ...
	Detail string
	Err    error // underlying cause, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("alwaseet %s: %s", e.Op, e.Detail)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Detail returns the caller-facing message of err.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return err.Error()
}

func authFailed(msg string) *Error {
	if msg == "" {
		msg = "Unknown error"
	}
	return &Error{
		Kind:   ErrAuthenticationFailed,
		Op:     "login",
		Detail: "Failed to authenticate with Alwaseet: " + msg,
	}
}

func loginUnreachable(err error) *Error {
	return &Error{
		Kind:   ErrUpstreamUnreachable,
		Op:     "login",
		Detail: "Error connecting to Alwaseet API: " + err.Error(),
		Err:    err,
	}
}

func fetchRejected(res Resource, msg string) *Error {
	if msg == "" {
		msg = "Failed to fetch " + res.Name
	}
	return &Error{
		Kind:   ErrUpstreamRejected,
		Op:     res.Name,
		Detail: msg,
	}
}

func fetchUnreachable(res Resource, err error) *Error {
	return &Error{
		Kind:   ErrUpstreamUnreachable,
		Op:     res.Name,
		Detail: "Error fetching " + res.Name + ": " + err.Error(),
		Err:    err,
	}
}
