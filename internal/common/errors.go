// Package common defines shared sentinel errors and the tagged error type
// used across the server layers. Callers should use errors.Is / errors.As
// to match these values.
package common

import "errors"

var (
	// repository specific errors
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// auth errors (invalid or malformed token)
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Kind classifies an Error so the transport boundary can map it to an
// HTTP status without inspecting message text.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindUnauthorized  Kind = "unauthorized"
	KindConfiguration Kind = "configuration"
	KindInternal      Kind = "internal"
)

// Error is a tagged failure carrying a user-facing message. The message is
// safe to return to clients; the wrapped cause (if any) is not.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError attaches a cause to a tagged error so it can be logged at the
// boundary without leaking into the response body.
func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the Kind from err, returning KindInternal for anything
// that is not a tagged *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
