// internal/pkg/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindNotAllowed
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failure"
	case KindAuth:
		return "auth_failure"
	case KindNotFound:
		return "not_found"
	case KindNotAllowed:
		return "not_allowed"
	case KindEmpty:
		return "empty"
	default:
		return "internal"
	}
}

// Error is a domain error carrying a user-visible message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a ValidationFailure
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Auth creates an AuthFailure
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// NotFound creates a NotFound error for the named resource
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// NotAllowed creates a NotAllowed error
func NotAllowed(message string) *Error {
	return &Error{Kind: KindNotAllowed, Message: message}
}

// Empty signals an operation with nothing to act on
func Empty(message string) *Error {
	return &Error{Kind: KindEmpty, Message: message}
}

// Internal wraps an unexpected failure. The message is never shown to clients.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for foreign errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is a domain error of the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to its response status
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindNotAllowed:
		return http.StatusForbidden
	case KindEmpty:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to the client
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Something went wrong"
}
