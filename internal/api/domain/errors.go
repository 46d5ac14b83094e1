package domain

import (
	"errors"
	"net/http"
)

// Kind is a machine-readable error category surfaced to API clients
type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindInvalidTransition  Kind = "INVALID_TRANSITION"
	KindInternal           Kind = "INTERNAL"
)

// HTTPStatus maps the kind to the response status code
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the domain error type carried from services to handlers
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// NewError creates a domain error
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a domain error around an underlying cause
func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

var (
	ErrValidation         = NewError(KindValidation, "validation failed")
	ErrUnauthorized       = NewError(KindUnauthorized, "unauthorized")
	ErrInvalidCredentials = NewError(KindInvalidCredentials, "invalid email or password")
	ErrForbidden          = NewError(KindForbidden, "forbidden")
	ErrNotFound           = NewError(KindNotFound, "not found")
	ErrConflict           = NewError(KindConflict, "conflict")
	ErrInvalidTransition  = NewError(KindInvalidTransition, "invalid status transition")
)

// KindOf returns the kind of err, or KindInternal for foreign errors
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
