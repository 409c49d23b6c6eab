// Package apperr defines the error taxonomy shared by usecases and the HTTP layer.
// Every business-rule failure is an *Error whose Kind decides the response status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a business-rule failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuthentication
	KindToken
	KindInactive
	KindUnauthorized
	KindForbidden
	KindRateLimited
)

// Status returns the HTTP status for the kind.
// Conflicts and authentication failures deliberately stay 400 so clients handle them uniformly.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict, KindAuthentication, KindToken, KindInactive:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure carrying the client-facing message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Fields holds per-field validation messages, keyed by JSON field name.
	Fields map[string][]string
	err    error
}

// New creates a sentinel error. Code identifies it for errors.Is.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithMessage returns a copy with a more specific client message that still matches e.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.Message = message
	return &cp
}

// WithFields returns a copy carrying per-field validation messages.
func (e *Error) WithFields(fields map[string][]string) *Error {
	cp := *e
	cp.Fields = fields
	return &cp
}

// Wrap returns a copy that records cause for logging. The cause is never rendered to clients.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.err = cause
	return &cp
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
