// Package apperr defines the error taxonomy shared by every handler and the
// mapping from those errors to HTTP responses
package apperr

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindPermissionDenied
	KindNotFound
)

const (
	MsgPermissionDenied = "Access denied"
	MsgUnauthenticated  = "Authentication credentials were not provided"
	MsgValidation       = "Validation failed"
	MsgInternal         = "Internal server error"
)

// Error is an application error that knows how to present itself to a client.
// Fields holds per-field messages for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation reports a single invalid field
func Validation(field, message string) *Error {
	return ValidationFields(map[string]string{field: message})
}

func ValidationFields(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: MsgValidation,
		Fields:  fields,
	}
}

// BadRequest is a validation failure that isn't tied to a field
func BadRequest(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
	}
}

func NotFound(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

func PermissionDenied() *Error {
	return &Error{
		Kind:    KindPermissionDenied,
		Message: MsgPermissionDenied,
	}
}

func Unauthenticated(message string) *Error {
	if message == "" {
		message = MsgUnauthenticated
	}

	return &Error{
		Kind:    KindUnauthenticated,
		Message: message,
	}
}

func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: MsgInternal,
		Err:     err,
	}
}
