package apperr

import (
	"errors"
	"fmt"
)

// Error kinds shared across domain services. Services wrap one of these with a
// human-readable message; the web layer maps the kind to an HTTP status.
var (
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrTooLarge     = errors.New("payload too large")
)

// Error carries a kind plus the message surfaced to the client.
// Fields is populated only for request-body validation failures.
type Error struct {
	kind   error
	msg    string
	fields []string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Invalidf(format string, args ...any) error {
	return newf(ErrInvalid, format, args...)
}

func Unauthorizedf(format string, args ...any) error {
	return newf(ErrUnauthorized, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return newf(ErrForbidden, format, args...)
}

func NotFoundf(format string, args ...any) error {
	return newf(ErrNotFound, format, args...)
}

func Conflictf(format string, args ...any) error {
	return newf(ErrConflict, format, args...)
}

func TooLargef(format string, args ...any) error {
	return newf(ErrTooLarge, format, args...)
}

// Validation builds an ErrInvalid carrying per-field messages
// ("fieldName: reason") for the error body's errors array.
func Validation(fields []string) error {
	return &Error{kind: ErrInvalid, msg: "Invalid input data", fields: fields}
}

// FieldsOf returns the per-field messages attached to err, if any.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.fields
	}
	return nil
}
