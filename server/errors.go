package server

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories handlers report. Handlers
// wrap these with context via fmt.Errorf("...: %w", ...); the envelope
// writer only cares about the message text, but tests and embedding
// code can branch with errors.Is.
var (
	ErrMissingParameter    = errors.New("missing parameter")
	ErrNotFound            = errors.New("not found")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrUnsupportedProperty = errors.New("unsupported property type")
	ErrInvalidEnumValue    = errors.New("invalid enum value")
	ErrConnectionRejected  = errors.New("connection rejected")
	ErrUnknownCommand      = errors.New("unknown command")
)

// missingParam builds the canonical missing-parameter error for a
// named field.
func missingParam(name string) error {
	return fmt.Errorf("%w: missing '%s' parameter", ErrMissingParameter, name)
}

// notFound reports a named thing that could not be resolved.
func notFound(kind, name string) error {
	return fmt.Errorf("%w: %s '%s' not found", ErrNotFound, kind, name)
}

// typeMismatch reports a parameter or value of the wrong shape.
func typeMismatch(what, want string, got any) error {
	return fmt.Errorf("%w: %s must be %s, got %T", ErrTypeMismatch, what, want, got)
}

// IsClientError reports whether err belongs to the request-fault
// categories (as opposed to an internal failure). Client errors never
// close the connection.
func IsClientError(err error) bool {
	for _, sentinel := range []error{
		ErrMissingParameter, ErrNotFound, ErrTypeMismatch,
		ErrUnsupportedProperty, ErrInvalidEnumValue,
		ErrConnectionRejected, ErrUnknownCommand,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
