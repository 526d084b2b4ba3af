package service

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden is returned when the caller's role or identity does not
	// permit the requested operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition is returned for a (status, event) pair that is
	// not in the transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError marks malformed or missing caller input. Always
// recoverable by the caller, never retried internally.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
