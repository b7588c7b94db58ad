package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup for an entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrItemUnavailable marks a catalog item that exists but is inactive.
	ErrItemUnavailable = errors.New("item unavailable")

	// ErrForbidden marks an operation on an entity the caller does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrBookingConflict marks an overlapping booking on the same room.
	ErrBookingConflict = errors.New("booking conflict")

	// ErrInvalidTransition marks a disallowed order status transition.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError describes a malformed or rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, format string, args ...any) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
