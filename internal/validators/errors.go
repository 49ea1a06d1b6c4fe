package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput is wrapped by every [FieldError] so callers can map
	// any validation failure to a single status.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes a single rejected field. Message is shown to the
// caller as is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

func fieldError(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func required(field string) error {
	return fieldError(field, "%s is required", field)
}

func tooLong(field string, max int) error {
	return fieldError(field, "%s must be at most %d characters", field, max)
}
