package utils

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Wrap them with the helpers below and
// test with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// FieldError is a ValidationError carrying per-field details.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %d invalid field(s)", ErrValidation, len(e.Fields))
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports a missing record of the given resource kind.
func NotFoundError(resource, id string) error {
	return fmt.Errorf("%s %q: %w", resource, id, ErrNotFound)
}

func ValidationError(field, message string) error {
	return &FieldError{Fields: map[string]string{field: message}}
}

func TransitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
