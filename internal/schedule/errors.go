package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput indicates a structural validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the course does not exist.
	ErrNotFound = errors.New("course not found")

	// ErrUnavailable indicates a slot is blocked by the current allocation.
	ErrUnavailable = errors.New("slot not available")

	// ErrDuplicateLab indicates the theory course already has a lab companion.
	ErrDuplicateLab = errors.New("lab already exists")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is a single field failure.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%v: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}

// UnavailableError names the slot that was rejected and why.
type UnavailableError struct {
	Slot   string
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnavailable, e.Reason)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}
