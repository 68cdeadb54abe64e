package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// ErrPlayerNotFound is returned when an identifier has no stored record
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidInput is the kind shared by every validation failure.
	// Match it with errors.Is; use errors.As with *InvalidInputError for details.
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidInputError reports which rule a request violated
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidInput) hold
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// NewInvalidInputError creates an InvalidInputError for callers outside this package
func NewInvalidInputError(field, reason string) error {
	return invalid(field, reason)
}
