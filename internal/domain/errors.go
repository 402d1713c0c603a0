// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidStatus is returned when a task status is not one of the
	// allowed values.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrInvalidPriority is returned when a task priority is not one of the
	// allowed values.
	ErrInvalidPriority = errors.New("invalid priority value")

	// ErrInvalidRole is returned when a user role is not one of the
	// allowed values.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidDueDate is returned when a task due date cannot be parsed.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrAccountDeactivated is returned when an administratively disabled
	// account attempts to authenticate.
	ErrAccountDeactivated = errors.New("account is deactivated")
)

// ValidationError carries the field that failed validation together with a
// human-readable reason. It wraps a sentinel error so callers can use
// errors.Is against ErrValidation (or a more specific sentinel).
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
