package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

// Lock state violations. All of them match ErrConflict.
var (
	ErrAlreadyLocked   = fmt.Errorf("story is already locked: %w", ErrConflict)
	ErrAlreadyUnlocked = fmt.Errorf("story is already unlocked: %w", ErrConflict)
	ErrLockedByOther   = fmt.Errorf("story is locked by another user: %w", ErrConflict)
)

// Registration conflicts. Both match ErrAlreadyExists.
var (
	ErrEmailTaken = fmt.Errorf("email already registered: %w", ErrAlreadyExists)
	ErrNameTaken  = fmt.Errorf("username already exists, please choose another one: %w", ErrAlreadyExists)
)

// ErrNoResults is returned by searches that matched nothing.
var ErrNoResults = fmt.Errorf("no stories found: %w", ErrNotFound)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
