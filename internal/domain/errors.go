// Package domain contains the core business entities for the folio server.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, storage, etc.).

var (
	// ErrUserNotFound indicates no user matches the given email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates a user with the same email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrIncorrectPassword indicates the password comparison failed.
	ErrIncorrectPassword = errors.New("incorrect password")

	// ErrUnauthorized indicates the action requires an authenticated session.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden indicates the caller is authenticated but does not own
	// the resource.
	ErrForbidden = errors.New("not the project owner")

	// ErrProjectNotFound indicates the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidInput indicates a missing or malformed required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadFailed indicates the media upload collaborator failed.
	ErrUploadFailed = errors.New("upload failed")
)

// ValidationError wraps ErrInvalidInput with the offending field name.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

// Unwrap returns ErrInvalidInput so errors.Is matches.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
