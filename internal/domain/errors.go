// Package domain contains the core business entities for todovault.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (storage backend, network).

var (
	// ===========================================
	// Account Errors
	// ===========================================

	// ErrValidation indicates empty or mismatched user input.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateUser indicates a user with the same username already exists.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrNoUsers indicates the account directory is empty or absent.
	ErrNoUsers = errors.New("no registered users")

	// ErrInvalidCredentials indicates no record matched the given
	// username and password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ===========================================
	// Session Errors
	// ===========================================

	// ErrNoActiveSession indicates no user is currently logged in.
	ErrNoActiveSession = errors.New("no active session")

	// ===========================================
	// Task Errors
	// ===========================================

	// ErrTaskNotFound indicates no task with the given ID exists for the user.
	ErrTaskNotFound = errors.New("task not found")

	// ErrConfirmationRequired indicates a destructive operation was
	// attempted without explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ===========================================
	// Storage Errors
	// ===========================================

	// ErrStorage indicates the persistent store failed to read or write.
	// Backend failures are always classified under this sentinel so the
	// presentation layer can surface them like any other blocking error.
	ErrStorage = errors.New("storage failure")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., username, task ID).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}
