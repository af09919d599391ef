package model

import "fmt"

// ValidationError means the caller's input violates a precondition.
// Handlers map it to HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DependencyError means an external collaborator failed (network error,
// non-success status, undecodable body). Handlers map it to HTTP 502 with a
// generic message; the upstream error body is never forwarded to the caller.
type DependencyError struct {
	Upstream string
	Err      error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Upstream, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}
