package services

import "fmt"

// Business error taxonomy. Handlers translate these into HTTP responses;
// anything not matching is an internal error and never leaks storage details.

// NotFoundError means a referenced entity id does not exist.
type NotFoundError struct {
	msg string
}

// NewNotFoundError creates a NotFoundError with a formatted message.
func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	return e.msg
}

// ConflictError means a natural key, link pair, or per-entity role slot is
// already taken.
type ConflictError struct {
	msg string
}

// NewConflictError creates a ConflictError with a formatted message.
func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{msg: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string {
	return e.msg
}

// ValidationError means the input shape or cardinality is wrong.
type ValidationError struct {
	msg string
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}
