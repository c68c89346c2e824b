package service

import (
	"fmt"

	"github.com/vidtube/vidtube-api-go/internal/db"
)

// ValidationError is a request the caller must fix.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError means a referenced record does not exist or is not visible
// to the actor.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ForbiddenError means the actor does not own the record.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ConflictError means the change would duplicate existing state.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ProcessingError wraps an unexpected failure.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ProcessingError struct {
	Message string
	Cause   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ProcessingError) Unwrap() error {
	return e.Cause
}

// lookupError maps a repository error from a lookup: not found becomes
// NotFoundError with notFound as message, anything else a ProcessingError.
func lookupError(err error, notFound, operation string) error {
	if db.IsNotFound(err) {
		return &NotFoundError{Message: notFound}
	}
	return &ProcessingError{Message: operation, Cause: err}
}

func processingError(operation string, err error) error {
	return &ProcessingError{Message: operation, Cause: err}
}

func notOwner() error {
	return &ForbiddenError{Message: "Unauthorized request!"}
}
