// Package apperrors defines the error kinds shared by repositories,
// services and handlers. Handlers map these onto HTTP status codes;
// everything below the handler layer works in terms of the sentinels.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// ValidationError is a structurally invalid request: self-reference,
// language mismatch, malformed slug or version string. It unwraps to
// ErrValidation so callers can test with errors.Is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation builds a ValidationError with the given reason.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError names the entity that was missing. Unwraps to ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFoundEntity builds a NotFoundError naming the missing entity.
func NotFoundEntity(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// StatusTransitionError is returned by the document lifecycle engine when
// the requested status is not reachable from the current one. It carries
// both statuses for the caller to report, and unwraps to ErrValidation so
// the handler layer maps it to a 400.
type StatusTransitionError struct {
	Current   string
	Requested string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.Current, e.Requested)
}

func (e *StatusTransitionError) Unwrap() error { return ErrValidation }
