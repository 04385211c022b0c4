package types

import (
	"errors"
	"fmt"
)

// Error classes. Every failure returned by a Bullion book or the engine
// matches exactly one of these under errors.Is.
var (
	ErrInvalidInput = errors.New("bullion: invalid input")
	ErrConflict     = errors.New("bullion: conflict")
	ErrNotFound     = errors.New("bullion: not found")
)

// ValidationError represents malformed or out-of-range input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bullion: validation failed for %s: %s", e.Field, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConflictError represents an action that violates a global invariant,
// such as receiving a completed work order or generating payroll twice.
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("bullion: %s conflict: %s", e.Resource, e.Message)
}

// Is reports whether target is ErrConflict.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NotFoundError represents a reference to a record that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bullion: %s %q not found", e.Resource, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Invalid returns a *ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a *ConflictError.
func Conflict(resource, format string, args ...any) error {
	return &ConflictError{Resource: resource, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a *NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}
