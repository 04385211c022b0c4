package bullion

import (
	"errors"

	"github.com/xraph/bullion/types"
)

// Error classes. Books and the engine return typed errors that match exactly
// one of these under errors.Is.
var (
	ErrInvalidInput = types.ErrInvalidInput
	ErrConflict     = types.ErrConflict
	ErrNotFound     = types.ErrNotFound
)

// Engine errors.
var (
	ErrNotStarted     = errors.New("bullion: ledger not started")
	ErrAlreadyStarted = errors.New("bullion: ledger already started")
	ErrNoStore        = errors.New("bullion: no store configured")
	ErrCorruptPayload = errors.New("bullion: corrupt collection payload")
	ErrRatesReadOnly  = errors.New("bullion: rate provider is read-only")
	ErrActionPanic    = errors.New("bullion: action panicked")
)

type (
	// ValidationError represents malformed or out-of-range input.
	ValidationError = types.ValidationError
	// ConflictError represents an action that violates a global invariant.
	ConflictError = types.ConflictError
	// NotFoundError represents a reference to a record that does not exist.
	NotFoundError = types.NotFoundError
)

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict returns true if the error is an invariant conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation returns true if the error is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
