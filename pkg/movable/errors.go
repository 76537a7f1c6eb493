package movable

import "errors"

// Common errors for ordered collection operations
var (
	ErrStoreUnavailable   = errors.New("sequence store unavailable")
	ErrPartialCascade     = errors.New("delete cascade did not complete")
	ErrValidation         = errors.New("validation failed")
	ErrItemNotFound       = errors.New("item not found")
	ErrSessionNotFound    = errors.New("reorder session not found")
	ErrInvariantViolation = errors.New("sort order is not dense")
	ErrCommitInProgress   = errors.New("commit already in progress")
	ErrUnknownCollection  = errors.New("unknown collection")
)
