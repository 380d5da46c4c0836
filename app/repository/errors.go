package repository

import "errors"

// Failure modes of the versioned record store. Services and route handlers
// match on these with errors.Is and translate them into envelope error codes.
var (
	ErrInvalidID       = errors.New("invalid record id format")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate unique key")
	ErrNoData          = errors.New("no data provided to update")
	ErrVersionRequired = errors.New("version number is required for updates")
	ErrVersionConflict = errors.New("update failed due to version conflict")
)
