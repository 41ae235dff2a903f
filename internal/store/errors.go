package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrAppendFailed is returned when a lead could not be appended to the
	// table. The wrapped error carries the underlying I/O or driver detail.
	ErrAppendFailed = errors.New("append failed")

	// ErrListFailed is returned when the lead table could not be read.
	ErrListFailed = errors.New("list failed")
)
