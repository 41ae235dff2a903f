package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyPremise is returned when a story premise is empty.
	ErrEmptyPremise = errors.New("premise cannot be empty")
)
