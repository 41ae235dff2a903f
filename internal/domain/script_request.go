package domain

import (
	"errors"
	"strings"
)

// Common validation errors for ScriptRequest
var (
	ErrEmptyEmail       = errors.New("script request email cannot be empty")
	ErrEmptyContext     = errors.New("script request context cannot be empty")
	ErrEmptyFirstName   = errors.New("script request first name cannot be empty")
	ErrEmptyLastName    = errors.New("script request last name cannot be empty")
	ErrEmptyMaxLength   = errors.New("script request max length cannot be empty")
	ErrInvalidMaxLength = errors.New("script request max length must be a positive integer")
	ErrMalformedEmail   = errors.New("script request email is malformed")
)

// ScriptRequest represents one validated story-premise submission. It is
// constructed by the request gateway and handed to exactly one background
// job, which owns it for the rest of its lifetime.
type ScriptRequest struct {
	Email     string
	Context   string
	MaxLength int
	FirstName string
	LastName  string
}

// NewScriptRequest creates a ScriptRequest from already-coerced field
// values and validates it. Returns an error if validation fails.
func NewScriptRequest(email, context string, maxLength int, firstName, lastName string) (*ScriptRequest, error) {
	req := &ScriptRequest{
		Email:     email,
		Context:   context,
		MaxLength: maxLength,
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks if the ScriptRequest has valid data.
// Returns an error if any field fails validation.
func (r *ScriptRequest) Validate() error {
	if r.Email == "" {
		return ErrEmptyEmail
	}

	// A full address validation happens at the API layer; this guards
	// against constructing a request that could never be delivered to.
	if !strings.Contains(r.Email, "@") {
		return ErrMalformedEmail
	}

	if r.Context == "" {
		return ErrEmptyContext
	}

	if r.MaxLength <= 0 {
		return ErrInvalidMaxLength
	}

	if r.FirstName == "" {
		return ErrEmptyFirstName
	}

	if r.LastName == "" {
		return ErrEmptyLastName
	}

	return nil
}
