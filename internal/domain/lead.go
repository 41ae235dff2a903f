package domain

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Lead
var (
	ErrEmptyLeadID     = errors.New("lead ID cannot be empty")
	ErrEmptyLeadScript = errors.New("lead script cannot be empty")
)

// LeadColumns is the fixed header of the lead table. Every persisted lead
// row carries these six values in exactly this order.
var LeadColumns = []string{
	"First Name",
	"Last Name",
	"Email",
	"Context",
	"Max Length",
	"Generated Script",
}

// Lead is one recorded submission, retained for product and
// algorithm-improvement purposes. Leads are append-only: once created
// they are never updated or deleted.
type Lead struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Context   string
	MaxLength int
	Script    string
	CreatedAt time.Time
}

// NewLead creates a Lead from a processed script request and the script
// that was generated for it. The script must already have had the
// fallback sentence substituted if generation produced nothing; an empty
// script here is a programming error upstream.
func NewLead(req *ScriptRequest, script string) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if script == "" {
		return nil, ErrEmptyLeadScript
	}

	return &Lead{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Context:   req.Context,
		MaxLength: req.MaxLength,
		Script:    script,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Validate checks if the Lead has valid data.
func (l *Lead) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLeadID
	}

	if l.Email == "" {
		return ErrEmptyEmail
	}

	if l.Context == "" {
		return ErrEmptyContext
	}

	if l.MaxLength <= 0 {
		return ErrInvalidMaxLength
	}

	if l.Script == "" {
		return ErrEmptyLeadScript
	}

	return nil
}

// Row returns the lead's persisted representation: the six values
// matching LeadColumns, in that order.
func (l *Lead) Row() []string {
	return []string{
		l.FirstName,
		l.LastName,
		l.Email,
		l.Context,
		strconv.Itoa(l.MaxLength),
		l.Script,
	}
}
