package store

import (
	"context"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
)

// LeadStore defines the interface for lead record persistence. The lead
// table is append-only: rows are never updated or deleted, and the
// header (domain.LeadColumns) is written exactly once over the table's
// lifetime regardless of how many jobs append concurrently.
//
// Implementations must be safe for concurrent Append calls from multiple
// background jobs.
// Version: 1.0
type LeadStore interface {
	// Append adds one lead row to the table, creating the table with its
	// header on first use. It handles domain validation internally and
	// returns ErrInvalidEntity wrapping the validation detail if the lead
	// is invalid, or ErrAppendFailed wrapping the storage detail.
	Append(ctx context.Context, lead *domain.Lead) error

	// List returns every stored lead in append order. Returns an empty
	// slice when the table does not exist yet.
	List(ctx context.Context) ([]*domain.Lead, error)
}
