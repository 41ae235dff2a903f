package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/platform/logger"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
)

// LeadStore implements the store.LeadStore interface using a PostgreSQL
// database as the storage backend. Each append is a single INSERT, so
// the check-then-create race of the file-backed table does not exist
// here; the header invariant is the table schema itself.
type LeadStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure LeadStore implements store.LeadStore interface
var _ store.LeadStore = (*LeadStore)(nil)

// NewLeadStore creates a new PostgreSQL implementation of the LeadStore
// interface. It accepts a database connection that should be initialized
// and managed by the caller. If logger is nil, a default logger will be used.
func NewLeadStore(db store.DBTX, logger *slog.Logger) *LeadStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LeadStore{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_lead_store")),
	}
}

// Append implements store.LeadStore.Append.
// It saves a new lead row, handling domain validation internally.
func (s *LeadStore) Append(ctx context.Context, lead *domain.Lead) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lead.Validate(); err != nil {
		log.Warn("lead validation failed during append",
			slog.String("error", err.Error()),
			slog.String("lead_id", lead.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO leads (id, first_name, last_name, email, context, max_length, generated_script, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Context,
		lead.MaxLength,
		lead.Script,
		lead.CreatedAt,
	)
	if err != nil {
		log.Error("failed to append lead",
			slog.String("error", err.Error()),
			slog.String("lead_id", lead.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrAppendFailed, err)
	}

	log.Debug("lead appended to table",
		slog.String("lead_id", lead.ID.String()))
	return nil
}

// List implements store.LeadStore.List.
// It returns every stored lead in append (insertion-time) order.
func (s *LeadStore) List(ctx context.Context) ([]*domain.Lead, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, first_name, last_name, email, context, max_length, generated_script, created_at
		FROM leads
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list leads", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", store.ErrListFailed, err)
	}
	defer func() { _ = rows.Close() }()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.FirstName,
			&lead.LastName,
			&lead.Email,
			&lead.Context,
			&lead.MaxLength,
			&lead.Script,
			&lead.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", store.ErrListFailed, err)
		}
		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrListFailed, err)
	}

	return leads, nil
}
