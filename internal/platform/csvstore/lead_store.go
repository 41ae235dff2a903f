// Package csvstore persists lead records in a local append-only CSV file,
// the durable table behind the leads views and the CSV download.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/platform/logger"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
)

// LeadStore implements the store.LeadStore interface on top of a single
// CSV file. The table lifecycle is Absent -> HeaderWritten -> rows; no
// transition ever removes the header or a row.
//
// The file is created with exclusive-create semantics, so under
// concurrent first appends exactly one writer creates the table and
// writes the header. A store-level mutex serializes appends within the
// process; each append is an independent open-append-close sequence, so
// row bytes never interleave. The CSV backend does not persist lead IDs
// or timestamps; List returns those fields zeroed.
type LeadStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// Ensure LeadStore implements the store.LeadStore interface
var _ store.LeadStore = (*LeadStore)(nil)

// NewLeadStore creates a CSV-backed lead store writing to the given path.
// The file and its parent directories are created lazily on first append.
// If logger is nil, a default logger will be used.
func NewLeadStore(path string, logger *slog.Logger) (*LeadStore, error) {
	if path == "" {
		return nil, errors.New("lead table path cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &LeadStore{
		path:   path,
		logger: logger.With(slog.String("component", "csv_lead_store")),
	}, nil
}

// ensureExists guarantees the lead table file exists. If the table is
// absent it is created with the header as its first row and (nil, true)
// is returned. If it already exists, its current rows are read and
// returned with created=false; a zero row count means the table exists
// but is headerless, a degenerate state the caller must repair.
func (s *LeadStore) ensureExists() (rows [][]string, created bool, err error) {
	f, err := os.Open(s.path)
	if err == nil {
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		rows, err = csv.NewReader(f).ReadAll()
		if err != nil {
			return nil, false, fmt.Errorf("failed to read lead table: %w", err)
		}
		return rows, false, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("failed to open lead table: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, false, fmt.Errorf("failed to create lead table directory: %w", err)
	}

	// O_EXCL makes table creation atomic: when two jobs race on the first
	// submission, exactly one creates the file and writes the header; the
	// loser re-reads the table the winner created.
	cf, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return s.ensureExists()
		}
		return nil, false, fmt.Errorf("failed to create lead table: %w", err)
	}

	w := csv.NewWriter(cf)
	if err := w.Write(domain.LeadColumns); err != nil {
		_ = cf.Close()
		return nil, false, fmt.Errorf("failed to write lead table header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = cf.Close()
		return nil, false, fmt.Errorf("failed to flush lead table header: %w", err)
	}
	if err := cf.Close(); err != nil {
		return nil, false, fmt.Errorf("failed to close lead table: %w", err)
	}

	return nil, true, nil
}

// Append implements store.LeadStore.Append. It creates the table with
// its header on first use, repairs a headerless table by writing the
// header before the first record, and appends one row in the fixed
// column order.
func (s *LeadStore) Append(ctx context.Context, lead *domain.Lead) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lead.Validate(); err != nil {
		log.Warn("lead validation failed during append",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, created, err := s.ensureExists()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrAppendFailed, err)
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to open lead table for append: %v", store.ErrAppendFailed, err)
	}

	w := csv.NewWriter(f)

	// An existing table with zero rows lost its header somewhere; restore
	// it before the first record so the header invariant holds.
	if !created && len(rows) == 0 {
		if err := w.Write(domain.LeadColumns); err != nil {
			_ = f.Close()
			return fmt.Errorf("%w: failed to restore lead table header: %v", store.ErrAppendFailed, err)
		}
	}

	if err := w.Write(lead.Row()); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to write lead row: %v", store.ErrAppendFailed, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to flush lead row: %v", store.ErrAppendFailed, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close lead table: %v", store.ErrAppendFailed, err)
	}

	log.Debug("lead appended to table",
		slog.String("lead_id", lead.ID.String()))
	return nil
}

// List implements store.LeadStore.List. It returns every stored row in
// append order, or an empty slice when the table does not exist yet.
func (s *LeadStore) List(ctx context.Context) ([]*domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*domain.Lead{}, nil
		}
		return nil, fmt.Errorf("%w: failed to open lead table: %v", store.ErrListFailed, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read lead table: %v", store.ErrListFailed, err)
	}

	if len(rows) <= 1 {
		return []*domain.Lead{}, nil
	}

	leads := make([]*domain.Lead, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(domain.LeadColumns) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				store.ErrListFailed, i+1, len(row), len(domain.LeadColumns))
		}

		maxLength, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d has malformed max length %q",
				store.ErrListFailed, i+1, row[4])
		}

		leads = append(leads, &domain.Lead{
			FirstName: row[0],
			LastName:  row[1],
			Email:     row[2],
			Context:   row[3],
			MaxLength: maxLength,
			Script:    row[5],
		})
	}

	return leads, nil
}
