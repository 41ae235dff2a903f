package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
)

func newTestStore(t *testing.T) (*LeadStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads", "leads.csv")
	s, err := NewLeadStore(path, nil)
	require.NoError(t, err)
	return s, path
}

func newTestLead(t *testing.T, email string) *domain.Lead {
	t.Helper()
	lead, err := domain.NewLead(&domain.ScriptRequest{
		Email:     email,
		Context:   "A detective investigates a theft.",
		MaxLength: 120,
		FirstName: "A",
		LastName:  "B",
	}, "INT. MUSEUM - NIGHT")
	require.NoError(t, err)
	return lead
}

func readRawRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestAppendCreatesTableWithHeader(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, newTestLead(t, "first@x.com")))
	require.NoError(t, s.Append(ctx, newTestLead(t, "second@x.com")))

	rows := readRawRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.LeadColumns, rows[0])
	assert.Equal(t, "first@x.com", rows[1][2])
	assert.Equal(t, "second@x.com", rows[2][2])
}

func TestEnsureExistsIsIdempotent(t *testing.T) {
	s, path := newTestStore(t)

	_, created, err := s.ensureExists()
	require.NoError(t, err)
	assert.True(t, created)

	rows, created, err := s.ensureExists()
	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.LeadColumns, rows[0])

	// The header never doubles up.
	raw := readRawRows(t, path)
	assert.Len(t, raw, 1)
}

func TestAppendRepairsHeaderlessTable(t *testing.T) {
	s, path := newTestStore(t)

	// An existing but empty file: the degenerate state left behind by a
	// crashed writer.
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.NoError(t, s.Append(context.Background(), newTestLead(t, "a@b.com")))

	rows := readRawRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.LeadColumns, rows[0])
}

func TestAppendRejectsInvalidLead(t *testing.T) {
	s, path := newTestStore(t)

	err := s.Append(context.Background(), &domain.Lead{})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	// A rejected lead never creates the table.
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestLeadRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	lead, err := domain.NewLead(&domain.ScriptRequest{
		Email:     "jane@x.com",
		Context:   "A long premise, with commas, and\na newline.",
		MaxLength: 250,
		FirstName: "Jane",
		LastName:  "Doe",
	}, "FADE IN:\n\nEXT. HARBOR - DAWN")
	require.NoError(t, err)

	require.NoError(t, s.Append(ctx, lead))

	leads, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 1)

	got := leads[0]
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, "jane@x.com", got.Email)
	assert.Equal(t, "A long premise, with commas, and\na newline.", got.Context)
	assert.Equal(t, 250, got.MaxLength)
	assert.Equal(t, "FADE IN:\n\nEXT. HARBOR - DAWN", got.Script)
}

func TestListMissingTable(t *testing.T) {
	s, _ := newTestStore(t)

	leads, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestConcurrentAppendsKeepSingleHeader(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	const writers = 16

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			lead := newTestLead(t, fmt.Sprintf("writer%d@x.com", n))
			assert.NoError(t, s.Append(ctx, lead))
		}(i)
	}
	wg.Wait()

	rows := readRawRows(t, path)
	require.Len(t, rows, writers+1)

	headerCount := 0
	for _, row := range rows {
		if strings.Join(row, ",") == strings.Join(domain.LeadColumns, ",") {
			headerCount++
		}
	}
	assert.Equal(t, 1, headerCount)
}
