package mocks

import (
	"context"
	"sync"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
)

// MockLeadStore is a configurable in-memory mock of store.LeadStore.
type MockLeadStore struct {
	mu sync.Mutex

	// AppendFn is called by Append when set; otherwise the lead is
	// recorded and Append succeeds.
	AppendFn func(ctx context.Context, lead *domain.Lead) error

	// ListFn is called by List when set; otherwise the recorded leads
	// are returned.
	ListFn func(ctx context.Context) ([]*domain.Lead, error)

	// Appended records every lead passed to Append, in order.
	Appended []*domain.Lead
}

// Ensure MockLeadStore implements store.LeadStore
var _ store.LeadStore = (*MockLeadStore)(nil)

// Append implements store.LeadStore.
func (m *MockLeadStore) Append(ctx context.Context, lead *domain.Lead) error {
	if m.AppendFn != nil {
		if err := m.AppendFn(ctx, lead); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.Appended = append(m.Appended, lead)
	m.mu.Unlock()
	return nil
}

// List implements store.LeadStore.
func (m *MockLeadStore) List(ctx context.Context) ([]*domain.Lead, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	leads := make([]*domain.Lead, len(m.Appended))
	copy(leads, m.Appended)
	return leads, nil
}

// CallCount returns the number of successful Append invocations.
func (m *MockLeadStore) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Appended)
}
