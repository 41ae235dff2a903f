package mocks

import (
	"context"
	"sync"

	"github.com/bookscribs/scriptbuddy-api/internal/generation"
)

// GenerateScriptCall records the arguments of one GenerateScript invocation.
type GenerateScriptCall struct {
	Premise   string
	MaxLength int
}

// MockGenerator is a configurable mock implementation of generation.Generator.
type MockGenerator struct {
	mu sync.Mutex

	// GenerateScriptFn is called by GenerateScript when set; otherwise a
	// canned script is returned.
	GenerateScriptFn func(ctx context.Context, premise string, maxLength int) (string, error)

	// Calls records every invocation in order.
	Calls []GenerateScriptCall
}

// Ensure MockGenerator implements generation.Generator
var _ generation.Generator = (*MockGenerator)(nil)

// GenerateScript implements generation.Generator.
func (m *MockGenerator) GenerateScript(ctx context.Context, premise string, maxLength int) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, GenerateScriptCall{Premise: premise, MaxLength: maxLength})
	m.mu.Unlock()

	if m.GenerateScriptFn != nil {
		return m.GenerateScriptFn(ctx, premise, maxLength)
	}
	return "INT. MOCK STAGE - DAY\n\nA placeholder scene.", nil
}

// CallCount returns the number of recorded invocations.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
