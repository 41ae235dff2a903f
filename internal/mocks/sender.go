package mocks

import (
	"context"
	"sync"

	"github.com/bookscribs/scriptbuddy-api/internal/mail"
)

// MockSender is a configurable mock implementation of mail.Sender.
type MockSender struct {
	mu sync.Mutex

	// SendFn is called by Send when set; otherwise Send succeeds.
	SendFn func(ctx context.Context, msg mail.Message) error

	// Sent records every message passed to Send, in order.
	Sent []mail.Message
}

// Ensure MockSender implements mail.Sender
var _ mail.Sender = (*MockSender)(nil)

// Send implements mail.Sender.
func (m *MockSender) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, msg)
	m.mu.Unlock()

	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	return nil
}

// CallCount returns the number of messages handed to Send.
func (m *MockSender) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
