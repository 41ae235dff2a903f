package mail

import (
	"context"
	"errors"
)

// Common errors returned by the mail package
var (
	// ErrSendFailed is returned when a message could not be delivered
	// after exhausting retries.
	ErrSendFailed = errors.New("failed to send notification")

	// ErrInvalidMessage is returned when a message is missing required
	// addressing fields.
	ErrInvalidMessage = errors.New("invalid notification message")
)

// Message is one outbound notification. All fields are plain text; the
// body is sent as text/plain.
type Message struct {
	From    string
	To      string
	Bcc     string
	Subject string
	Body    string
}

// Validate checks that the message can be addressed.
func (m Message) Validate() error {
	if m.From == "" || m.To == "" {
		return ErrInvalidMessage
	}
	return nil
}

// Sender delivers notification messages. Implementations must be safe
// for concurrent use; every background job shares one Sender instance.
type Sender interface {
	// Send delivers the message, blocking until delivery is accepted by
	// the transport or retries are exhausted.
	Send(ctx context.Context, msg Message) error
}
