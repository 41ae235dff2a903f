package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	gomail "github.com/wneessen/go-mail"

	"github.com/bookscribs/scriptbuddy-api/internal/config"
	"github.com/bookscribs/scriptbuddy-api/internal/redact"
)

// SMTPSender implements the Sender interface over SMTP with STARTTLS.
// Transient delivery failures are retried with capped exponential backoff
// before the error is reported to the caller; the caller never retries.
type SMTPSender struct {
	client     *gomail.Client
	logger     *slog.Logger
	maxRetries uint64
}

// Ensure SMTPSender implements the Sender interface
var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates an SMTP-backed Sender from mail configuration.
// The sender email doubles as the SMTP username, matching the upstream
// provider's app-password scheme.
func NewSMTPSender(cfg config.MailConfig, logger *slog.Logger) (*SMTPSender, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SenderEmail),
		gomail.WithPassword(cfg.SenderPass),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPSender{
		client:     client,
		logger:     logger.With(slog.String("component", "smtp_sender")),
		maxRetries: uint64(cfg.MaxRetries),
	}, nil
}

// Send delivers the message, retrying transient transport errors with
// exponential backoff and jitter. It returns ErrSendFailed (wrapping the
// last transport error) once retries are exhausted.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("%w: invalid from address: %v", ErrInvalidMessage, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("%w: invalid to address: %v", ErrInvalidMessage, err)
	}
	if msg.Bcc != "" {
		if err := m.Bcc(msg.Bcc); err != nil {
			return fmt.Errorf("%w: invalid bcc address: %v", ErrInvalidMessage, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	backoff := retry.WithMaxRetries(s.maxRetries,
		retry.WithJitter(500*time.Millisecond,
			retry.NewExponential(1*time.Second)))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
			s.logger.WarnContext(ctx, "notification delivery attempt failed",
				"attempt", attempt,
				"error", redact.Error(err))
			// SMTP failures here are overwhelmingly transient (connect,
			// greeting, TLS); permanent addressing problems were caught
			// while building the message.
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	s.logger.InfoContext(ctx, "notification delivered",
		"attempts", attempt,
		"subject", msg.Subject)
	return nil
}
