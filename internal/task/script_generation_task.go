package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/generation"
	"github.com/bookscribs/scriptbuddy-api/internal/mail"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
)

// scriptGenerationPayload holds the data needed for a script generation task
type scriptGenerationPayload struct {
	RequestID string `json:"request_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	MaxLength int    `json:"max_length"`
}

// ScriptGenerationTask processes one accepted script request end to end:
// generate an excerpt from the premise, email it to the requester, then
// append the lead to the lead table. Generation failures are absorbed by
// substituting the fallback script; a notification failure aborts the task
// before anything is persisted, so the lead table only ever records
// requests whose mail was handed off.
type ScriptGenerationTask struct {
	id          uuid.UUID
	request     *domain.ScriptRequest
	generator   generation.Generator
	sender      mail.Sender
	leadStore   store.LeadStore
	senderEmail string
	adminEmail  string
	logger      *slog.Logger
	status      TaskStatus
}

// Ensure ScriptGenerationTask implements the Task interface
var _ Task = (*ScriptGenerationTask)(nil)

// NewScriptGenerationTask creates a new task for the given request.
// All collaborators are required except logger, which defaults.
func NewScriptGenerationTask(
	request *domain.ScriptRequest,
	generator generation.Generator,
	sender mail.Sender,
	leadStore store.LeadStore,
	senderEmail string,
	adminEmail string,
	logger *slog.Logger,
) (*ScriptGenerationTask, error) {
	if request == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}
	if generator == nil {
		return nil, fmt.Errorf("generator cannot be nil")
	}
	if sender == nil {
		return nil, fmt.Errorf("sender cannot be nil")
	}
	if leadStore == nil {
		return nil, fmt.Errorf("lead store cannot be nil")
	}
	if senderEmail == "" {
		return nil, fmt.Errorf("sender email cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ScriptGenerationTask{
		id:          uuid.New(),
		request:     request,
		generator:   generator,
		sender:      sender,
		leadStore:   leadStore,
		senderEmail: senderEmail,
		adminEmail:  adminEmail,
		logger:      logger.With(slog.String("component", "script_generation_task")),
		status:      TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ScriptGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ScriptGenerationTask) Type() string {
	return TaskTypeScriptGeneration
}

// Payload returns the task parameters serialized as JSON
func (t *ScriptGenerationTask) Payload() []byte {
	payload := scriptGenerationPayload{
		RequestID: t.id.String(),
		Email:     t.request.Email,
		FirstName: t.request.FirstName,
		LastName:  t.request.LastName,
		MaxLength: t.request.MaxLength,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		// Marshaling a struct of strings and an int cannot fail
		return []byte("{}")
	}
	return data
}

// Status returns the current task status
func (t *ScriptGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute runs the generate, notify, persist pipeline for the request.
func (t *ScriptGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing

	log := t.logger.With(
		slog.String("task_id", t.id.String()),
		slog.Int("max_length", t.request.MaxLength))

	log.Info("starting script generation")

	script := t.generateWithFallback(ctx, log)

	msg := mail.NewScriptNotification(
		t.senderEmail, t.request.Email, t.adminEmail,
		t.request.Context, script)
	if err := t.sender.Send(ctx, msg); err != nil {
		t.status = TaskStatusFailed
		log.Error("notification failed, lead will not be recorded",
			slog.String("error", err.Error()))
		return fmt.Errorf("sending script notification: %w", err)
	}

	lead, err := domain.NewLead(t.request, script)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("building lead: %w", err)
	}

	if err := t.leadStore.Append(ctx, lead); err != nil {
		t.status = TaskStatusFailed
		// Mail is already out; flag the gap so an operator can reconcile.
		log.Error("lead persistence failed after notification",
			slog.String("error", err.Error()),
			slog.String("lead_id", lead.ID.String()),
			slog.Bool("operator_alert", true))
		return fmt.Errorf("appending lead: %w", err)
	}

	t.status = TaskStatusCompleted
	log.Info("script request processed",
		slog.String("lead_id", lead.ID.String()))
	return nil
}

// generateWithFallback asks the provider for a script and substitutes the
// canned fallback when the provider errors or returns nothing. Generation
// problems never fail the task.
func (t *ScriptGenerationTask) generateWithFallback(ctx context.Context, log *slog.Logger) string {
	script, err := t.generator.GenerateScript(ctx, t.request.Context, t.request.MaxLength)
	if err != nil {
		log.Warn("script generation failed, using fallback",
			slog.String("error", err.Error()))
		return generation.FallbackScript
	}
	if script == "" {
		log.Warn("script generation returned empty output, using fallback")
		return generation.FallbackScript
	}
	return script
}
