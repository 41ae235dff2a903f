package task

import (
	"fmt"
	"log/slog"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/generation"
	"github.com/bookscribs/scriptbuddy-api/internal/mail"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
)

// ScriptGenerationTaskFactory creates ScriptGenerationTask instances with
// their dependencies pre-wired, so the API layer only has to hand over the
// validated request.
type ScriptGenerationTaskFactory struct {
	generator   generation.Generator
	sender      mail.Sender
	leadStore   store.LeadStore
	senderEmail string
	adminEmail  string
	logger      *slog.Logger
}

// NewScriptGenerationTaskFactory creates a factory for script generation
// tasks, validating that all required dependencies are present up front.
func NewScriptGenerationTaskFactory(
	generator generation.Generator,
	sender mail.Sender,
	leadStore store.LeadStore,
	senderEmail string,
	adminEmail string,
	logger *slog.Logger,
) (*ScriptGenerationTaskFactory, error) {
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

	return &ScriptGenerationTaskFactory{
		generator:   generator,
		sender:      sender,
		leadStore:   leadStore,
		senderEmail: senderEmail,
		adminEmail:  adminEmail,
		logger:      logger,
	}, nil
}

// CreateTask builds a task for the given request.
func (f *ScriptGenerationTaskFactory) CreateTask(request *domain.ScriptRequest) (Task, error) {
	return NewScriptGenerationTask(
		request,
		f.generator,
		f.sender,
		f.leadStore,
		f.senderEmail,
		f.adminEmail,
		f.logger,
	)
}
