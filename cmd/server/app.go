package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookscribs/scriptbuddy-api/internal/config"
	"github.com/bookscribs/scriptbuddy-api/internal/generation"
	"github.com/bookscribs/scriptbuddy-api/internal/mail"
	"github.com/bookscribs/scriptbuddy-api/internal/platform/csvstore"
	"github.com/bookscribs/scriptbuddy-api/internal/platform/gemini"
	"github.com/bookscribs/scriptbuddy-api/internal/platform/postgres"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
	"github.com/bookscribs/scriptbuddy-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB // nil when the CSV store backend is active

	// Stores (using interfaces for proper abstraction)
	leadStore store.LeadStore

	// Pipeline collaborators
	generator generation.Generator
	sender    mail.Sender

	// Task handling
	taskRunner  *task.TaskRunner
	taskFactory *task.ScriptGenerationTaskFactory
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts the configuration and logger that must be
// established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	// Initialize the lead store for the configured backend
	if err := setupLeadStore(app); err != nil {
		return nil, err
	}

	// Create the LLM generator service
	generator, err := gemini.NewGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	app.generator = generator
	logger.Info("LLM generator initialized successfully", "model", cfg.LLM.ModelName)

	// Initialize the SMTP notification sender
	app.sender, err = mail.NewSMTPSender(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
	}

	// Create the task factory that wires the pipeline together
	app.taskFactory, err = task.NewScriptGenerationTaskFactory(
		app.generator,
		app.sender,
		app.leadStore,
		cfg.Mail.SenderEmail,
		cfg.Mail.AdminEmail,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task factory: %w", err)
	}

	// Initialize and start the task runner
	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupLeadStore initializes the lead store named by the store driver
// configuration. The postgres backend also opens the database connection
// and applies pending migrations.
func setupLeadStore(app *application) error {
	switch app.config.Store.Driver {
	case "csv":
		leadStore, err := csvstore.NewLeadStore(app.config.Store.CSVPath, app.logger)
		if err != nil {
			return fmt.Errorf("failed to create CSV lead store: %w", err)
		}
		app.leadStore = leadStore
		app.logger.Info("Lead store initialized",
			"driver", "csv", "path", app.config.Store.CSVPath)
		return nil

	case "postgres":
		db, err := setupAppDatabase(app.config, app.logger)
		if err != nil {
			return fmt.Errorf("failed to set up database: %w", err)
		}
		if err := runMigrations(db, app.logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.db = db
		app.leadStore = postgres.NewLeadStore(db, app.logger)
		app.logger.Info("Lead store initialized", "driver", "postgres")
		return nil

	default:
		// Unreachable: config validation restricts the driver values.
		return fmt.Errorf("unknown store driver %q", app.config.Store.Driver)
	}
}

// setupTaskRunner initializes and starts the background task processor.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	taskRunner := task.NewTaskRunner(task.RunnerConfig{
		WorkerCount:     app.config.Task.WorkerCount,
		QueueSize:       app.config.Task.QueueSize,
		ShutdownTimeout: 30 * time.Second,
	}, app.logger)

	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	return taskRunner, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The task
// runner drains first so in-flight pipelines can still reach the store.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
