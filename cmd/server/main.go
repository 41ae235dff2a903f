// Package main implements the entry point for the Script Buddy API
// server, which turns submitted story premises into generated movie
// script excerpts delivered by email.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/bookscribs/scriptbuddy-api/internal/config"
	"github.com/bookscribs/scriptbuddy-api/internal/platform/logger"
)

// main is the entry point for the scriptbuddy-api server. It initializes
// configuration and logging, wires the application dependencies, and
// starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start scriptbuddy-api: %v", err)
	}
}

// run loads configuration, sets up application components, and runs the
// server until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_driver", cfg.Store.Driver)

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
