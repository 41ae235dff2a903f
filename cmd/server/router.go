package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bookscribs/scriptbuddy-api/internal/api"
	apiMiddleware "github.com/bookscribs/scriptbuddy-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	scriptHandler := api.NewScriptHandler(app.taskFactory, app.taskRunner)
	leadsHandler := api.NewLeadsHandler(app.leadStore)
	staticHandler := api.NewStaticHandler(app.config.Server.StaticDir)

	// Script submission
	r.Get("/script", scriptHandler.ShowForm)
	r.Post("/script", scriptHandler.GenerateScript)
	r.Get("/success", scriptHandler.ShowSuccess)

	// Lead views, protected when admin credentials are configured
	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.AdminAuthMiddleware(app.config.Admin))
		r.Get("/leads", leadsHandler.ListLeads)
		r.Get("/leads/download", leadsHandler.DownloadLeads)
	})

	// Static assets
	r.Get("/static/{file_name}", staticHandler.ServeFile)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
