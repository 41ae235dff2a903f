package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/bookscribs/scriptbuddy-api/internal/api/shared"
	"github.com/bookscribs/scriptbuddy-api/internal/config"
)

// AdminAuthMiddleware protects the lead views with HTTP Basic auth,
// comparing the supplied password against the configured bcrypt hash.
// When no password hash is configured the views are left open, matching
// the historical behavior of the service.
func AdminAuthMiddleware(cfg config.AdminConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.PasswordHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok || !credentialsValid(cfg, username, password) {
				slog.Warn("rejected admin request",
					slog.String("trace_id", shared.GetTraceID(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr))

				w.Header().Set("WWW-Authenticate", `Basic realm="leads"`)
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func credentialsValid(cfg config.AdminConfig, username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(password))
	return usernameMatch && passwordErr == nil
}
