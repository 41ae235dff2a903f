package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/bookscribs/scriptbuddy-api/internal/api/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates holds the parsed HTML views. Parsing happens once at package
// init; a malformed embedded template is a programming error.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// renderTemplate executes the named template into a buffer first, so a
// render failure produces a clean 500 instead of a half-written page.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to render page", err)
		return
	}
	shared.RespondWithHTML(w, r, http.StatusOK, buf.Bytes())
}
