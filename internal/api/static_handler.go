package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bookscribs/scriptbuddy-api/internal/api/shared"
)

// StaticHandler serves files from the configured static asset directory.
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a handler serving assets from dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// ServeFile handles GET /static/{file_name} requests. The file name is a
// single path element; anything that could escape the asset directory is
// rejected before touching the filesystem.
func (h *StaticHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "file_name")

	if fileName == "" || fileName != filepath.Base(fileName) ||
		strings.HasPrefix(fileName, ".") {
		shared.RespondWithError(w, r, http.StatusNotFound, "File not found")
		return
	}

	path := filepath.Join(h.dir, fileName)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			shared.RespondWithError(w, r, http.StatusNotFound, "File not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to read file", err)
		return
	}
	if info.IsDir() {
		shared.RespondWithError(w, r, http.StatusNotFound, "File not found")
		return
	}

	// ServeFile sets Content-Type from the extension and handles range
	// requests for larger assets.
	http.ServeFile(w, r, path)
}
