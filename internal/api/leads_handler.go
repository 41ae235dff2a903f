package api

import (
	"bytes"
	"encoding/csv"
	"net/http"

	"github.com/bookscribs/scriptbuddy-api/internal/api/shared"
	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
)

// LeadsHandler serves the recorded leads, as an HTML table and as a CSV
// download. Both views are assembled from the lead store, so they work
// identically across storage backends.
type LeadsHandler struct {
	leadStore store.LeadStore
}

// NewLeadsHandler creates a new LeadsHandler.
func NewLeadsHandler(leadStore store.LeadStore) *LeadsHandler {
	return &LeadsHandler{leadStore: leadStore}
}

// leadsViewData is the payload for the leads.html template.
type leadsViewData struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// ListLeads handles GET /leads requests, rendering every recorded lead
// as an HTML table. An empty table renders with just the header row.
func (h *LeadsHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	rows := make([][]string, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, lead.Row())
	}

	renderTemplate(w, r, "leads.html", leadsViewData{
		Title:   "Leads",
		Columns: domain.LeadColumns,
		Rows:    rows,
	})
}

// DownloadLeads handles GET /leads/download requests, serving the lead
// table as a CSV attachment named leads.csv. The header row is always
// present, even when no leads have been recorded yet.
func (h *LeadsHandler) DownloadLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(domain.LeadColumns); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to build leads file", err)
		return
	}
	for _, lead := range leads {
		if err := writer.Write(lead.Row()); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to build leads file", err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to build leads file", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=leads.csv`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
