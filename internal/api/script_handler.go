package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bookscribs/scriptbuddy-api/internal/api/shared"
	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/task"
)

// TaskSubmitter enqueues a task for background processing.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// ScriptTaskFactory builds the background task for a validated request.
type ScriptTaskFactory interface {
	CreateTask(req *domain.ScriptRequest) (task.Task, error)
}

// ScriptHandler handles the script submission form and its POST endpoint.
type ScriptHandler struct {
	factory   ScriptTaskFactory
	submitter TaskSubmitter
}

// NewScriptHandler creates a new ScriptHandler.
func NewScriptHandler(factory ScriptTaskFactory, submitter TaskSubmitter) *ScriptHandler {
	return &ScriptHandler{
		factory:   factory,
		submitter: submitter,
	}
}

// ShowForm handles GET /script requests, rendering the submission form.
func (h *ScriptHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "script.html", nil)
}

// ShowSuccess handles GET /success requests, the page the form redirects
// to after an accepted submission.
func (h *ScriptHandler) ShowSuccess(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "success.html", nil)
}

// GenerateScript handles POST /script requests. It validates the form,
// enqueues the generation pipeline, and acknowledges immediately; the
// requester learns the outcome by email, never through this response.
func (h *ScriptHandler) GenerateScript(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to parse submission", err)
		return
	}

	email := r.FormValue("email")
	premise := r.FormValue("context")
	maxLengthRaw := r.FormValue("max_length")
	firstName := r.FormValue("first_name")
	lastName := r.FormValue("last_name")

	// Every field is required; an incomplete form fails the request's
	// precondition rather than being treated as a bad request.
	if err := firstMissingField(email, premise, maxLengthRaw, firstName, lastName); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	maxLength, err := strconv.Atoi(maxLengthRaw)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Invalid max_length value", err)
		return
	}

	req, err := domain.NewScriptRequest(email, premise, maxLength, firstName, lastName)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	tsk, err := h.factory.CreateTask(req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to schedule script generation", err)
		return
	}

	if err := h.submitter.Submit(r.Context(), tsk); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "Success")
}

// firstMissingField returns the validation error for the first empty
// required form field, or nil when all are present.
func firstMissingField(email, premise, maxLength, firstName, lastName string) error {
	switch {
	case email == "":
		return domain.ErrEmptyEmail
	case premise == "":
		return domain.ErrEmptyContext
	case maxLength == "":
		return domain.ErrEmptyMaxLength
	case firstName == "":
		return domain.ErrEmptyFirstName
	case lastName == "":
		return domain.ErrEmptyLastName
	default:
		return nil
	}
}
