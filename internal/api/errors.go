package api

import (
	"errors"
	"net/http"

	"github.com/bookscribs/scriptbuddy-api/internal/domain"
	"github.com/bookscribs/scriptbuddy-api/internal/store"
	"github.com/bookscribs/scriptbuddy-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// A full queue is backpressure, not failure
	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrRunnerStopped):
		return http.StatusServiceUnavailable

	// Missing form fields fail the request's precondition
	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrEmptyContext),
		errors.Is(err, domain.ErrEmptyMaxLength),
		errors.Is(err, domain.ErrEmptyFirstName),
		errors.Is(err, domain.ErrEmptyLastName):
		return http.StatusPreconditionFailed

	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error. Malformed max_length values land
	// here too, matching the service's historical behavior.
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, task.ErrQueueFull),
		errors.Is(err, task.ErrRunnerStopped):
		return "Service is busy, please retry shortly"

	case errors.Is(err, domain.ErrEmptyEmail):
		return "Missing required field: email"

	case errors.Is(err, domain.ErrEmptyContext):
		return "Missing required field: context"

	case errors.Is(err, domain.ErrEmptyMaxLength):
		return "Missing required field: max_length"

	case errors.Is(err, domain.ErrEmptyFirstName):
		return "Missing required field: first_name"

	case errors.Is(err, domain.ErrEmptyLastName):
		return "Missing required field: last_name"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrListFailed):
		return "Failed to read leads"

	default:
		return "An unexpected error occurred"
	}
}
