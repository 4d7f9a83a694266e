// Package handler provides the HTTP presentation layer for todovault.
// The client screens (login, register, tasks, task details) map onto a
// small JSON API; every domain error becomes a blocking error response.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okovalenko/todovault/internal/domain"
)

// apiError is the JSON error envelope returned for every failed request.
type apiError struct {
	// Error is a stable machine-readable error token.
	Error string `json:"error"`

	// Message is the human-readable notification text.
	Message string `json:"message"`
}

// errorToken maps a domain error to its HTTP status and stable token.
func errorToken(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusBadRequest, "confirmation_required"
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusConflict, "duplicate_user"
	case errors.Is(err, domain.ErrNoUsers):
		return http.StatusUnauthorized, "no_users"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusUnauthorized, "no_active_session"
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "task_not_found"
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, "storage_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// decodeJSON decodes the request body into v.
// Returns domain.ErrValidation for malformed bodies.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewDomainError(domain.ErrValidation, "invalid request body", "")
	}
	return nil
}
