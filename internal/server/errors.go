package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

// APIError is the error envelope for all error responses.
type APIError struct {
	Status  int    `json:"-"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
}

func errInvalidIdentifier() APIError {
	return APIError{Status: http.StatusBadRequest, Error: "Invalid channel ID format"}
}

func errNotFound() APIError {
	return APIError{
		Status:  http.StatusNotFound,
		Error:   "Channel not found",
		Message: "No channel exists with the provided ID",
	}
}

// errQueryFailed passes the store error message through for diagnosis.
func errQueryFailed(summary string, err error) APIError {
	return APIError{Status: http.StatusInternalServerError, Error: summary, Details: err.Error()}
}

func errMethodNotAllowed() APIError {
	return APIError{Status: http.StatusMethodNotAllowed, Error: "Method not allowed"}
}

func errInternal() APIError {
	return APIError{
		Status:  http.StatusInternalServerError,
		Error:   "Internal server error",
		Message: "An unexpected error occurred. Please try again later.",
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("writeJSON")
	}
}

// writeErr writes e. cause is logged (never sent) for 5xx responses.
func writeErr(w http.ResponseWriter, r *http.Request, e APIError, cause error) {
	if e.Status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(cause).Int("status", e.Status).Msg(e.Error)
	}
	writeJSON(w, r, e.Status, e)
}
