package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"expiry-discount/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps domain errors onto HTTP responses: 404 for missing
// records, 409 for a cycle already in flight, 500 for everything else.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrCycleInFlight):
		writeError(w, r, err.Error(), "CYCLE_IN_FLIGHT", http.StatusConflict)
	default:
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
