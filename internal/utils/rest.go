package utils

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error            string `json:"error"`
	ProcessingTimeMs int64  `json:"processing_time,omitempty"`
}

// RespondWithError sends a JSON error envelope.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithTimedError sends a JSON error envelope carrying the elapsed
// pipeline time, so operators can tell slow failures from fast ones.
func RespondWithTimedError(w http.ResponseWriter, code int, message string, elapsedMs int64) {
	RespondWithJSON(w, code, ErrorResponse{Error: message, ProcessingTimeMs: elapsedMs})
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response: "+err.Error(), http.StatusInternalServerError)
		return err
	}
	return nil
}
