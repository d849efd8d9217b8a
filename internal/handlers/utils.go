package handlers

import (
	"encoding/json"
	"net/http"

	"thumbcard/internal/logging"
	"thumbcard/internal/media"
	"thumbcard/internal/metrics"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// writeJSONStatus writes a simple status response as JSON.
func writeJSONStatus(w http.ResponseWriter, status string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"status": status})
}

// writeCardError maps a lookup or render failure onto its HTTP status.
func writeCardError(w http.ResponseWriter, err error) {
	var (
		code    int
		message string
	)
	switch media.StatusForError(err) {
	case metrics.StatusInvalid:
		code, message = http.StatusBadRequest, "invalid video ID"
	case metrics.StatusNotFound:
		code, message = http.StatusNotFound, "video not found"
	case metrics.StatusNoThumbnail:
		code, message = http.StatusUnprocessableEntity, "No thumbnail found for the video."
	case metrics.StatusRender:
		code, message = http.StatusInternalServerError, "failed to render card"
	default:
		code, message = http.StatusBadGateway, "failed to fetch video data"
	}
	writeJSONError(w, message, code)
}
