package handlers

import (
	"net/http"

	"thumbcard/internal/startup"
)

// VersionResponse is the build information plus the active metadata provider.
type VersionResponse struct {
	startup.BuildInfo
	Provider string `json:"provider,omitempty"`
}

// GetVersion returns the application version and build information
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	response := VersionResponse{BuildInfo: startup.GetBuildInfo()}
	if h.provider != nil {
		response.Provider = h.provider.Name()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, response)
}
