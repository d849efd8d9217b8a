package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"thumbcard/internal/logging"
	"thumbcard/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Ready    bool   `json:"ready"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Provider string `json:"provider"`
	Error    string `json:"error,omitempty"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`

	// Stats summary
	TotalVideos  int `json:"totalVideos"`
	TotalRenders int `json:"totalRenders"`
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        true,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Provider:     h.provider.Name(),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	stats, err := h.db.CountStats(r.Context())
	if err != nil {
		logging.Warn("Health check: database unavailable: %v", err)
		response.Status = statusDegraded
		response.Ready = false
		response.Error = "database unavailable"
	} else {
		response.TotalVideos = stats.TotalVideos
		response.TotalRenders = stats.TotalRenders
	}

	w.Header().Set("Content-Type", "application/json")
	if response.Ready {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the database answers and the card
// cache directory exists.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		logging.Debug("Readiness: database ping failed: %v", err)
		writeJSONStatus(w, "not_ready", http.StatusServiceUnavailable)
		return
	}
	if info, err := os.Stat(h.generator.CacheDir()); err != nil || !info.IsDir() {
		logging.Debug("Readiness: cache directory unavailable: %v", err)
		writeJSONStatus(w, "not_ready", http.StatusServiceUnavailable)
		return
	}
	writeJSONStatus(w, "ready", http.StatusOK)
}
