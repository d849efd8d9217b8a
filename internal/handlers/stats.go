package handlers

import (
	"net/http"
	"time"

	"thumbcard/internal/logging"
)

// StatsResponse contains render and cache statistics
type StatsResponse struct {
	TotalVideos  int    `json:"totalVideos"`
	TotalRenders int    `json:"totalRenders"`
	CachedCards  int    `json:"cachedCards"`
	CacheBytes   int64  `json:"cacheBytes"`
	LastPurge    string `json:"lastPurge,omitempty"`
	Provider     string `json:"provider"`
}

// GetStats returns render and cache statistics
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.CountStats(r.Context())
	if err != nil {
		logging.Error("failed to count stats: %v", err)
		writeJSONError(w, "failed to load stats", http.StatusInternalServerError)
		return
	}

	response := StatsResponse{
		TotalVideos:  stats.TotalVideos,
		TotalRenders: stats.TotalRenders,
		Provider:     h.provider.Name(),
	}

	if size, count, err := h.generator.GetCacheSize(); err != nil {
		logging.Warn("failed to measure card cache: %v", err)
	} else {
		response.CacheBytes = size
		response.CachedCards = count
	}

	if last, err := h.db.GetLastPurge(r.Context()); err != nil {
		logging.Warn("failed to read last purge time: %v", err)
	} else if !last.IsZero() {
		response.LastPurge = last.Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
