package handlers

import (
	"net/http"
	"time"

	"thumbcard/internal/logging"
	"thumbcard/internal/metadata"

	"github.com/gorilla/mux"
)

// VideoResponse is the normalized metadata plus the state of its card.
type VideoResponse struct {
	*metadata.Video
	Provider   string      `json:"provider"`
	CardURL    string      `json:"cardUrl"`
	Cached     bool        `json:"cached"`
	LastRender *RenderInfo `json:"lastRender,omitempty"`
}

// RenderInfo summarizes the most recent render of a card.
type RenderInfo struct {
	RenderedAt time.Time `json:"renderedAt"`
	DurationMs int64     `json:"durationMs"`
	Size       int64     `json:"size"`
}

// GetVideo returns the metadata a card would be rendered from.
func (h *Handlers) GetVideo(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["id"]
	if !metadata.ValidVideoID(videoID) {
		writeJSONError(w, "invalid video ID", http.StatusBadRequest)
		return
	}

	video, err := h.provider.Lookup(r.Context(), videoID)
	if err != nil {
		logging.Warn("Metadata lookup failed for %s: %v", videoID, err)
		writeCardError(w, err)
		return
	}

	response := VideoResponse{
		Video:    video,
		Provider: h.provider.Name(),
		CardURL:  "/api/thumbnail/" + videoID,
		Cached:   h.generator.IsCached(videoID),
	}

	last, err := h.db.LastRender(r.Context(), videoID)
	if err != nil {
		logging.Warn("failed to load render history for %s: %v", videoID, err)
	} else if last != nil {
		response.LastRender = &RenderInfo{
			RenderedAt: last.RenderedAt,
			DurationMs: last.Duration.Milliseconds(),
			Size:       last.Size,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}
