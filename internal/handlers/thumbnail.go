package handlers

import (
	"net/http"
	"time"

	"thumbcard/internal/logging"
	"thumbcard/internal/metadata"

	"github.com/gorilla/mux"
)

// GetThumbnail serves the card for the video, rendering it on a cache miss.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["id"]

	cached := h.generator.IsCached(videoID)

	path, err := h.generator.GetThumb(r.Context(), videoID)
	if err != nil {
		writeCardError(w, err)
		return
	}

	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

// DeleteThumbnail removes the cached card so the next request re-renders it.
func (h *Handlers) DeleteThumbnail(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["id"]

	removed, err := h.generator.Purge(videoID)
	if err != nil {
		if !metadata.ValidVideoID(videoID) {
			writeJSONError(w, "invalid video ID", http.StatusBadRequest)
			return
		}
		logging.Error("Purge failed for %s: %v", videoID, err)
		writeJSONError(w, "failed to purge card", http.StatusInternalServerError)
		return
	}

	if removed {
		h.recordPurge(r)
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]interface{}{
		"id":     videoID,
		"purged": removed,
	})
}

// PurgeThumbnails removes every cached card.
func (h *Handlers) PurgeThumbnails(w http.ResponseWriter, r *http.Request) {
	removed, err := h.generator.PurgeAll()
	if err != nil {
		logging.Error("Cache purge incomplete (%d removed): %v", removed, err)
		writeJSONError(w, "failed to purge cache", http.StatusInternalServerError)
		return
	}

	h.recordPurge(r)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]int{"purged": removed})
}

func (h *Handlers) recordPurge(r *http.Request) {
	if err := h.db.SetLastPurge(r.Context(), time.Now()); err != nil {
		logging.Warn("failed to record cache purge: %v", err)
	}
}
