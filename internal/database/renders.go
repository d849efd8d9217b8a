package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"thumbcard/internal/logging"
	"thumbcard/internal/metrics"
)

// Render is one generated card.
type Render struct {
	VideoID    string        `json:"videoId"`
	Path       string        `json:"path"`
	Size       int64         `json:"size"`
	Duration   time.Duration `json:"duration"`
	RenderedAt time.Time     `json:"renderedAt"`
}

// RecordRender appends a render to the history.
func (d *Database) RecordRender(ctx context.Context, r Render) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("record_render", start, err) }()

	if r.RenderedAt.IsZero() {
		r.RenderedAt = time.Now()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO renders (video_id, path, size, duration_ms, rendered_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.VideoID, r.Path, r.Size, r.Duration.Milliseconds(), r.RenderedAt.Unix())
	return err
}

// LastRender returns the most recent render of videoID, or nil if the video
// was never rendered.
func (d *Database) LastRender(ctx context.Context, videoID string) (*Render, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("last_render", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		r          Render
		durationMS int64
		renderedAt int64
	)
	err = d.db.QueryRowContext(ctx, `
		SELECT video_id, path, size, duration_ms, rendered_at
		FROM renders WHERE video_id = ?
		ORDER BY rendered_at DESC, id DESC
		LIMIT 1
	`, videoID).Scan(&r.VideoID, &r.Path, &r.Size, &durationMS, &renderedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.RenderedAt = time.Unix(renderedAt, 0)
	return &r, nil
}

// CountStats counts stored videos and recorded renders.
func (d *Database) CountStats(ctx context.Context) (metrics.Stats, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_stats", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var stats metrics.Stats
	err = d.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM videos), (SELECT COUNT(*) FROM renders)
	`).Scan(&stats.TotalVideos, &stats.TotalRenders)
	return stats, err
}

// GetStats implements metrics.StatsProvider. Errors are logged and yield
// zero counts.
func (d *Database) GetStats() metrics.Stats {
	stats, err := d.CountStats(context.Background())
	if err != nil {
		logging.Warn("Failed to count database stats: %v", err)
	}
	return stats
}
