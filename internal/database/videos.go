package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"thumbcard/internal/metadata"
)

// GetVideo returns the stored record for videoID and when it was fetched.
// A missing record yields a nil video and no error.
func (d *Database) GetVideo(ctx context.Context, videoID string) (*metadata.Video, time.Time, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_video", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		v         metadata.Video
		fetchedAt int64
	)
	err = d.db.QueryRowContext(ctx, `
		SELECT id, title, duration, thumbnail_url, views, channel, live, fetched_at
		FROM videos WHERE id = ?
	`, videoID).Scan(&v.ID, &v.Title, &v.Duration, &v.ThumbnailURL, &v.Views, &v.Channel, &v.Live, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	return &v, time.Unix(fetchedAt, 0), nil
}

// SaveVideo inserts or replaces the record for video.ID, stamping it with
// the current time.
func (d *Database) SaveVideo(ctx context.Context, video *metadata.Video) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("save_video", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO videos (id, title, duration, thumbnail_url, views, channel, live, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			duration = excluded.duration,
			thumbnail_url = excluded.thumbnail_url,
			views = excluded.views,
			channel = excluded.channel,
			live = excluded.live,
			fetched_at = excluded.fetched_at
	`, video.ID, video.Title, video.Duration, video.ThumbnailURL, video.Views, video.Channel, video.Live,
		time.Now().Unix())
	return err
}
