package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const lastPurgeKey = "last_cache_purge"

// GetMetadata retrieves a metadata value by key.
// Returns sql.ErrNoRows if the key doesn't exist.
func (d *Database) GetMetadata(ctx context.Context, key string) (string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_metadata", start, ignoreNoRows(err)) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var value sql.NullString
	err = d.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value.String, nil
}

// SetMetadata sets a metadata key-value pair.
func (d *Database) SetMetadata(ctx context.Context, key, value string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("set_metadata", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// GetLastPurge returns when the card cache was last purged.
// Returns zero time if it never was.
func (d *Database) GetLastPurge(ctx context.Context) (time.Time, error) {
	value, err := d.GetMetadata(ctx, lastPurgeKey)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value)
}

// SetLastPurge stores when the card cache was last purged.
func (d *Database) SetLastPurge(ctx context.Context, t time.Time) error {
	if t.IsZero() {
		return d.SetMetadata(ctx, lastPurgeKey, "")
	}
	return d.SetMetadata(ctx, lastPurgeKey, t.UTC().Format(time.RFC3339))
}

func ignoreNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
