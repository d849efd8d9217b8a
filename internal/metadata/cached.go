package metadata

import (
	"context"
	"time"

	"thumbcard/internal/logging"
	"thumbcard/internal/metrics"
)

// VideoStore persists normalized records. GetVideo returns a nil video and
// no error when nothing is stored for the id.
type VideoStore interface {
	GetVideo(ctx context.Context, videoID string) (*Video, time.Time, error)
	SaveVideo(ctx context.Context, video *Video) error
}

// Cached serves lookups from a VideoStore while the stored record is
// younger than the TTL and refreshes it from the wrapped provider otherwise.
type Cached struct {
	next  Provider
	store VideoStore
	ttl   time.Duration
	now   func() time.Time
}

// NewCached wraps next with store. A non-positive ttl disables reads from
// the store but records are still written.
func NewCached(next Provider, store VideoStore, ttl time.Duration) *Cached {
	return &Cached{
		next:  next,
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) Lookup(ctx context.Context, videoID string) (*Video, error) {
	if !ValidVideoID(videoID) {
		return nil, ErrInvalidVideoID
	}

	if c.ttl > 0 {
		video, fetchedAt, err := c.store.GetVideo(ctx, videoID)
		switch {
		case err != nil:
			logging.Warn("metadata store read failed for %s: %v", videoID, err)
		case video != nil && c.now().Sub(fetchedAt) < c.ttl:
			metrics.MetadataLookupsTotal.WithLabelValues(c.Name(), "cached").Inc()
			return video, nil
		}
	}

	start := c.now()
	video, err := c.next.Lookup(ctx, videoID)
	metrics.MetadataLookupDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MetadataLookupsTotal.WithLabelValues(c.Name(), "error").Inc()
		return nil, err
	}
	metrics.MetadataLookupsTotal.WithLabelValues(c.Name(), "fetched").Inc()

	if err := c.store.SaveVideo(ctx, video); err != nil {
		logging.Warn("metadata store write failed for %s: %v", videoID, err)
	}

	return video, nil
}
