package metadata

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeProvider struct {
	video *Video
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Lookup(_ context.Context, videoID string) (*Video, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	v := *f.video
	v.ID = videoID
	return &v, nil
}

type memoryStore struct {
	videos  map[string]*Video
	fetched map[string]time.Time
	now     func() time.Time
	readErr error
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{videos: map[string]*Video{}, fetched: map[string]time.Time{}, now: now}
}

func (m *memoryStore) GetVideo(_ context.Context, videoID string) (*Video, time.Time, error) {
	if m.readErr != nil {
		return nil, time.Time{}, m.readErr
	}
	return m.videos[videoID], m.fetched[videoID], nil
}

func (m *memoryStore) SaveVideo(_ context.Context, v *Video) error {
	m.videos[v.ID] = v
	m.fetched[v.ID] = m.now()
	return nil
}

func TestCachedServesFreshRecords(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	next := &fakeProvider{video: &Video{Title: "T"}}
	store := newMemoryStore(now)
	cached := NewCached(next, store, time.Hour)
	cached.now = now

	ctx := context.Background()
	for range 3 {
		if _, err := cached.Lookup(ctx, "dQw4w9WgXcQ"); err != nil {
			t.Fatalf("Lookup() error: %v", err)
		}
	}
	if next.calls != 1 {
		t.Errorf("provider called %d times, want 1", next.calls)
	}

	clock = clock.Add(2 * time.Hour)
	if _, err := cached.Lookup(ctx, "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if next.calls != 2 {
		t.Errorf("expired record should refetch, calls = %d", next.calls)
	}
}

func TestCachedZeroTTLAlwaysFetches(t *testing.T) {
	next := &fakeProvider{video: &Video{Title: "T"}}
	store := newMemoryStore(time.Now)
	cached := NewCached(next, store, 0)

	for range 2 {
		if _, err := cached.Lookup(context.Background(), "dQw4w9WgXcQ"); err != nil {
			t.Fatalf("Lookup() error: %v", err)
		}
	}
	if next.calls != 2 {
		t.Errorf("calls = %d, want 2", next.calls)
	}
	if store.videos["dQw4w9WgXcQ"] == nil {
		t.Error("record should still be written")
	}
}

func TestCachedStoreErrorFallsThrough(t *testing.T) {
	next := &fakeProvider{video: &Video{Title: "T"}}
	store := newMemoryStore(time.Now)
	store.readErr = errors.New("disk on fire")

	v, err := NewCached(next, store, time.Hour).Lookup(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if v.Title != "T" || next.calls != 1 {
		t.Errorf("expected provider result, got %+v after %d calls", v, next.calls)
	}
}

func TestCachedPropagatesErrors(t *testing.T) {
	next := &fakeProvider{err: ErrVideoNotFound}
	store := newMemoryStore(time.Now)

	_, err := NewCached(next, store, time.Hour).Lookup(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("expected ErrVideoNotFound, got %v", err)
	}
	if len(store.videos) != 0 {
		t.Error("failed lookups must not be stored")
	}
}

func TestCachedRejectsInvalidID(t *testing.T) {
	next := &fakeProvider{video: &Video{}}
	_, err := NewCached(next, newMemoryStore(time.Now), time.Hour).Lookup(context.Background(), "bad")
	if !errors.Is(err, ErrInvalidVideoID) || next.calls != 0 {
		t.Errorf("expected ErrInvalidVideoID without provider call, got %v", err)
	}
}
