package media

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"

	"thumbcard/internal/database"
	"thumbcard/internal/metadata"
	"thumbcard/internal/metrics"
	"thumbcard/internal/render"
)

type fakeProvider struct {
	video *metadata.Video
	err   error
	calls atomic.Int32
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Lookup(_ context.Context, videoID string) (*metadata.Video, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	v := *f.video
	v.ID = videoID
	return &v, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	renders []database.Render
}

func (f *fakeRecorder) RecordRender(_ context.Context, r database.Render) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders = append(f.renders, r)
	return nil
}

func newSourceServer(t *testing.T) *httptest.Server {
	t.Helper()
	body := encodedImage(t, "jpeg")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestGenerator(t *testing.T, provider metadata.Provider, recorder RenderRecorder) *Generator {
	t.Helper()

	assets, err := render.DefaultAssets()
	if err != nil {
		t.Fatalf("DefaultAssets() error: %v", err)
	}

	opts := Options{
		CacheDir: t.TempDir(),
		Provider: provider,
		Assets:   assets,
		NewRand:  func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) },
	}
	if recorder != nil {
		opts.Recorder = recorder
	}

	g, err := NewGenerator(opts)
	if err != nil {
		t.Fatalf("NewGenerator() error: %v", err)
	}
	return g
}

func testVideo(server *httptest.Server, path string) *metadata.Video {
	return &metadata.Video{
		Title:        "Never Gonna Give You Up",
		Duration:     "3:33",
		ThumbnailURL: server.URL + path,
		Views:        "1.6B views",
		Channel:      "Rick Astley",
	}
}

func TestGetThumbRendersAndCaches(t *testing.T) {
	server := newSourceServer(t)
	provider := &fakeProvider{video: testVideo(server, "/hq.jpg")}
	recorder := &fakeRecorder{}
	g := newTestGenerator(t, provider, recorder)

	path, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetThumb() error: %v", err)
	}
	if path != filepath.Join(g.CacheDir(), "dQw4w9WgXcQ_v4.png") {
		t.Errorf("GetThumb() path = %s", path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("cached card is not a readable image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != render.CardWidth || b.Dy() != render.CardHeight {
		t.Errorf("card size = %dx%d, want %dx%d", b.Dx(), b.Dy(), render.CardWidth, render.CardHeight)
	}

	// The source download is removed once the card is written.
	leftovers, _ := filepath.Glob(filepath.Join(g.CacheDir(), "thumb*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
	tmps, _ := filepath.Glob(filepath.Join(g.CacheDir(), "*.tmp"))
	if len(tmps) != 0 {
		t.Errorf("atomic write left temp files: %v", tmps)
	}

	again, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ")
	if err != nil || again != path {
		t.Fatalf("second GetThumb() = %s, %v", again, err)
	}
	if n := provider.calls.Load(); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}

	if len(recorder.renders) != 1 {
		t.Fatalf("recorded %d renders, want 1", len(recorder.renders))
	}
	if r := recorder.renders[0]; r.VideoID != "dQw4w9WgXcQ" || r.Path != path || r.Size == 0 {
		t.Errorf("recorded render = %+v", r)
	}
}

func TestGetThumbExistingFileShortCircuits(t *testing.T) {
	provider := &fakeProvider{err: errors.New("must not be called")}
	g := newTestGenerator(t, provider, nil)

	path := g.CachePath("dQw4w9WgXcQ")
	if g.IsCached("dQw4w9WgXcQ") {
		t.Fatal("IsCached() = true before the card exists")
	}
	if err := os.WriteFile(path, []byte("already here"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !g.IsCached("dQw4w9WgXcQ") {
		t.Error("IsCached() = false for an existing card")
	}
	if g.IsCached("../etc/passwd") {
		t.Error("IsCached() = true for an invalid ID")
	}

	got, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ")
	if err != nil || got != path {
		t.Fatalf("GetThumb() = %s, %v", got, err)
	}
	if provider.calls.Load() != 0 {
		t.Error("provider should not be called for a cached card")
	}
}

func TestGetThumbConcurrentRequestsRenderOnce(t *testing.T) {
	server := newSourceServer(t)
	provider := &fakeProvider{video: testVideo(server, "/hq.jpg")}
	g := newTestGenerator(t, provider, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("GetThumb() error: %v", err)
	}
	if n := provider.calls.Load(); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}
	if len(g.locks) != 0 {
		t.Errorf("lock table not cleaned up: %d entries", len(g.locks))
	}
}

func TestGetThumbErrors(t *testing.T) {
	server := newSourceServer(t)

	noThumb := testVideo(server, "")
	noThumb.ThumbnailURL = ""

	tests := []struct {
		name       string
		id         string
		provider   *fakeProvider
		wantErr    error
		wantStatus string
	}{
		{
			name:       "Invalid id",
			id:         "../etc",
			provider:   &fakeProvider{video: testVideo(server, "/hq.jpg")},
			wantErr:    metadata.ErrInvalidVideoID,
			wantStatus: metrics.StatusInvalid,
		},
		{
			name:       "Unknown video",
			id:         "dQw4w9WgXcQ",
			provider:   &fakeProvider{err: metadata.ErrVideoNotFound},
			wantErr:    metadata.ErrVideoNotFound,
			wantStatus: metrics.StatusNotFound,
		},
		{
			name:       "No thumbnail",
			id:         "dQw4w9WgXcQ",
			provider:   &fakeProvider{video: noThumb},
			wantErr:    metadata.ErrNoThumbnail,
			wantStatus: metrics.StatusNoThumbnail,
		},
		{
			name:       "Source gone",
			id:         "dQw4w9WgXcQ",
			provider:   &fakeProvider{video: testVideo(server, "/gone.jpg")},
			wantStatus: metrics.StatusUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(t, tt.provider, nil)

			_, err := g.GetThumb(context.Background(), tt.id)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("GetThumb() error = %v, want %v", err, tt.wantErr)
			}
			if got := StatusForError(err); got != tt.wantStatus {
				t.Errorf("StatusForError() = %q, want %q", got, tt.wantStatus)
			}

			entries, _ := os.ReadDir(g.CacheDir())
			if len(entries) != 0 {
				t.Errorf("failed render left %d files in the cache", len(entries))
			}
		})
	}
}

func TestPurge(t *testing.T) {
	server := newSourceServer(t)
	g := newTestGenerator(t, &fakeProvider{video: testVideo(server, "/hq.jpg")}, nil)

	if _, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ"); err != nil {
		t.Fatalf("GetThumb() error: %v", err)
	}

	removed, err := g.Purge("dQw4w9WgXcQ")
	if err != nil || !removed {
		t.Fatalf("Purge() = %v, %v", removed, err)
	}
	if fileExists(g.CachePath("dQw4w9WgXcQ")) {
		t.Error("card still cached after purge")
	}

	removed, err = g.Purge("dQw4w9WgXcQ")
	if err != nil || removed {
		t.Errorf("second Purge() = %v, %v, want false, nil", removed, err)
	}

	if _, err := g.Purge("bad"); !errors.Is(err, metadata.ErrInvalidVideoID) {
		t.Errorf("Purge(bad) error = %v", err)
	}
}

func TestPurgeAll(t *testing.T) {
	g := newTestGenerator(t, &fakeProvider{}, nil)

	for _, id := range []string{"aaaaaaaaaaa", "bbbbbbbbbbb"} {
		if err := os.WriteFile(g.CachePath(id), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	other := filepath.Join(g.CacheDir(), "keep.txt")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := g.PurgeAll()
	if err != nil || n != 2 {
		t.Fatalf("PurgeAll() = %d, %v, want 2", n, err)
	}
	if !fileExists(other) {
		t.Error("PurgeAll removed a file that is not a card")
	}
}

func TestGetCacheSize(t *testing.T) {
	g := newTestGenerator(t, &fakeProvider{}, nil)

	if err := os.WriteFile(g.CachePath("aaaaaaaaaaa"), []byte(strings.Repeat("x", 100)), 0o644); err != nil {
		t.Fatal(err)
	}

	size, count, err := g.GetCacheSize()
	if err != nil {
		t.Fatalf("GetCacheSize() error: %v", err)
	}
	if size != 100 || count != 1 {
		t.Errorf("GetCacheSize() = %d, %d, want 100, 1", size, count)
	}

	// Cached until invalidated.
	if err := os.WriteFile(g.CachePath("bbbbbbbbbbb"), []byte("yy"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, count, _ := g.GetCacheSize(); count != 1 {
		t.Errorf("cached count = %d, want 1", count)
	}

	g.invalidateCacheSize()
	size, count, err = g.GetCacheSize()
	if err != nil || size != 102 || count != 2 {
		t.Errorf("GetCacheSize() after invalidate = %d, %d, %v", size, count, err)
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	if _, err := NewGenerator(Options{Provider: &fakeProvider{}}); err == nil {
		t.Error("expected error without cache dir")
	}
	if _, err := NewGenerator(Options{CacheDir: t.TempDir()}); err == nil {
		t.Error("expected error without provider")
	}
}

func TestCardFor(t *testing.T) {
	card := CardFor(&metadata.Video{Title: "T", Channel: "C", Views: "V", Duration: "Live"})
	if card.Title != "T" || card.Channel != "C" || card.Views != "V" || !card.IsLive() {
		t.Errorf("CardFor() = %+v", card)
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.StatusSuccess},
		{metadata.ErrInvalidVideoID, metrics.StatusInvalid},
		{metadata.ErrVideoNotFound, metrics.StatusNotFound},
		{metadata.ErrNoThumbnail, metrics.StatusNoThumbnail},
		{&StatusError{Code: 500}, metrics.StatusUpstream},
		{ErrNotImage, metrics.StatusUpstream},
		{ErrRenderFailed, metrics.StatusRender},
		{errors.New("network down"), metrics.StatusUpstream},
	}
	for _, tt := range tests {
		if got := StatusForError(tt.err); got != tt.want {
			t.Errorf("StatusForError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

type fakeGate struct {
	err   error
	calls atomic.Int32
}

func (f *fakeGate) Wait(_ context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestGetThumbWaitsOnMemoryGate(t *testing.T) {
	server := newSourceServer(t)
	provider := &fakeProvider{video: testVideo(server, "/hq.jpg")}

	t.Run("open gate renders", func(t *testing.T) {
		g := newTestGenerator(t, provider, nil)
		gate := &fakeGate{}
		g.memory = gate

		if _, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ"); err != nil {
			t.Fatalf("GetThumb() error: %v", err)
		}
		if gate.calls.Load() != 1 {
			t.Errorf("gate called %d times, want 1", gate.calls.Load())
		}
		if _, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ"); err != nil {
			t.Fatalf("cached GetThumb() error: %v", err)
		}
		if gate.calls.Load() != 1 {
			t.Errorf("cache hit consulted the gate")
		}
	})

	t.Run("gate error aborts", func(t *testing.T) {
		g := newTestGenerator(t, provider, nil)
		g.memory = &fakeGate{err: context.Canceled}

		_, err := g.GetThumb(context.Background(), "dQw4w9WgXcQ")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("GetThumb() error = %v, want context.Canceled", err)
		}
		if g.IsCached("dQw4w9WgXcQ") {
			t.Error("card cached despite gate error")
		}
	})
}
