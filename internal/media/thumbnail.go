package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"

	"thumbcard/internal/database"
	"thumbcard/internal/filesystem"
	"thumbcard/internal/logging"
	"thumbcard/internal/metadata"
	"thumbcard/internal/metrics"
	"thumbcard/internal/render"
)

const (
	// cacheSuffix versions the card layout; bumping it invalidates old files.
	cacheSuffix = "_v4.png"

	cacheSizeTTL = 2 * time.Minute
)

// ErrRenderFailed wraps failures to compose or store a card.
var ErrRenderFailed = errors.New("card render failed")

// RenderRecorder receives one record per generated card.
type RenderRecorder interface {
	RecordRender(ctx context.Context, r database.Render) error
}

// MemoryGate holds back renders while memory is under pressure.
type MemoryGate interface {
	Wait(ctx context.Context) error
}

// Options configures a Generator.
type Options struct {
	CacheDir   string
	Provider   metadata.Provider
	Downloader *Downloader
	// Assets defaults to render.DefaultAssets.
	Assets *render.Assets
	Layout render.Layout
	// Recorder is optional.
	Recorder RenderRecorder
	// Memory is optional.
	Memory MemoryGate
	// NewRand supplies the generator for each render; nil seeds a fresh one.
	NewRand func() *rand.Rand
}

// Generator produces and caches cards.
type Generator struct {
	cacheDir   string
	provider   metadata.Provider
	downloader *Downloader
	assets     *render.Assets
	layout     render.Layout
	recorder   RenderRecorder
	memory     MemoryGate
	newRand    func() *rand.Rand

	locksMu sync.Mutex
	locks   map[string]*keyLock

	cacheBytes      atomic.Int64
	cacheCount      atomic.Int64
	lastCacheUpdate atomic.Int64
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewGenerator creates the cache directory and returns a Generator.
func NewGenerator(opts Options) (*Generator, error) {
	if opts.CacheDir == "" {
		return nil, errors.New("cache directory is required")
	}
	if opts.Provider == nil {
		return nil, errors.New("metadata provider is required")
	}
	if err := os.MkdirAll(opts.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", opts.CacheDir, err)
	}

	assets := opts.Assets
	if assets == nil {
		var err error
		if assets, err = render.DefaultAssets(); err != nil {
			return nil, fmt.Errorf("failed to load default assets: %w", err)
		}
	}

	downloader := opts.Downloader
	if downloader == nil {
		downloader = NewDownloader(15 * time.Second)
	}

	layout := opts.Layout
	if layout.PreviewBorderColor == nil {
		layout.PreviewBorderColor = render.DefaultLayout.PreviewBorderColor
	}

	logging.Debug("Generator: cache dir %s, provider %s", opts.CacheDir, opts.Provider.Name())

	return &Generator{
		cacheDir:   opts.CacheDir,
		provider:   opts.Provider,
		downloader: downloader,
		assets:     assets,
		layout:     layout,
		recorder:   opts.Recorder,
		memory:     opts.Memory,
		newRand:    opts.NewRand,
		locks:      make(map[string]*keyLock),
	}, nil
}

// Provider returns the metadata provider cards are rendered from.
func (g *Generator) Provider() metadata.Provider {
	return g.provider
}

// CacheDir returns the directory cards are stored in.
func (g *Generator) CacheDir() string {
	return g.cacheDir
}

// CachePath returns where the card for videoID is stored.
func (g *Generator) CachePath(videoID string) string {
	return filepath.Join(g.cacheDir, videoID+cacheSuffix)
}

// IsCached reports whether a card for videoID is already on disk.
func (g *Generator) IsCached(videoID string) bool {
	return metadata.ValidVideoID(videoID) && fileExists(g.CachePath(videoID))
}

// GetThumb returns the path of the card for videoID, rendering it first
// when it is not cached.
func (g *Generator) GetThumb(ctx context.Context, videoID string) (path string, err error) {
	start := time.Now()
	status := metrics.StatusSuccess
	defer func() {
		if err != nil {
			status = StatusForError(err)
			logging.Error("Card generation failed for %s: %v", videoID, err)
		}
		metrics.CardRendersTotal.WithLabelValues(status).Inc()
	}()

	if !metadata.ValidVideoID(videoID) {
		return "", fmt.Errorf("%w: %q", metadata.ErrInvalidVideoID, videoID)
	}

	path = g.CachePath(videoID)
	if fileExists(path) {
		metrics.CardCacheHits.Inc()
		status = metrics.StatusCached
		return path, nil
	}

	unlock := g.lock(videoID)
	defer unlock()

	// Another request may have rendered it while we waited.
	if fileExists(path) {
		metrics.CardCacheHits.Inc()
		status = metrics.StatusCached
		return path, nil
	}
	metrics.CardCacheMisses.Inc()

	if err := g.generate(ctx, videoID, path); err != nil {
		return "", err
	}

	elapsed := time.Since(start)
	metrics.CardRenderDuration.WithLabelValues("total").Observe(elapsed.Seconds())
	logging.Debug("Card generated for %s in %v: %s", videoID, elapsed, path)

	g.record(ctx, videoID, path, elapsed)
	return path, nil
}

func (g *Generator) generate(ctx context.Context, videoID, path string) error {
	metrics.CardRendersInProgress.Inc()
	defer metrics.CardRendersInProgress.Dec()

	phase := time.Now()
	video, err := g.provider.Lookup(ctx, videoID)
	observePhase("lookup", phase)
	if err != nil {
		return err
	}
	if video.ThumbnailURL == "" {
		return fmt.Errorf("%w: %s", metadata.ErrNoThumbnail, videoID)
	}

	if g.memory != nil {
		if err := g.memory.Wait(ctx); err != nil {
			return err
		}
	}

	phase = time.Now()
	sourcePath, err := g.downloader.Download(ctx, video.ThumbnailURL, g.cacheDir, videoID)
	observePhase("download", phase)
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(sourcePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Warn("failed to remove source thumbnail %s: %v", sourcePath, err)
		}
	}()

	phase = time.Now()
	src, err := LoadSource(sourcePath)
	observePhase("decode", phase)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if g.newRand != nil {
		rng = g.newRand()
	}

	phase = time.Now()
	card, err := render.ComposeLayout(src, CardFor(video), g.assets, g.layout, rng)
	observePhase("compose", phase)
	if err != nil {
		return fmt.Errorf("%w: compose %s: %w", ErrRenderFailed, videoID, err)
	}

	phase = time.Now()
	err = writeAtomic(path, func(f *os.File) error {
		return imaging.Encode(f, card, imaging.PNG)
	})
	observePhase("encode", phase)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrRenderFailed, path, err)
	}

	g.invalidateCacheSize()
	return nil
}

func (g *Generator) record(ctx context.Context, videoID, path string, elapsed time.Duration) {
	if g.recorder == nil {
		return
	}
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	err := g.recorder.RecordRender(ctx, database.Render{
		VideoID:  videoID,
		Path:     path,
		Size:     size,
		Duration: elapsed,
	})
	if err != nil {
		logging.Warn("failed to record render of %s: %v", videoID, err)
	}
}

// Purge removes the cached card for videoID. It reports whether a file was
// removed.
func (g *Generator) Purge(videoID string) (bool, error) {
	if !metadata.ValidVideoID(videoID) {
		return false, fmt.Errorf("%w: %q", metadata.ErrInvalidVideoID, videoID)
	}

	unlock := g.lock(videoID)
	defer unlock()

	err := filesystem.RemoveWithRetry(g.CachePath(videoID), filesystem.DefaultRetryConfig())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to purge card for %s: %w", videoID, err)
	}

	g.invalidateCacheSize()
	logging.Info("Purged cached card for %s", videoID)
	return true, nil
}

// PurgeAll removes every cached card and returns how many were removed.
func (g *Generator) PurgeAll() (int, error) {
	matches, err := filepath.Glob(filepath.Join(g.cacheDir, "*"+cacheSuffix))
	if err != nil {
		return 0, err
	}

	removed := 0
	var errs []error
	for _, m := range matches {
		if err := filesystem.RemoveWithRetry(m, filesystem.DefaultRetryConfig()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	g.invalidateCacheSize()
	logging.Info("Purged %d cached cards", removed)
	return removed, errors.Join(errs...)
}

// GetCacheSize returns the total size and number of cached cards. The
// directory walk is cached for two minutes.
func (g *Generator) GetCacheSize() (int64, int, error) {
	last := g.lastCacheUpdate.Load()
	if last != 0 && time.Since(time.Unix(0, last)) < cacheSizeTTL {
		return g.cacheBytes.Load(), int(g.cacheCount.Load()), nil
	}

	var total int64
	var count int
	err := filepath.WalkDir(g.cacheDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), cacheSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		count++
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to measure cache %s: %w", g.cacheDir, err)
	}

	g.cacheBytes.Store(total)
	g.cacheCount.Store(int64(count))
	g.lastCacheUpdate.Store(time.Now().UnixNano())

	metrics.CardCacheSize.Set(float64(total))
	metrics.CardCacheCount.Set(float64(count))

	return total, count, nil
}

func (g *Generator) invalidateCacheSize() {
	g.lastCacheUpdate.Store(0)
}

// lock serializes work on one video id and returns the matching unlock.
func (g *Generator) lock(key string) func() {
	g.locksMu.Lock()
	l, ok := g.locks[key]
	if !ok {
		l = &keyLock{}
		g.locks[key] = l
	}
	l.refs++
	g.locksMu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		g.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, key)
		}
		g.locksMu.Unlock()
	}
}

// CardFor maps normalized metadata onto the text drawn on a card.
func CardFor(v *metadata.Video) render.Card {
	return render.Card{
		Title:    v.Title,
		Channel:  v.Channel,
		Views:    v.Views,
		Duration: v.Duration,
	}
}

// StatusForError classifies a GetThumb error for metrics and HTTP mapping.
func StatusForError(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case errors.Is(err, metadata.ErrInvalidVideoID):
		return metrics.StatusInvalid
	case errors.Is(err, metadata.ErrVideoNotFound):
		return metrics.StatusNotFound
	case errors.Is(err, metadata.ErrNoThumbnail):
		return metrics.StatusNoThumbnail
	case errors.As(err, &se), errors.Is(err, ErrNotImage):
		return metrics.StatusUpstream
	case errors.Is(err, ErrRenderFailed), errors.Is(err, render.ErrEmptySource):
		return metrics.StatusRender
	default:
		return metrics.StatusUpstream
	}
}

func observePhase(phase string, start time.Time) {
	metrics.CardRenderDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

func fileExists(path string) bool {
	info, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
	return err == nil && !info.IsDir()
}

// writeAtomic writes through a temporary file in the same directory and
// renames it into place, so readers never see a partial card.
func writeAtomic(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		logging.Debug("failed to chmod %s: %v", tmpPath, err)
	}
	return os.Rename(tmpPath, path)
}
