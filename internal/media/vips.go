package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"thumbcard/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
	vipsShutdown    bool
)

// ErrVipsShutdown is returned by InitVips once ShutdownVips has run; libvips
// cannot be restarted within a process.
var ErrVipsShutdown = errors.New("libvips was shut down and cannot be restarted")

// InitVips starts libvips with its log output routed through the logging
// package. It should be called once at startup; later calls are no-ops.
func InitVips() error {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}
	if vipsShutdown {
		return ErrVipsShutdown
	}

	// Must be configured before Startup to take effect.
	vips.LoggingSettings(vipsLogHandler, vipsLogLevel(logging.GetLevel()))

	// Decodes are small and rare, so keep the cache modest.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      32 * 1024 * 1024,
		MaxCacheSize:     50,
		ReportLeaks:      false,
		CacheTrace:       false,
		CollectStats:     false,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized successfully (version: %s)", vips.Version)
	return nil
}

// vipsLogLevel maps the application level to the lowest libvips level that
// is still worth forwarding.
func vipsLogLevel(level logging.LogLevel) vips.LogLevel {
	switch level {
	case logging.LevelDebug:
		return vips.LogLevelInfo
	case logging.LevelInfo:
		return vips.LogLevelWarning
	case logging.LevelWarn:
		return vips.LogLevelError
	case logging.LevelError:
		return vips.LogLevelCritical
	default:
		return vips.LogLevelWarning
	}
}

func vipsLogHandler(domain string, level vips.LogLevel, msg string) {
	switch level {
	case vips.LogLevelError, vips.LogLevelCritical:
		logging.Error("[%s] %s", domain, msg)
	case vips.LogLevelWarning:
		logging.Warn("[%s] %s", domain, msg)
	default:
		logging.Debug("[%s] %s", domain, msg)
	}
}

// ShutdownVips cleans up libvips resources
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		vipsShutdown = true
		logging.Info("libvips shutdown complete")
	}
}

// LoadImageWithVips decodes path with libvips, shrinking it to fit within
// maxDimension on both axes.
func LoadImageWithVips(path string, maxDimension int) (image.Image, error) {
	if !IsVipsAvailable() {
		return nil, fmt.Errorf("libvips not available")
	}

	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	logging.Debug("Vips loaded %s: %dx%d", filepath.Base(path), ref.Width(), ref.Height())

	if ref.Width() > maxDimension || ref.Height() > maxDimension {
		if err := ref.Thumbnail(maxDimension, maxDimension, vips.InterestingNone); err != nil {
			return nil, fmt.Errorf("vips resize failed: %w", err)
		}
	}

	// PNG keeps any alpha channel the source had.
	imgBytes, _, err := ref.ExportPng(vips.NewPngExportParams())
	if err != nil {
		return nil, fmt.Errorf("vips export failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vips output: %w", err)
	}

	return img, nil
}

// IsVipsAvailable returns whether libvips is initialized and available
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}
