package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"thumbcard/internal/logging"
	"thumbcard/internal/metrics"
)

// DefaultMaxDownloadBytes caps source thumbnail bodies.
const DefaultMaxDownloadBytes = 20 << 20

// ErrNotImage is returned when a downloaded body is not an image.
var ErrNotImage = errors.New("downloaded content is not an image")

// StatusError reports a non-200 response for a source thumbnail.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to download thumbnail %s: status %d", e.URL, e.Code)
}

// Downloader fetches source thumbnails into temporary files.
type Downloader struct {
	client   *http.Client
	maxBytes int64
}

// NewDownloader returns a Downloader whose requests time out after timeout.
// A zero timeout leaves requests bounded only by their context.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		client:   &http.Client{Timeout: timeout},
		maxBytes: DefaultMaxDownloadBytes,
	}
}

// NewDownloaderWithClient returns a Downloader using client.
func NewDownloaderWithClient(client *http.Client) *Downloader {
	return &Downloader{client: client, maxBytes: DefaultMaxDownloadBytes}
}

// Download fetches url into {dir}/thumb{videoID}.{jpg|png} and returns the
// file path. The extension follows the response Content-Type.
func (d *Downloader) Download(ctx context.Context, url, dir, videoID string) (path string, err error) {
	defer func() {
		status := "success"
		var se *StatusError
		switch {
		case err == nil:
		case errors.As(err, &se):
			status = "error_status"
		case errors.Is(err, ErrNotImage):
			status = "error_type"
		default:
			status = "error"
		}
		metrics.SourceDownloadsTotal.WithLabelValues(status).Inc()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download thumbnail %s: %w", url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logging.Warn("failed to close response body for %s: %v", url, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail %s: %w", url, err)
	}
	if int64(len(data)) > d.maxBytes {
		return "", fmt.Errorf("thumbnail %s exceeds %d bytes", url, d.maxBytes)
	}
	metrics.SourceDownloadBytes.Observe(float64(len(data)))

	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: %s is %s", ErrNotImage, url, mt.String())
	}

	path = filepath.Join(dir, fmt.Sprintf("thumb%s.%s", videoID, extensionFor(resp.Header.Get("Content-Type"))))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write thumbnail %s: %w", path, err)
	}

	logging.Debug("Downloaded %s (%d bytes) to %s", url, len(data), path)
	return path, nil
}

func extensionFor(contentType string) string {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "jpeg") || strings.Contains(ct, "jpg") {
		return "jpg"
	}
	return "png"
}
