package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func encodedImage(t *testing.T, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 480, 360))
	for y := 0; y < 360; y++ {
		for x := 0; x < 480; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x / 2), G: uint8(y / 2), B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	if format == "png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	jpegBody := encodedImage(t, "jpeg")
	pngBody := encodedImage(t, "png")

	mux := http.NewServeMux()
	mux.HandleFunc("/hq.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(jpegBody)
	})
	mux.HandleFunc("/img.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngBody)
	})
	mux.HandleFunc("/webp", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write(pngBody)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tests := []struct {
		name    string
		path    string
		want    string
		wantLen int
	}{
		{"JPEG content type", "/hq.jpg", "thumbdQw4w9WgXcQ.jpg", len(jpegBody)},
		{"PNG content type", "/img.png", "thumbdQw4w9WgXcQ.png", len(pngBody)},
		{"Other content type defaults to png", "/webp", "thumbdQw4w9WgXcQ.png", len(pngBody)},
	}

	d := NewDownloader(5 * time.Second)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path, err := d.Download(context.Background(), server.URL+tt.path, dir, "dQw4w9WgXcQ")
			if err != nil {
				t.Fatalf("Download() error: %v", err)
			}
			if filepath.Base(path) != tt.want {
				t.Errorf("Download() path = %s, want %s", filepath.Base(path), tt.want)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read downloaded file: %v", err)
			}
			if len(data) != tt.wantLen {
				t.Errorf("downloaded %d bytes, want %d", len(data), tt.wantLen)
			}
		})
	}
}

func TestDownloadErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	mux.HandleFunc("/html", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("<html><body>blocked</body></html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	d := NewDownloaderWithClient(server.Client())
	dir := t.TempDir()

	t.Run("Non-200 status", func(t *testing.T) {
		_, err := d.Download(context.Background(), server.URL+"/missing", dir, "dQw4w9WgXcQ")
		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected StatusError, got %v", err)
		}
		if se.Code != http.StatusNotFound {
			t.Errorf("StatusError.Code = %d, want 404", se.Code)
		}
	})

	t.Run("Non-image body", func(t *testing.T) {
		_, err := d.Download(context.Background(), server.URL+"/html", dir, "dQw4w9WgXcQ")
		if !errors.Is(err, ErrNotImage) {
			t.Errorf("expected ErrNotImage, got %v", err)
		}
	})

	t.Run("Body too large", func(t *testing.T) {
		small := NewDownloaderWithClient(server.Client())
		small.maxBytes = 8
		_, err := small.Download(context.Background(), server.URL+"/html", dir, "dQw4w9WgXcQ")
		if err == nil {
			t.Error("expected size error")
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := d.Download(ctx, server.URL+"/missing", dir, "dQw4w9WgXcQ"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed downloads left %d files behind", len(entries))
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"image/jpeg":               "jpg",
		"image/JPG":                "jpg",
		"image/png":                "png",
		"image/webp":               "png",
		"":                         "png",
		"image/jpeg; charset=utf8": "jpg",
	}
	for ct, want := range tests {
		if got := extensionFor(ct); got != want {
			t.Errorf("extensionFor(%q) = %q, want %q", ct, got, want)
		}
	}
}
