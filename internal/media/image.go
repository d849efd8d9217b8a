package media

import (
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	"thumbcard/internal/logging"
	"thumbcard/internal/metrics"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // WebP format support
)

const (
	// MaxImageDimension is the maximum width or height we'll process
	// Images larger than this will be downscaled first
	MaxImageDimension = 4096

	// MaxImagePixels is the maximum total pixels (width * height) we'll process
	MaxImagePixels = 20_000_000
)

// LoadSource decodes a downloaded source thumbnail. The Go decoders are tried
// first; formats they cannot read are handed to libvips when it is running.
func LoadSource(path string) (image.Image, error) {
	format := sniffFormat(path)

	img, err := LoadImageConstrained(path, MaxImageDimension, MaxImagePixels)
	if err == nil {
		metrics.SourceDecodeTotal.WithLabelValues("imaging", format).Inc()
		return img, nil
	}

	if !IsVipsAvailable() {
		return nil, fmt.Errorf("failed to decode %s (%s): %w", path, format, err)
	}

	logging.Debug("imaging could not decode %s (%s): %v, trying libvips", path, format, err)

	img, vipsErr := LoadImageWithVips(path, MaxImageDimension)
	if vipsErr != nil {
		return nil, fmt.Errorf("failed to decode %s (%s): %w", path, format, vipsErr)
	}
	metrics.SourceDecodeTotal.WithLabelValues("vips", format).Inc()
	return img, nil
}

// sniffFormat labels the file for metrics and logs.
func sniffFormat(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "unknown"
	}
	switch format := strings.TrimPrefix(mt.String(), "image/"); format {
	case "jpeg", "png", "webp":
		return format
	default:
		return "unknown"
	}
}

// LoadImageConstrained loads an image, downscaling if it exceeds size limits
func LoadImageConstrained(path string, maxDimension, maxPixels int) (image.Image, error) {
	dimensions, err := GetImageDimensions(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	width, height := dimensions.Width, dimensions.Height
	pixels := width * height

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	if width <= maxDimension && height <= maxDimension && pixels <= maxPixels {
		return img, nil
	}

	targetWidth, targetHeight := constrainedSize(width, height, maxDimension, maxPixels)
	logging.Info("Constraining large image %s from %dx%d to %dx%d", path, width, height, targetWidth, targetHeight)

	return imaging.Resize(img, targetWidth, targetHeight, imaging.Lanczos), nil
}

// constrainedSize scales width x height down to fit maxDimension on both
// axes and maxPixels in total, keeping the aspect ratio.
func constrainedSize(width, height, maxDimension, maxPixels int) (int, int) {
	targetWidth, targetHeight := width, height

	if width > maxDimension || height > maxDimension {
		if width > height {
			targetWidth = maxDimension
			targetHeight = height * maxDimension / width
		} else {
			targetHeight = maxDimension
			targetWidth = width * maxDimension / height
		}
	}

	if targetPixels := targetWidth * targetHeight; targetPixels > maxPixels {
		scale := math.Sqrt(float64(maxPixels) / float64(targetPixels))
		targetWidth = int(float64(targetWidth) * scale)
		targetHeight = int(float64(targetHeight) * scale)
	}

	return max(targetWidth, 1), max(targetHeight, 1)
}

// ImageDimensions holds image width and height
type ImageDimensions struct {
	Width  int
	Height int
}

// GetImageDimensions returns image dimensions without fully decoding the image
func GetImageDimensions(path string) (*ImageDimensions, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close image file %s: %v", path, err)
		}
	}()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, err
	}

	return &ImageDimensions{
		Width:  config.Width,
		Height: config.Height,
	}, nil
}
