package metadata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wader/goutubedl"
)

// YTDLP resolves metadata by running yt-dlp.
type YTDLP struct{}

// NewYTDLP returns a yt-dlp backed provider. A non-empty path overrides the
// yt-dlp binary looked up on PATH.
func NewYTDLP(path string) *YTDLP {
	if path != "" {
		goutubedl.Path = path
	}
	return &YTDLP{}
}

func (y *YTDLP) Name() string { return "ytdlp" }

func (y *YTDLP) Lookup(ctx context.Context, videoID string) (*Video, error) {
	if !ValidVideoID(videoID) {
		return nil, ErrInvalidVideoID
	}

	result, err := goutubedl.New(ctx, WatchURL(videoID), goutubedl.Options{
		Type: goutubedl.TypeSingle,
	})
	if err != nil {
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
		}
		return nil, fmt.Errorf("yt-dlp lookup %s: %w", videoID, err)
	}

	return Normalize(rawFromInfo(videoID, result.Info)), nil
}

// rawFromInfo maps a yt-dlp info document onto RawVideo. yt-dlp reports a
// missing view count as zero, so zero is treated as unknown.
func rawFromInfo(videoID string, info goutubedl.Info) RawVideo {
	raw := RawVideo{
		ID:       videoID,
		Title:    info.Title,
		Duration: time.Duration(info.Duration * float64(time.Second)),
		Live:     info.IsLive,
		Channel:  firstNonEmpty(info.Channel, info.Uploader),
	}

	if info.Thumbnail != "" {
		raw.Thumbnails = append(raw.Thumbnails, info.Thumbnail)
	}
	// yt-dlp lists thumbnails worst first.
	for i := len(info.Thumbnails) - 1; i >= 0; i-- {
		raw.Thumbnails = append(raw.Thumbnails, info.Thumbnails[i].URL)
	}

	if info.ViewCount > 0 {
		views := int64(info.ViewCount)
		raw.Views = &views
	}

	return raw
}

func isUnavailable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "video unavailable") || strings.Contains(msg, "private video") ||
		strings.Contains(msg, "does not exist")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
