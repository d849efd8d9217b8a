package metadata

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Defaults used when the upstream record lacks a field.
const (
	DefaultTitle   = "Unsupported Title"
	LiveDuration   = "Live"
	DefaultViews   = "Unknown Views"
	DefaultChannel = "Unknown Channel"
)

var (
	// ErrInvalidVideoID is returned for identifiers that are not 11
	// characters of [A-Za-z0-9_-].
	ErrInvalidVideoID = errors.New("invalid video id")
	// ErrVideoNotFound is returned when the provider has no such video.
	ErrVideoNotFound = errors.New("video not found")
	// ErrNoThumbnail is returned when the video has no thumbnail to render.
	ErrNoThumbnail = errors.New("no thumbnail found for the video")
)

// Video is the normalized record a card is rendered from.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Duration     string `json:"duration"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Views        string `json:"views"`
	Channel      string `json:"channel"`
	Live         bool   `json:"live"`
}

// Provider resolves a video identifier to its metadata.
type Provider interface {
	// Name labels the provider in logs and metrics.
	Name() string
	Lookup(ctx context.Context, videoID string) (*Video, error)
}

// RawVideo is an upstream record before defaults and cleanup are applied.
type RawVideo struct {
	ID       string
	Title    string
	Duration time.Duration
	Live     bool
	// Thumbnails are ordered best first.
	Thumbnails []string
	// Views is nil when the upstream hides or lacks the count.
	Views   *int64
	Channel string
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Normalize applies cleanup and defaults to an upstream record.
func Normalize(raw RawVideo) *Video {
	title := raw.Title
	if title == "" {
		title = DefaultTitle
	}

	duration := LiveDuration
	if !raw.Live && raw.Duration > 0 {
		duration = FormatDuration(raw.Duration)
	}

	views := DefaultViews
	if raw.Views != nil {
		views = FormatViews(*raw.Views)
	}

	channel := raw.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	var thumbnail string
	for _, u := range raw.Thumbnails {
		if u != "" {
			thumbnail, _, _ = strings.Cut(u, "?")
			break
		}
	}

	return &Video{
		ID:           raw.ID,
		Title:        CleanTitle(title),
		Duration:     duration,
		ThumbnailURL: thumbnail,
		Views:        views,
		Channel:      channel,
		Live:         duration == LiveDuration,
	}
}

// CleanTitle replaces every run of non-word characters with a single space
// and title-cases the result.
func CleanTitle(title string) string {
	return titleCase(nonWord.ReplaceAllString(title, " "))
}

// titleCase title-cases every rune that follows an uncased rune and
// lower-cases every rune that follows a cased one. Digits, underscores and
// uncased letters such as CJK all start a new word.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if prevCased {
			r = unicode.ToLower(r)
		} else {
			r = unicode.ToTitle(r)
		}
		b.WriteRune(r)
		prevCased = isCased(r)
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}

// FormatDuration renders d as m:ss, or h:mm:ss from one hour up.
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatViews renders a view count the short way YouTube does: "999 views",
// "1.5K views", "532K views", "1.6B views". Values are truncated, never
// rounded up.
func FormatViews(n int64) string {
	if n < 0 {
		return DefaultViews
	}
	if n == 1 {
		return "1 view"
	}

	units := []struct {
		size   int64
		suffix string
	}{
		{1_000_000_000, "B"},
		{1_000_000, "M"},
		{1_000, "K"},
	}

	for _, u := range units {
		if n < u.size {
			continue
		}
		if n < 10*u.size {
			tenths := n * 10 / u.size
			if tenths%10 == 0 {
				return fmt.Sprintf("%d%s views", tenths/10, u.suffix)
			}
			return fmt.Sprintf("%d.%d%s views", tenths/10, tenths%10, u.suffix)
		}
		return fmt.Sprintf("%d%s views", n/u.size, u.suffix)
	}

	return fmt.Sprintf("%d views", n)
}

// ValidVideoID reports whether id looks like a YouTube video identifier.
func ValidVideoID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for _, r := range id {
		ok := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_'
		if !ok {
			return false
		}
	}
	return true
}

var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/(?:embed|v|shorts|live)/([A-Za-z0-9_-]{11})`),
}

// ExtractVideoID accepts a bare identifier or any common YouTube URL form
// and returns the identifier.
func ExtractVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if ValidVideoID(input) {
		return input, nil
	}
	for _, re := range videoURLPatterns {
		if m := re.FindStringSubmatch(input); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, input)
}

// WatchURL returns the canonical watch page of a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
