package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wader/goutubedl"
)

func TestRawFromInfo(t *testing.T) {
	info := goutubedl.Info{
		Title:     "A Video",
		Uploader:  "Uploader Name",
		Duration:  213.4,
		Thumbnail: "https://i.ytimg.com/vi/x/maxresdefault.jpg",
		ViewCount: 1234,
	}

	raw := rawFromInfo("dQw4w9WgXcQ", info)

	if raw.Channel != "Uploader Name" {
		t.Errorf("Channel = %q, want uploader fallback", raw.Channel)
	}
	if raw.Duration != 213400*time.Millisecond {
		t.Errorf("Duration = %v", raw.Duration)
	}
	if len(raw.Thumbnails) == 0 || raw.Thumbnails[0] != info.Thumbnail {
		t.Errorf("Thumbnails = %v", raw.Thumbnails)
	}
	if raw.Views == nil || *raw.Views != 1234 {
		t.Errorf("Views = %v", raw.Views)
	}

	v := Normalize(raw)
	if v.Duration != "3:33" || v.Views != "1.2K views" {
		t.Errorf("Normalize() = %+v", v)
	}
}

func TestRawFromInfoMissingFields(t *testing.T) {
	raw := rawFromInfo("dQw4w9WgXcQ", goutubedl.Info{IsLive: true, Channel: "Chan", Uploader: "Up"})

	if raw.Views != nil {
		t.Errorf("zero view count should be unknown, got %d", *raw.Views)
	}
	if raw.Channel != "Chan" {
		t.Errorf("Channel = %q, want channel before uploader", raw.Channel)
	}
	if !Normalize(raw).Live {
		t.Error("expected live video")
	}
}

func TestYTDLPRejectsInvalidID(t *testing.T) {
	_, err := (&YTDLP{}).Lookup(context.Background(), "not-an-id")
	if !errors.Is(err, ErrInvalidVideoID) {
		t.Errorf("expected ErrInvalidVideoID, got %v", err)
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"ERROR: [youtube] abc: Video unavailable", true},
		{"ERROR: [youtube] abc: Private video. Sign in", true},
		{"exec: \"yt-dlp\": executable file not found in $PATH", false},
	}
	for _, tt := range tests {
		if got := isUnavailable(errors.New(tt.msg)); got != tt.want {
			t.Errorf("isUnavailable(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
