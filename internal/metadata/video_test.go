package metadata

import (
	"errors"
	"testing"
	"time"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain", "never gonna give you up", "Never Gonna Give You Up"},
		{"Punctuation runs", "Rick Astley - Never Gonna Give You Up (Official Video)", "Rick Astley Never Gonna Give You Up Official Video "},
		{"Apostrophe splits words", "don't stop", "Don T Stop"},
		{"Upper case lowered", "LOUD TITLE", "Loud Title"},
		{"Digits end a word", "2nd place", "2Nd Place"},
		{"Underscore kept", "snake_case", "Snake_Case"},
		{"Unicode letters kept", "café ñandú", "Café Ñandú"},
		{"Uncased letters start a word", "東京tokyo ライブlive", "東京Tokyo ライブLive"},
		{"Greek is cased", "ΑΘΗΝΑ athens", "Αθηνα Athens"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.input); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 views"},
		{1, "1 view"},
		{999, "999 views"},
		{1000, "1K views"},
		{1500, "1.5K views"},
		{1599, "1.5K views"},
		{10_000, "10K views"},
		{532_123, "532K views"},
		{999_999, "999K views"},
		{1_234_567, "1.2M views"},
		{15_300_000, "15M views"},
		{1_600_000_000, "1.6B views"},
		{-5, DefaultViews},
	}

	for _, tt := range tests {
		if got := FormatViews(tt.n); got != tt.want {
			t.Errorf("FormatViews(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "0:05"},
		{3*time.Minute + 33*time.Second, "3:33"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour, "1:00:00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2:03:04"},
		{212500 * time.Millisecond, "3:33"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	t.Run("All fields", func(t *testing.T) {
		v := Normalize(RawVideo{
			ID:         "dQw4w9WgXcQ",
			Title:      "Never Gonna Give You Up!",
			Duration:   213 * time.Second,
			Thumbnails: []string{"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg?sqp=abc&rs=xyz"},
			Views:      int64Ptr(1_600_000_000),
			Channel:    "Rick Astley",
		})

		want := Video{
			ID:           "dQw4w9WgXcQ",
			Title:        "Never Gonna Give You Up ",
			Duration:     "3:33",
			ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
			Views:        "1.6B views",
			Channel:      "Rick Astley",
		}
		if *v != want {
			t.Errorf("Normalize() = %+v, want %+v", *v, want)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		v := Normalize(RawVideo{ID: "aaaaaaaaaaa"})

		if v.Title != DefaultTitle {
			t.Errorf("Title = %q, want %q", v.Title, DefaultTitle)
		}
		if v.Duration != LiveDuration || !v.Live {
			t.Errorf("Duration = %q, Live = %v, want %q and true", v.Duration, v.Live, LiveDuration)
		}
		if v.Views != DefaultViews {
			t.Errorf("Views = %q, want %q", v.Views, DefaultViews)
		}
		if v.Channel != DefaultChannel {
			t.Errorf("Channel = %q, want %q", v.Channel, DefaultChannel)
		}
		if v.ThumbnailURL != "" {
			t.Errorf("ThumbnailURL = %q, want empty", v.ThumbnailURL)
		}
	})

	t.Run("Live flag wins over duration", func(t *testing.T) {
		v := Normalize(RawVideo{Duration: time.Minute, Live: true})
		if v.Duration != LiveDuration {
			t.Errorf("Duration = %q, want %q", v.Duration, LiveDuration)
		}
	})

	t.Run("First non-empty thumbnail", func(t *testing.T) {
		v := Normalize(RawVideo{Thumbnails: []string{"", "https://example.com/b.jpg"}})
		if v.ThumbnailURL != "https://example.com/b.jpg" {
			t.Errorf("ThumbnailURL = %q", v.ThumbnailURL)
		}
	})
}

func TestValidVideoID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"a-b_c-d_e-f", true},
		{"short", false},
		{"dQw4w9WgXcQx", false},
		{"dQw4w9WgXc!", false},
		{"../../etc/p", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidVideoID(tt.id); got != tt.want {
			t.Errorf("ValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestExtractVideoID(t *testing.T) {
	inputs := []string{
		"dQw4w9WgXcQ",
		"  dQw4w9WgXcQ ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=10",
		"https://youtu.be/dQw4w9WgXcQ?si=abc",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	}

	for _, input := range inputs {
		got, err := ExtractVideoID(input)
		if err != nil {
			t.Errorf("ExtractVideoID(%q) error: %v", input, err)
			continue
		}
		if got != "dQw4w9WgXcQ" {
			t.Errorf("ExtractVideoID(%q) = %q", input, got)
		}
	}

	if _, err := ExtractVideoID("https://example.com/nothing"); !errors.Is(err, ErrInvalidVideoID) {
		t.Errorf("expected ErrInvalidVideoID, got %v", err)
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("dQw4w9WgXcQ"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("WatchURL() = %q", got)
	}
}
