package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/senseyeio/duration"
	"google.golang.org/api/option"
)

const videoResponse = `{
  "items": [{
    "id": "dQw4w9WgXcQ",
    "snippet": {
      "title": "Rick Astley - Never Gonna Give You Up",
      "channelTitle": "Rick Astley",
      "liveBroadcastContent": "none",
      "thumbnails": {
        "default": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg"},
        "high": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg?sqp=xyz"}
      }
    },
    "contentDetails": {"duration": "PT3M33S"},
    "statistics": {"viewCount": "1600000000"}
  }]
}`

func newTestDataAPI(t *testing.T, body string) (*DataAPI, *url.Values) {
	t.Helper()

	var captured url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		if !strings.HasSuffix(r.URL.Path, "/videos") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	api, err := NewDataAPI(context.Background(), "test-key",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewDataAPI() error: %v", err)
	}
	return api, &captured
}

func TestDataAPILookup(t *testing.T) {
	api, query := newTestDataAPI(t, videoResponse)

	v, err := api.Lookup(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}

	if got := query.Get("id"); got != "dQw4w9WgXcQ" {
		t.Errorf("requested id = %q", got)
	}

	want := Video{
		ID:           "dQw4w9WgXcQ",
		Title:        "Rick Astley Never Gonna Give You Up",
		Duration:     "3:33",
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		Views:        "1.6B views",
		Channel:      "Rick Astley",
	}
	if *v != want {
		t.Errorf("Lookup() = %+v, want %+v", *v, want)
	}
}

func TestDataAPINotFound(t *testing.T) {
	api, _ := newTestDataAPI(t, `{"items": []}`)

	_, err := api.Lookup(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestDataAPILive(t *testing.T) {
	api, _ := newTestDataAPI(t, `{"items": [{"snippet": {"title": "stream", "liveBroadcastContent": "live"}, "contentDetails": {"duration": "P0D"}}]}`)

	v, err := api.Lookup(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if !v.Live || v.Duration != LiveDuration {
		t.Errorf("expected live video, got %+v", v)
	}
	if v.Views != DefaultViews {
		t.Errorf("Views = %q, want %q", v.Views, DefaultViews)
	}
}

func TestNewDataAPIRequiresKey(t *testing.T) {
	if _, err := NewDataAPI(context.Background(), ""); err == nil {
		t.Error("expected error for empty api key")
	}
}

func TestIsoToDuration(t *testing.T) {
	d, err := duration.ParseISO8601("PT1H2M3S")
	if err != nil {
		t.Fatalf("ParseISO8601() error: %v", err)
	}
	if got := FormatDuration(isoToDuration(d)); got != "1:02:03" {
		t.Errorf("duration = %q, want 1:02:03", got)
	}
}
