package startup

import (
	"context"
	"testing"
	"time"

	"thumbcard/internal/metadata"
)

type nopStore struct{}

func (nopStore) GetVideo(context.Context, string) (*metadata.Video, time.Time, error) {
	return nil, time.Time{}, nil
}

func (nopStore) SaveVideo(context.Context, *metadata.Video) error { return nil }

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		store      metadata.VideoStore
		wantName   string
		wantCached bool
		wantErr    bool
	}{
		{
			name:     "ytdlp without store",
			config:   Config{MetadataProvider: ProviderYTDLP, MetadataTTL: time.Hour},
			wantName: "ytdlp",
		},
		{
			name:       "ytdlp with store",
			config:     Config{MetadataProvider: ProviderYTDLP, MetadataTTL: time.Hour},
			store:      nopStore{},
			wantName:   "ytdlp",
			wantCached: true,
		},
		{
			name:     "zero ttl disables caching",
			config:   Config{MetadataProvider: ProviderYTDLP},
			store:    nopStore{},
			wantName: "ytdlp",
		},
		{
			name:     "api",
			config:   Config{MetadataProvider: ProviderAPI, YouTubeAPIKey: "test-key"},
			wantName: "api",
		},
		{
			name:    "api without key",
			config:  Config{MetadataProvider: ProviderAPI},
			wantErr: true,
		},
		{
			name:    "unknown",
			config:  Config{MetadataProvider: "scraper"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), &tt.config, tt.store)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewProvider() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error = %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
			if _, cached := p.(*metadata.Cached); cached != tt.wantCached {
				t.Errorf("cached = %v, want %v", cached, tt.wantCached)
			}
		})
	}
}
