package startup

import (
	"context"
	"fmt"

	"thumbcard/internal/metadata"
)

// NewProvider builds the configured metadata provider. When store is not
// nil, lookups are served from it for MetadataTTL before asking upstream.
func NewProvider(ctx context.Context, config *Config, store metadata.VideoStore) (metadata.Provider, error) {
	var provider metadata.Provider
	switch config.MetadataProvider {
	case ProviderAPI:
		api, err := metadata.NewDataAPI(ctx, config.YouTubeAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube Data API client: %w", err)
		}
		provider = api
	case ProviderYTDLP:
		provider = metadata.NewYTDLP(config.YTDLPPath)
	default:
		return nil, fmt.Errorf("unknown metadata provider %q", config.MetadataProvider)
	}

	if store == nil || config.MetadataTTL == 0 {
		return provider, nil
	}
	return metadata.NewCached(provider, store, config.MetadataTTL), nil
}
