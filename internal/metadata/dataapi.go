package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senseyeio/duration"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// DataAPI resolves metadata through the YouTube Data API v3.
type DataAPI struct {
	service *youtube.Service
}

// NewDataAPI creates a Data API provider authenticated with apiKey. Extra
// client options are appended, which tests use to point at a fake endpoint.
func NewDataAPI(ctx context.Context, apiKey string, opts ...option.ClientOption) (*DataAPI, error) {
	if apiKey == "" {
		return nil, errors.New("youtube data api requires an api key")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &DataAPI{service: service}, nil
}

func (d *DataAPI) Name() string { return "api" }

func (d *DataAPI) Lookup(ctx context.Context, videoID string) (*Video, error) {
	if !ValidVideoID(videoID) {
		return nil, ErrInvalidVideoID
	}

	response, err := d.service.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube api lookup %s: %w", videoID, err)
	}

	if len(response.Items) < 1 || response.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	return Normalize(rawFromAPI(videoID, response.Items[0])), nil
}

func rawFromAPI(videoID string, item *youtube.Video) RawVideo {
	raw := RawVideo{
		ID:      videoID,
		Title:   item.Snippet.Title,
		Channel: item.Snippet.ChannelTitle,
		Live:    item.Snippet.LiveBroadcastContent == "live",
	}

	if item.ContentDetails != nil && item.ContentDetails.Duration != "" {
		if d, err := duration.ParseISO8601(item.ContentDetails.Duration); err == nil {
			raw.Duration = isoToDuration(d)
		}
	}

	if item.Statistics != nil && item.Statistics.ViewCount > 0 {
		views := int64(item.Statistics.ViewCount)
		raw.Views = &views
	}

	if t := item.Snippet.Thumbnails; t != nil {
		for _, th := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
			if th != nil && th.Url != "" {
				raw.Thumbnails = append(raw.Thumbnails, th.Url)
			}
		}
	}

	return raw
}

func isoToDuration(d duration.Duration) time.Duration {
	return time.Duration(d.Y)*time.Hour*24*365 +
		time.Duration(d.M)*time.Hour*24*30 +
		time.Duration(d.W)*time.Hour*24*7 +
		time.Duration(d.D)*time.Hour*24 +
		time.Duration(d.TH)*time.Hour +
		time.Duration(d.TM)*time.Minute +
		time.Duration(d.TS)*time.Second
}
