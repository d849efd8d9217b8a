package metrics

// Render outcome labels shared by the generator and the handlers.
const (
	StatusSuccess     = "success"
	StatusCached      = "cached"
	StatusInvalid     = "error_invalid"
	StatusNotFound    = "error_not_found"
	StatusNoThumbnail = "error_no_thumbnail"
	StatusUpstream    = "error_upstream"
	StatusRender      = "error_render"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics(provider string) {
	for _, status := range []string{StatusSuccess, StatusCached, StatusInvalid, StatusNotFound,
		StatusNoThumbnail, StatusUpstream, StatusRender} {
		CardRendersTotal.WithLabelValues(status)
	}

	for _, phase := range []string{"lookup", "download", "decode", "compose", "encode", "total"} {
		CardRenderDuration.WithLabelValues(phase)
	}

	for _, result := range []string{"cached", "fetched", "error"} {
		MetadataLookupsTotal.WithLabelValues(provider, result)
	}
	MetadataLookupDuration.WithLabelValues(provider)

	for _, status := range []string{"success", "error_status", "error_type", "error"} {
		SourceDownloadsTotal.WithLabelValues(status)
	}

	for _, decoder := range []string{"imaging", "vips"} {
		for _, format := range []string{"jpeg", "png", "webp", "unknown"} {
			SourceDecodeTotal.WithLabelValues(decoder, format)
		}
	}

	for _, op := range []string{"initialize_schema", "get_video", "save_video", "record_render",
		"last_render", "get_stats", "get_metadata", "set_metadata"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	for _, file := range []string{"main", "wal", "shm"} {
		DBSizeBytes.WithLabelValues(file)
	}
}
