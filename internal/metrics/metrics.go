package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbcard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbcard_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "thumbcard_db_size_bytes",
			Help: "Size of SQLite database files in bytes",
		},
		[]string{"file"}, // "main", "wal", "shm"
	)
)

// Card metrics
var (
	CardRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_card_renders_total",
			Help: "Total number of card render requests by outcome",
		},
		[]string{"status"},
	)

	CardRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbcard_card_render_duration_seconds",
			Help:    "Card render duration in seconds by phase",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"phase"}, // "lookup", "download", "decode", "compose", "encode", "total"
	)

	CardRendersInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_card_renders_in_progress",
			Help: "Number of cards currently being rendered",
		},
	)

	CardCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thumbcard_card_cache_hits_total",
			Help: "Total number of card cache hits",
		},
	)

	CardCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thumbcard_card_cache_misses_total",
			Help: "Total number of card cache misses",
		},
	)

	CardCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_card_cache_size_bytes",
			Help: "Total size of the card cache in bytes",
		},
	)

	CardCacheCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_card_cache_count",
			Help: "Number of cards in the cache",
		},
	)
)

// Metadata metrics
var (
	MetadataLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_metadata_lookups_total",
			Help: "Total number of metadata lookups by provider and result",
		},
		[]string{"provider", "result"}, // "cached", "fetched", "error"
	)

	MetadataLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thumbcard_metadata_lookup_duration_seconds",
			Help:    "Upstream metadata lookup duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)
)

// Source image metrics
var (
	SourceDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_source_downloads_total",
			Help: "Total number of source thumbnail downloads",
		},
		[]string{"status"},
	)

	SourceDownloadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "thumbcard_source_download_bytes",
			Help:    "Size of downloaded source thumbnails in bytes",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 8),
		},
	)

	SourceDecodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_source_decode_total",
			Help: "Total number of source image decodes by decoder and format",
		},
		[]string{"decoder", "format"}, // decoder: "imaging", "vips"
	)
)

// Library metrics
var (
	VideosTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_videos_total",
			Help: "Number of videos with stored metadata",
		},
	)

	RendersRecordedTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_renders_recorded",
			Help: "Number of renders recorded in the database",
		},
	)
)

// Memory metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_memory_usage_ratio",
			Help: "Heap allocation as a fraction of the configured memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thumbcard_memory_paused",
			Help: "Whether renders are held back by memory pressure (1 = paused)",
		},
	)

	MemoryPausesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thumbcard_memory_pauses_total",
			Help: "Number of times memory pressure paused rendering",
		},
	)

	MemoryWaitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "thumbcard_memory_waits_total",
			Help: "Number of renders that waited for memory pressure to clear",
		},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_filesystem_retry_attempts_total",
			Help: "Retries of filesystem operations after stale NFS file handles",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_filesystem_retry_success_total",
			Help: "Filesystem operations that succeeded after at least one retry",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_filesystem_retry_failures_total",
			Help: "Filesystem operations that still failed after all retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thumbcard_filesystem_stale_errors_total",
			Help: "ESTALE errors returned by filesystem operations",
		},
		[]string{"operation", "volume"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "thumbcard_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
