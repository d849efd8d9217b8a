// Package metrics provides Prometheus instrumentation for thumbcard.
//
// All metrics are registered on the default registry through promauto and
// are prefixed with "thumbcard_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Database Metrics
//
//   - DBQueryTotal: Counter of queries by operation and status
//   - DBQueryDuration: Histogram of query duration by operation
//   - DBSizeBytes: Gauge of database file sizes (main, WAL, SHM)
//
// ## Card Metrics
//
//   - CardRendersTotal: Counter of render requests by outcome
//   - CardRenderDuration: Histogram of render time by phase
//   - CardRendersInProgress: Gauge of renders currently running
//   - CardCacheHits / CardCacheMisses: Counters of on-disk cache lookups
//   - CardCacheSize / CardCacheCount: Gauges of the cache directory contents
//
// ## Metadata and Source Metrics
//
//   - MetadataLookupsTotal: Counter by provider and result (cached, fetched, error)
//   - MetadataLookupDuration: Histogram of upstream lookup time by provider
//   - SourceDownloadsTotal: Counter of source thumbnail downloads by status
//   - SourceDownloadBytes: Histogram of downloaded source sizes
//   - SourceDecodeTotal: Counter of decodes by decoder and format
//
// ## Library Metrics
//
// Updated by Collector from a StatsProvider:
//   - VideosTotal: Gauge of videos with stored metadata
//   - RendersRecordedTotal: Gauge of renders recorded in the database
//
// # Usage
//
//	metrics.InitializeMetrics("ytdlp")
//	collector := metrics.NewCollector(db, db.Path(), time.Minute)
//	collector.Start()
//	defer collector.Stop()
package metrics
