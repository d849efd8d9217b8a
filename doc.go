// Package main is the thumbcard server.
//
// thumbcard renders 1280x720 "rich thumbnails" for YouTube videos: the
// video's own thumbnail blurred as a backdrop, a sharp preview inset, the
// title, channel, view count and duration, and a player controls strip with
// a randomized progress bar. Cards are PNG files cached on disk and served
// over HTTP.
//
// # Application Lifecycle
//
//  1. Memory configuration: sets GOMEMLIMIT from MEMORY_LIMIT
//  2. Configuration loading: defaults, optional TOML file, then environment
//  3. Database initialization: SQLite store for metadata and render history
//  4. Component initialization:
//     - Metadata provider: yt-dlp or the YouTube Data API, behind a TTL cache
//     - libvips: fallback decoder for sources the pure Go decoders reject
//     - Card generator: download, decode, compose, encode, cache
//     - Memory monitor: holds renders back under memory pressure
//     - Metrics collector: database and cache gauges every minute
//  5. HTTP server setup: routes, request logging and metrics middleware
//  6. Graceful shutdown on SIGINT/SIGTERM
//
// # Endpoints
//
//	GET    /api/thumbnail/{id}   card PNG, rendered on first request
//	DELETE /api/thumbnail/{id}   drop one cached card
//	DELETE /api/thumbnails       drop every cached card
//	GET    /api/video/{id}       metadata and last render
//	GET    /api/stats            totals for the store and cache
//	GET    /health, /livez, /readyz, /version
//
// Prometheus metrics are served on METRICS_PORT at /metrics.
//
// The thumbcard command in cmd/thumbcard renders cards from the shell
// without running a server.
package main
