// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// [Load] starts from [Default], applies the optional TOML file named by
// THUMBCARD_CONFIG, then applies environment variables, which win:
//
//   - CACHE_DIR: Directory holding rendered cards (default: ./cache)
//   - DATABASE_DIR: Directory holding thumbcard.db (default: ./data)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - METADATA_PROVIDER: ytdlp or api (default: ytdlp)
//   - YOUTUBE_API_KEY: Data API key, required for the api provider
//   - YTDLP_PATH: yt-dlp binary (default: yt-dlp on PATH)
//   - METADATA_TTL: How long stored metadata is reused (default: 24h)
//   - FETCH_TIMEOUT: Timeout for source thumbnail downloads (default: 15s)
//   - TITLE_FONT, META_FONT: TrueType/OpenType fonts (default: embedded Go fonts)
//   - CONTROLS_IMAGE: Player controls overlay (default: drawn at startup)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// The file uses lower-case keys grouped in [metadata], [render] and
// [logging] tables; unknown keys are rejected.
//
// [LoadConfig] wraps [Load] with the startup banner and creates both
// directories, failing when either is not writable. The CLI calls [Load]
// directly so it stays quiet.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//
//	go build -ldflags "-X thumbcard/internal/startup.Version=1.2.0"
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//
//	startup.LogDatabaseInit(dbInitDuration)
//	startup.LogMetadataInit(config)
//
//	startup.LogServerStarted(startup.ServerConfig{
//	    Port:            config.Port,
//	    MetricsPort:     config.MetricsPort,
//	    MetricsEnabled:  config.MetricsEnabled,
//	    StartupDuration: time.Since(startTime),
//	})
package startup
