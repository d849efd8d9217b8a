package startup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"thumbcard/internal/logging"
	"thumbcard/internal/memory"

	"github.com/gorilla/mux"
	"github.com/pelletier/go-toml/v2"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// ConfigFileEnv names the environment variable holding the optional TOML
// configuration file.
const ConfigFileEnv = "THUMBCARD_CONFIG"

// Metadata provider names accepted by METADATA_PROVIDER.
const (
	ProviderYTDLP = "ytdlp"
	ProviderAPI   = "api"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	CacheDir        string
	DatabaseDir     string
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogStaticFiles  bool
	LogHealthChecks bool

	MetadataProvider string
	YouTubeAPIKey    string
	YTDLPPath        string
	MetadataTTL      time.Duration
	FetchTimeout     time.Duration

	// Empty paths select the embedded Go fonts and drawn controls.
	TitleFont     string
	MetaFont      string
	ControlsImage string

	// ConfigFile is the TOML file that was read, if any.
	ConfigFile string

	// Derived paths
	DatabasePath string
}

// fileConfig mirrors the TOML layout:
//
//	cache_dir = "/var/cache/thumbcard"
//	port = 8080
//
//	[metadata]
//	provider = "api"
//	ttl = "12h"
//
//	[render]
//	title_font = "/fonts/Inter-Bold.ttf"
type fileConfig struct {
	CacheDir       string `toml:"cache_dir"`
	DatabaseDir    string `toml:"database_dir"`
	Port           int    `toml:"port"`
	MetricsPort    int    `toml:"metrics_port"`
	MetricsEnabled *bool  `toml:"metrics_enabled"`

	Metadata struct {
		Provider      string `toml:"provider"`
		YouTubeAPIKey string `toml:"youtube_api_key"`
		YTDLPPath     string `toml:"ytdlp_path"`
		TTL           string `toml:"ttl"`
	} `toml:"metadata"`

	Render struct {
		TitleFont     string `toml:"title_font"`
		MetaFont      string `toml:"meta_font"`
		ControlsImage string `toml:"controls_image"`
		FetchTimeout  string `toml:"fetch_timeout"`
	} `toml:"render"`

	Logging struct {
		StaticFiles  *bool `toml:"static_files"`
		HealthChecks *bool `toml:"health_checks"`
	} `toml:"logging"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() Config {
	return Config{
		CacheDir:         "./cache",
		DatabaseDir:      "./data",
		Port:             "8080",
		MetricsPort:      "9090",
		MetricsEnabled:   true,
		LogStaticFiles:   false,
		LogHealthChecks:  true,
		MetadataProvider: ProviderYTDLP,
		MetadataTTL:      24 * time.Hour,
		FetchTimeout:     15 * time.Second,
	}
}

// Load resolves configuration from defaults, the optional TOML file named by
// THUMBCARD_CONFIG and the environment, in increasing precedence. It touches
// no directories.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
		cfg.ConfigFile = path
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var err error
	if cfg.CacheDir, err = filepath.Abs(cfg.CacheDir); err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory path: %w", err)
	}
	if cfg.DatabaseDir, err = filepath.Abs(cfg.DatabaseDir); err != nil {
		return nil, fmt.Errorf("failed to resolve database directory path: %w", err)
	}
	cfg.DatabasePath = filepath.Join(cfg.DatabaseDir, "thumbcard.db")

	return &cfg, nil
}

func (c *Config) applyFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var fc fileConfig
	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&c.CacheDir, fc.CacheDir)
	setString(&c.DatabaseDir, fc.DatabaseDir)
	if fc.Port > 0 {
		c.Port = strconv.Itoa(fc.Port)
	}
	if fc.MetricsPort > 0 {
		c.MetricsPort = strconv.Itoa(fc.MetricsPort)
	}
	setBool(&c.MetricsEnabled, fc.MetricsEnabled)

	setString(&c.MetadataProvider, fc.Metadata.Provider)
	setString(&c.YouTubeAPIKey, fc.Metadata.YouTubeAPIKey)
	setString(&c.YTDLPPath, fc.Metadata.YTDLPPath)
	if err := setDuration(&c.MetadataTTL, "metadata.ttl", fc.Metadata.TTL); err != nil {
		return err
	}

	setString(&c.TitleFont, fc.Render.TitleFont)
	setString(&c.MetaFont, fc.Render.MetaFont)
	setString(&c.ControlsImage, fc.Render.ControlsImage)
	if err := setDuration(&c.FetchTimeout, "render.fetch_timeout", fc.Render.FetchTimeout); err != nil {
		return err
	}

	setBool(&c.LogStaticFiles, fc.Logging.StaticFiles)
	setBool(&c.LogHealthChecks, fc.Logging.HealthChecks)
	return nil
}

func (c *Config) applyEnv() {
	c.CacheDir = getEnv("CACHE_DIR", c.CacheDir)
	c.DatabaseDir = getEnv("DATABASE_DIR", c.DatabaseDir)
	c.Port = getEnv("PORT", c.Port)
	c.MetricsPort = getEnv("METRICS_PORT", c.MetricsPort)
	c.MetricsEnabled = getEnvBool("METRICS_ENABLED", c.MetricsEnabled)
	c.LogStaticFiles = getEnvBool("LOG_STATIC_FILES", c.LogStaticFiles)
	c.LogHealthChecks = getEnvBool("LOG_HEALTH_CHECKS", c.LogHealthChecks)

	c.MetadataProvider = strings.ToLower(getEnv("METADATA_PROVIDER", c.MetadataProvider))
	c.YouTubeAPIKey = getEnv("YOUTUBE_API_KEY", c.YouTubeAPIKey)
	c.YTDLPPath = getEnv("YTDLP_PATH", c.YTDLPPath)
	c.MetadataTTL = getEnvDuration("METADATA_TTL", c.MetadataTTL)
	c.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", c.FetchTimeout)

	c.TitleFont = getEnv("TITLE_FONT", c.TitleFont)
	c.MetaFont = getEnv("META_FONT", c.MetaFont)
	c.ControlsImage = getEnv("CONTROLS_IMAGE", c.ControlsImage)
}

// Validate reports configuration that cannot produce a working service.
func (c *Config) Validate() error {
	switch c.MetadataProvider {
	case ProviderYTDLP:
	case ProviderAPI:
		if c.YouTubeAPIKey == "" {
			return errors.New("YOUTUBE_API_KEY is required when METADATA_PROVIDER=api")
		}
	default:
		return fmt.Errorf("unknown METADATA_PROVIDER %q (want %s or %s)", c.MetadataProvider, ProviderYTDLP, ProviderAPI)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %v", c.FetchTimeout)
	}
	if c.MetadataTTL < 0 {
		return fmt.Errorf("METADATA_TTL must not be negative, got %v", c.MetadataTTL)
	}
	for _, p := range []struct{ name, value string }{{"PORT", c.Port}, {"METRICS_PORT", c.MetricsPort}} {
		if n, err := strconv.Atoi(p.value); err != nil || n < 1 || n > 65535 {
			return fmt.Errorf("invalid %s %q", p.name, p.value)
		}
	}
	return nil
}

// LoadConfig loads configuration, logs it, and prepares the cache and
// database directories.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	config, err := Load()
	if err != nil {
		return nil, err
	}

	if config.ConfigFile != "" {
		logging.Info("  CONFIG FILE:         %s", config.ConfigFile)
	}
	logging.Info("  CACHE_DIR:           %s", config.CacheDir)
	logging.Info("  DATABASE_DIR:        %s", config.DatabaseDir)
	logging.Info("  PORT:                %s", config.Port)
	logging.Info("  METRICS_PORT:        %s", config.MetricsPort)
	logging.Info("  METRICS_ENABLED:     %v", config.MetricsEnabled)
	logging.Info("  METADATA_PROVIDER:   %s", config.MetadataProvider)
	logging.Info("  YOUTUBE_API_KEY:     %s", maskSecret(config.YouTubeAPIKey))
	logging.Info("  METADATA_TTL:        %v", config.MetadataTTL)
	logging.Info("  FETCH_TIMEOUT:       %v", config.FetchTimeout)
	logging.Info("  TITLE_FONT:          %s", orDefault(config.TitleFont, "(embedded)"))
	logging.Info("  META_FONT:           %s", orDefault(config.MetaFont, "(embedded)"))
	logging.Info("  CONTROLS_IMAGE:      %s", orDefault(config.ControlsImage, "(drawn)"))
	logging.Info("  LOG_STATIC_FILES:    %v", config.LogStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", config.LogHealthChecks)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	for _, dir := range []struct{ path, name string }{
		{config.DatabaseDir, "database"},
		{config.CacheDir, "cache"},
	} {
		if err := ensureDirectory(dir.path, dir.name); err != nil {
			return nil, fmt.Errorf("%s directory error: %w", dir.name, err)
		}
		logging.Debug("  Testing %s directory write access...", dir.name)
		if err := testWriteAccess(dir.path); err != nil {
			return nil, fmt.Errorf("%s directory is not writable: %w", dir.name, err)
		}
		logging.Info("  [OK] %s directory is writable: %s", dir.name, dir.path)
	}

	if size, count := dirUsage(config.CacheDir); count > 0 {
		logging.Info("  Existing cache: %d files, %s", count, formatBytesStartup(size))
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Database:    ENABLED (required)")
	logging.Info("    Card cache:  ENABLED (required)")
	logging.Info("    Metrics:     %s", enabledString(config.MetricsEnabled))

	return config, nil
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogMemoryConfig logs how the Go memory limit was configured.
func LogMemoryConfig(result memory.ConfigResult) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("MEMORY CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	switch result.Source {
	case "GOMEMLIMIT":
		if result.Configured {
			logging.Info("  GOMEMLIMIT:      %s (from environment)", memory.FormatBytes(result.GoMemLimit))
		} else {
			logging.Info("  GOMEMLIMIT:      set in environment")
		}
	case "MEMORY_LIMIT":
		logging.Info("  Container limit: %s", memory.FormatBytes(result.ContainerLimit))
		logging.Info("  GOMEMLIMIT:      %s (%.0f%%)", memory.FormatBytes(result.GoMemLimit), result.Ratio*100)
	default:
		logging.Info("  GOMEMLIMIT:      not configured (set MEMORY_LIMIT to enable)")
	}
}

// LogDatabaseInit logs database initialization
func LogDatabaseInit(duration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DATABASE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] Database initialized in %v", duration)
}

// LogMetadataInit logs the metadata provider and checks yt-dlp when it is used.
func LogMetadataInit(config *Config) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("METADATA PROVIDER")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Provider:  %s", config.MetadataProvider)
	logging.Info("  Cache TTL: %v", config.MetadataTTL)

	if config.MetadataProvider != ProviderYTDLP {
		return
	}

	if err := checkYTDLP(config.YTDLPPath); err != nil {
		logging.Warn("  yt-dlp check failed: %v", err)
		logging.Warn("  Metadata lookups will fail until yt-dlp is installed")
	} else {
		logging.Info("  [OK] yt-dlp is available")
	}
}

// LogRendererInit logs card renderer initialization
func LogRendererInit(cacheDir string, vipsAvailable bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("RENDERER INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Card cache: %s", cacheDir)
	if vipsAvailable {
		logging.Info("  [OK] libvips fallback decoder available")
	} else {
		logging.Info("  libvips unavailable, using Go decoders only")
	}
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		name := route.GetName()

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   name,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logStaticFiles, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logStaticFiles {
		logging.Info("    Static file logging: ON")
	} else {
		logging.Info("    Static file logging: OFF (set LOG_STATIC_FILES=true to enable)")
	}
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Cards:         http://0.0.0.0:%s/api/thumbnail/{id}", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Local access:")
	logging.Info("    Cards:         http://localhost:%s/api/thumbnail/{id}", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", config.MetricsPort)
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
  _   _                     _                       _
 | |_| |__  _   _ _ __ ___ | |__   ___ __ _ _ __ __| |
 | __| '_ \| | | | '_ ' _ \| '_ \ / __/ _' | '__/ _' |
 | |_| | | | |_| | | | | | | |_) | (_| (_| | | | (_| |
  \__|_| |_|\__,_|_| |_| |_|_.__/ \___\__,_|_|  \__,_|

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

// dirUsage sums regular files directly under dir.
func dirUsage(dir string) (int64, int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}
	var size int64
	count := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logging.Debug("  stat %s: %v", e.Name(), err)
			}
			continue
		}
		size += info.Size()
		count++
	}
	return size, count
}

func formatBytesStartup(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func checkYTDLP(path string) error {
	if path == "" {
		path = "yt-dlp"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", path)
	}
	logging.Debug("  yt-dlp path: %s", resolved)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, resolved, "--version").Output()
	if err != nil {
		return fmt.Errorf("failed to get yt-dlp version: %w", err)
	}
	logging.Debug("  yt-dlp version: %s", strings.TrimSpace(string(output)))

	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}

func setDuration(dst *time.Duration, key, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	*dst = d
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logging.Warn("Invalid duration for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
