package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thumbcard/internal/database"
	"thumbcard/internal/filesystem"
	"thumbcard/internal/handlers"
	"thumbcard/internal/logging"
	"thumbcard/internal/media"
	"thumbcard/internal/memory"
	"thumbcard/internal/metrics"
	"thumbcard/internal/middleware"
	"thumbcard/internal/render"
	"thumbcard/internal/startup"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	memResult := memory.ConfigureFromEnv()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	startup.LogMemoryConfig(memResult)

	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"cache":    config.CacheDir,
		"database": config.DatabaseDir,
	}))

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Initialize metadata provider
	startup.LogMetadataInit(config)
	provider, err := startup.NewProvider(context.Background(), config, db)
	if err != nil {
		startup.LogFatal("Failed to initialize metadata provider: %v", err)
	}

	// Initialize renderer
	if err := media.InitVips(); err != nil {
		logging.Warn("libvips unavailable: %v", err)
	}
	defer media.ShutdownVips()

	assets, err := render.LoadAssets(config.TitleFont, config.MetaFont, config.ControlsImage)
	if err != nil {
		startup.LogFatal("Failed to load render assets: %v", err)
	}

	memMonitor := memory.NewMonitor(memory.DefaultConfig())
	memMonitor.Start()

	gen, err := media.NewGenerator(media.Options{
		CacheDir:   config.CacheDir,
		Provider:   provider,
		Downloader: media.NewDownloader(config.FetchTimeout),
		Assets:     assets,
		Recorder:   db,
		Memory:     memMonitor,
	})
	if err != nil {
		startup.LogFatal("Failed to initialize card generator: %v", err)
	}
	startup.LogRendererInit(config.CacheDir, media.IsVipsAvailable())

	// Metrics
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	metrics.InitializeMetrics(provider.Name())
	collector := metrics.NewCollector(db, config.DatabasePath, time.Minute).WithCache(gen)
	collector.Start()

	h := handlers.New(db, gen)

	router := setupRouter(h)

	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(router)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", h.MetricsHandler())
		metricsSrv = &http.Server{
			Addr:              ":" + config.MetricsPort,
			Handler:           metricsMux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	done := make(chan struct{})
	go handleShutdown(srv, metricsSrv, collector, memMonitor, done)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}

	<-done
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/thumbnail/{id}", h.GetThumbnail).Methods("GET", "HEAD")
	api.HandleFunc("/thumbnail/{id}", h.DeleteThumbnail).Methods("DELETE")
	api.HandleFunc("/thumbnails", h.PurgeThumbnails).Methods("DELETE")
	api.HandleFunc("/video/{id}", h.GetVideo).Methods("GET")
	api.HandleFunc("/stats", h.GetStats).Methods("GET")

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector, memMonitor *memory.Monitor, done chan<- struct{}) {
	defer close(done)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	// Release renders held back by memory pressure so the server can drain.
	memMonitor.Stop()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownComplete()
}
