package metrics

import (
	"os"
	"sync"
	"time"

	"thumbcard/internal/logging"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// CacheSizer measures the card cache. Implementations update the
// CardCacheSize and CardCacheCount gauges themselves.
type CacheSizer interface {
	GetCacheSize() (int64, int, error)
}

// Stats holds the current statistics
type Stats struct {
	TotalVideos  int
	TotalRenders int
}

// Collector periodically collects and updates metrics
type Collector struct {
	statsProvider StatsProvider
	cache         CacheSizer
	dbPath        string
	interval      time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// NewCollector creates a new metrics collector. dbPath may be empty to skip
// database file size reporting.
func NewCollector(provider StatsProvider, dbPath string, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		dbPath:        dbPath,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// WithCache makes each collection also measure the card cache.
func (c *Collector) WithCache(sizer CacheSizer) *Collector {
	c.cache = sizer
	return c
}

// Start begins the metrics collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection. It is safe to call more than once.
func (c *Collector) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	c.collectDBSize()

	if c.cache != nil {
		if _, _, err := c.cache.GetCacheSize(); err != nil {
			logging.Warn("Failed to measure card cache: %v", err)
		}
	}

	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	VideosTotal.Set(float64(stats.TotalVideos))
	RendersRecordedTotal.Set(float64(stats.TotalRenders))

	logging.Debug("Metrics collected: videos=%d, renders=%d", stats.TotalVideos, stats.TotalRenders)
}

func (c *Collector) collectDBSize() {
	if c.dbPath == "" {
		return
	}

	files := map[string]string{
		"main": c.dbPath,
		"wal":  c.dbPath + "-wal",
		"shm":  c.dbPath + "-shm",
	}

	for label, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			DBSizeBytes.WithLabelValues(label).Set(0)
			continue
		}
		DBSizeBytes.WithLabelValues(label).Set(float64(info.Size()))
	}
}
