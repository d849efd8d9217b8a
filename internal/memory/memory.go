package memory

import (
	"context"
	"math"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"thumbcard/internal/logging"
	"thumbcard/internal/metrics"
)

// Config holds memory management configuration
type Config struct {
	// MemoryLimitBytes is the soft memory limit (0 = use GOMEMLIMIT or no limit)
	MemoryLimitBytes int64

	// HighWaterMark is the fraction of the limit below which rendering resumes
	HighWaterMark float64

	// CriticalWaterMark is the fraction at which new renders are held back
	CriticalWaterMark float64

	// CheckInterval is how often to check memory usage
	CheckInterval time.Duration
}

// DefaultConfig returns the defaults used by the server.
func DefaultConfig() Config {
	return Config{
		HighWaterMark:     0.7,
		CriticalWaterMark: 0.85,
		CheckInterval:     5 * time.Second,
	}
}

// Monitor samples heap usage and holds back new renders while it is critical.
type Monitor struct {
	config   Config
	limit    int64
	sample   func() uint64
	stopChan chan struct{}
	stopOnce sync.Once

	mu        sync.RWMutex
	current   uint64
	isPaused  bool
	pauseChan chan struct{}
}

// NewMonitor creates a new memory monitor
func NewMonitor(config Config) *Monitor {
	limit := config.MemoryLimitBytes

	if limit == 0 {
		if goMemLimit := debug.SetMemoryLimit(-1); goMemLimit > 0 && goMemLimit < math.MaxInt64 {
			limit = goMemLimit
			logging.Info("Memory monitor using GOMEMLIMIT: %s", FormatBytes(limit))
		}
	}

	if limit == 0 {
		logging.Debug("Memory monitor: no memory limit configured, backpressure disabled")
	}

	return &Monitor{
		config:    config,
		limit:     limit,
		sample:    heapAlloc,
		stopChan:  make(chan struct{}),
		pauseChan: make(chan struct{}),
	}
}

func heapAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.Alloc
}

// Start begins monitoring memory usage. It is a no-op without a limit.
func (m *Monitor) Start() {
	if m.limit == 0 {
		return
	}
	go m.monitorLoop()
}

// Stop stops the monitor and releases any waiting renders.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

func (m *Monitor) monitorLoop() {
	ticker := time.NewTicker(m.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.checkMemory()
		case <-m.stopChan:
			return
		}
	}
}

func (m *Monitor) checkMemory() {
	alloc := m.sample()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = alloc
	if m.limit == 0 {
		return
	}

	usage := float64(alloc) / float64(m.limit)
	metrics.MemoryUsageRatio.Set(usage)

	switch {
	case usage >= m.config.CriticalWaterMark && !m.isPaused:
		logging.Warn("Memory critical (%.1f%% of limit), pausing renders", usage*100)
		m.isPaused = true
		metrics.MemoryPaused.Set(1)
		metrics.MemoryPausesTotal.Inc()
		go runtime.GC()
	case usage < m.config.HighWaterMark && m.isPaused:
		logging.Info("Memory recovered (%.1f%% of limit), resuming renders", usage*100)
		m.isPaused = false
		metrics.MemoryPaused.Set(0)
		close(m.pauseChan)
		m.pauseChan = make(chan struct{})
	}
}

// Wait blocks while memory usage is critical. It returns ctx.Err() if ctx
// ends first and nil once rendering may proceed or the monitor is stopped.
func (m *Monitor) Wait(ctx context.Context) error {
	m.mu.RLock()
	if !m.isPaused {
		m.mu.RUnlock()
		return nil
	}
	pauseChan := m.pauseChan
	m.mu.RUnlock()

	metrics.MemoryWaitsTotal.Inc()
	logging.Debug("Render waiting for memory pressure to clear")

	select {
	case <-pauseChan:
		return nil
	case <-m.stopChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsPaused reports whether new renders are currently held back.
func (m *Monitor) IsPaused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isPaused
}

// GetStats returns the last sampled heap size, the limit and their ratio.
func (m *Monitor) GetStats() (current, limit int64, usage float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	currentInt64 := int64(math.MaxInt64)
	if m.current <= math.MaxInt64 {
		currentInt64 = int64(m.current)
	}

	if m.limit > 0 {
		usage = float64(m.current) / float64(m.limit)
	}
	return currentInt64, m.limit, usage
}
