// Package memory configures the Go runtime memory limit for containers and
// applies backpressure to card rendering when the heap nears that limit.
//
// # Configuration
//
// Call [ConfigureFromEnv] early in main, before significant allocations:
//
//   - GOMEMLIMIT: Standard Go variable. If set, it wins and is left alone.
//   - MEMORY_LIMIT: Container memory limit in bytes, usually injected with
//     the Kubernetes Downward API.
//   - MEMORY_RATIO: Share of MEMORY_LIMIT given to the Go heap, between 0.0
//     and 1.0 (default: 0.80).
//
// The remainder is left for libvips, decoded source thumbnails and yt-dlp
// subprocesses, none of which GOMEMLIMIT accounts for.
//
//	env:
//	- name: MEMORY_LIMIT
//	  valueFrom:
//	    resourceFieldRef:
//	      resource: limits.memory
//
// # Backpressure
//
// A [Monitor] samples the heap every CheckInterval. Once usage reaches
// CriticalWaterMark, [Monitor.Wait] blocks new renders until usage drops
// below HighWaterMark:
//
//	monitor := memory.NewMonitor(memory.DefaultConfig())
//	monitor.Start()
//	defer monitor.Stop()
//
//	if err := monitor.Wait(ctx); err != nil {
//	    return err
//	}
package memory
