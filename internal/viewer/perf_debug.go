package viewer

import (
	"log"
	"time"

	"tilegrid/internal/config"
	"tilegrid/internal/monitoring"
)

const defaultPerfLogEvery = 3 * time.Second

// perfLogger prints a generation snapshot while the monitor raises slow
// generation alerts, at most once per interval.
type perfLogger struct {
	enabled  bool
	interval time.Duration
	lastLog  time.Time
	logf     func(format string, args ...interface{})
}

func newPerfLogger(c config.ViewerConfig) *perfLogger {
	p := &perfLogger{
		enabled:  c.PerfDebug,
		interval: time.Duration(c.PerfLogSeconds * float64(time.Second)),
		logf:     log.Printf,
	}
	if p.interval <= 0 {
		p.interval = defaultPerfLogEvery
	}
	return p
}

// maybeLog reports whether a snapshot was written
func (p *perfLogger) maybeLog(now time.Time, gm *monitoring.GenerationMonitor, hud hudState) bool {
	if !p.enabled {
		return false
	}
	alerts := gm.CheckPerformanceAlerts()
	if len(alerts) == 0 {
		return false
	}
	if !p.lastLog.IsZero() && now.Sub(p.lastLog) < p.interval {
		return false
	}
	p.lastLog = now

	stats := gm.GetDetailedStats()
	for _, a := range alerts {
		p.logf("[PERF] %s: %s (%.2fms > %.2fms)", a.Type, a.Message, a.Value, a.Threshold)
	}
	p.logf("[PERF] avg=%.2fms peak=%.2fms tiles=%d peak_tiles=%d lines=%d",
		getPerfFloat(stats, "avg_generation_ms"),
		getPerfFloat(stats, "peak_generation_ms"),
		getPerfInt(stats, "last_tiles"),
		getPerfInt(stats, "peak_tiles"),
		getPerfInt(stats, "last_lines"),
	)
	p.logf("[PERF] topology=%s zoom=%.3f viewport=%.0fx%.0f mem_alloc=%dMB gc_cycles=%d goroutines=%d",
		hud.settings.Topology,
		hud.settings.EffectiveZoom(),
		hud.viewport.Width,
		hud.viewport.Height,
		getPerfInt(stats, "memory_alloc_mb"),
		getPerfInt(stats, "gc_cycles"),
		getPerfInt(stats, "goroutines"),
	)
	return true
}

func getPerfFloat(stats map[string]interface{}, key string) float64 {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		case uint64:
			return float64(v)
		}
	}
	return 0
}

func getPerfInt(stats map[string]interface{}, key string) int {
	if val, ok := stats[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case uint32:
			return int(v)
		case uint64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}
