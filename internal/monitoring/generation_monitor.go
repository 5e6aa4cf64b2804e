package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// GenerationMonitor tracks how long tile and line generation takes and how much
// it produces. Counters are atomic so the HUD and the perf logger may read them
// from any goroutine.
type GenerationMonitor struct {
	// Call metrics
	generations atomic.Uint64
	lastTime    atomic.Uint64 // nanoseconds
	totalTime   atomic.Uint64 // nanoseconds

	// Output metrics
	lastTiles  atomic.Int64
	totalTiles atomic.Uint64
	lastLines  atomic.Int64
	emptyRuns  atomic.Uint64

	// Statistics
	mutex     sync.RWMutex
	avgTime   float64 // nanoseconds, running mean
	peakTime  uint64
	peakTiles int64
	startTime time.Time

	slowThreshold time.Duration
}

// NewGenerationMonitor creates a monitor that counts generations slower than
// slowThreshold as alerts.
func NewGenerationMonitor(slowThreshold time.Duration) *GenerationMonitor {
	return &GenerationMonitor{
		startTime:     time.Now(),
		slowThreshold: slowThreshold,
	}
}

// GenerationTimer measures one generation call
type GenerationTimer struct {
	monitor   *GenerationMonitor
	startTime time.Time
}

// StartGeneration begins timing
func (gm *GenerationMonitor) StartGeneration() *GenerationTimer {
	return &GenerationTimer{
		monitor:   gm,
		startTime: time.Now(),
	}
}

// EndGeneration records the elapsed time and the number of tiles produced
func (gt *GenerationTimer) EndGeneration(tiles int) time.Duration {
	elapsed := time.Since(gt.startTime)
	gt.monitor.Record(elapsed, tiles)
	return elapsed
}

// Record adds one generation sample
func (gm *GenerationMonitor) Record(elapsed time.Duration, tiles int) {
	ns := uint64(elapsed.Nanoseconds())
	gm.lastTime.Store(ns)
	gm.totalTime.Add(ns)
	gm.lastTiles.Store(int64(tiles))
	gm.totalTiles.Add(uint64(tiles))
	if tiles == 0 {
		gm.emptyRuns.Add(1)
	}

	gm.mutex.Lock()
	count := gm.generations.Add(1)
	gm.avgTime += (float64(ns) - gm.avgTime) / float64(count)
	if ns > gm.peakTime {
		gm.peakTime = ns
	}
	if int64(tiles) > gm.peakTiles {
		gm.peakTiles = int64(tiles)
	}
	gm.mutex.Unlock()
}

// RecordLines stores the line count of the latest grid-line generation
func (gm *GenerationMonitor) RecordLines(lines int) {
	gm.lastLines.Store(int64(lines))
}

// GenerationMetrics is a snapshot for display
type GenerationMetrics struct {
	Generations uint64
	LastTime    time.Duration
	AverageTime time.Duration
	PeakTime    time.Duration
	LastTiles   int
	PeakTiles   int
	LastLines   int
	AvgTiles    float64
}

// GetCurrentMetrics returns the current statistics
func (gm *GenerationMonitor) GetCurrentMetrics() GenerationMetrics {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	count := gm.generations.Load()
	avgTiles := 0.0
	if count > 0 {
		avgTiles = float64(gm.totalTiles.Load()) / float64(count)
	}
	return GenerationMetrics{
		Generations: count,
		LastTime:    time.Duration(gm.lastTime.Load()),
		AverageTime: time.Duration(gm.avgTime),
		PeakTime:    time.Duration(gm.peakTime),
		LastTiles:   int(gm.lastTiles.Load()),
		PeakTiles:   int(gm.peakTiles),
		LastLines:   int(gm.lastLines.Load()),
		AvgTiles:    avgTiles,
	}
}

// GetDetailedStats returns detailed statistics keyed for logging
func (gm *GenerationMonitor) GetDetailedStats() map[string]interface{} {
	m := gm.GetCurrentMetrics()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	gm.mutex.RLock()
	uptime := time.Since(gm.startTime)
	gm.mutex.RUnlock()

	return map[string]interface{}{
		"uptime_seconds":       uptime.Seconds(),
		"generations":          m.Generations,
		"empty_generations":    gm.emptyRuns.Load(),
		"last_generation_ms":   float64(m.LastTime.Microseconds()) / 1000,
		"avg_generation_ms":    float64(m.AverageTime.Microseconds()) / 1000,
		"peak_generation_ms":   float64(m.PeakTime.Microseconds()) / 1000,
		"last_tiles":           m.LastTiles,
		"peak_tiles":           m.PeakTiles,
		"avg_tiles":            m.AvgTiles,
		"last_lines":           m.LastLines,
		"memory_alloc_mb":      memStats.Alloc / 1024 / 1024,
		"gc_cycles":            memStats.NumGC,
		"goroutines":           runtime.NumGoroutine(),
		"slow_threshold_ms":    float64(gm.slowThreshold.Microseconds()) / 1000,
		"total_generation_sec": time.Duration(gm.totalTime.Load()).Seconds(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports a slow last generation
func (gm *GenerationMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	if gm.slowThreshold <= 0 {
		return alerts
	}
	last := time.Duration(gm.lastTime.Load())
	if last > gm.slowThreshold {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_generation",
			Message:   "Tile generation exceeded its time budget",
			Value:     float64(last.Microseconds()) / 1000,
			Threshold: float64(gm.slowThreshold.Microseconds()) / 1000,
			Timestamp: time.Now(),
		})
	}
	return alerts
}

// Reset clears all counters
func (gm *GenerationMonitor) Reset() {
	gm.generations.Store(0)
	gm.lastTime.Store(0)
	gm.totalTime.Store(0)
	gm.lastTiles.Store(0)
	gm.totalTiles.Store(0)
	gm.lastLines.Store(0)
	gm.emptyRuns.Store(0)

	gm.mutex.Lock()
	gm.avgTime = 0
	gm.peakTime = 0
	gm.peakTiles = 0
	gm.startTime = time.Now()
	gm.mutex.Unlock()
}
