package viewer

import (
	"log"
	"sync"

	"tilegrid/internal/grid"
)

// AdjustmentLogger logs each distinct grid settings substitution once. The
// engine reports on every query.
type AdjustmentLogger struct {
	mu   sync.Mutex
	seen map[string]bool
	logf func(format string, args ...interface{})
}

// NewAdjustmentLogger writes through the standard logger
func NewAdjustmentLogger() *AdjustmentLogger {
	return &AdjustmentLogger{seen: make(map[string]bool), logf: log.Printf}
}

// Report is suitable for grid.WithReporter
func (l *AdjustmentLogger) Report(a grid.Adjustment) {
	key := a.String()
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen[key] {
		return
	}
	l.seen[key] = true
	l.logf("Warning: invalid grid setting %s", key)
}

// Reset forgets what has been logged, so a recurring problem is reported again
func (l *AdjustmentLogger) Reset() {
	l.mu.Lock()
	l.seen = make(map[string]bool)
	l.mu.Unlock()
}
