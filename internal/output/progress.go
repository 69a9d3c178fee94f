package output

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/Ubaid1192/authload/internal/metrics"
)

// ProgressReporter prints a one-line progress update while the run is
// active. The line is rewritten in place and only moves when the
// counters do.
type ProgressReporter struct {
	collector *metrics.Collector
	ticker    *time.Ticker
	done      chan struct{}
	finished  chan struct{}
	writer    io.Writer
	active    int32
	start     time.Time

	lastTotal    int64
	lastFailures int64
}

// NewProgressReporter creates a progress reporter that updates at the given interval.
func NewProgressReporter(collector *metrics.Collector, interval time.Duration, writer io.Writer) *ProgressReporter {
	if writer == nil {
		writer = io.Discard
	}
	return &ProgressReporter{
		collector: collector,
		ticker:    time.NewTicker(interval),
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
		writer:    writer,
		start:     time.Now(),
	}
}

// Start begins displaying progress updates in a background goroutine.
func (p *ProgressReporter) Start() {
	if !atomic.CompareAndSwapInt32(&p.active, 0, 1) {
		return // already running
	}
	go p.run()
}

// Stop halts progress updates after a final flush of the counters.
func (p *ProgressReporter) Stop() {
	if atomic.CompareAndSwapInt32(&p.active, 1, 0) {
		close(p.done)
		p.ticker.Stop()
		<-p.finished
	}
}

func (p *ProgressReporter) run() {
	defer close(p.finished)
	for {
		select {
		case <-p.ticker.C:
			stats := p.collector.Stats(time.Since(p.start))
			if stats.Total == p.lastTotal && stats.Failures == p.lastFailures {
				continue
			}
			p.lastTotal = stats.Total
			p.lastFailures = stats.Failures
			fmt.Fprint(p.writer, progressLine(stats))
		case <-p.done:
			// Final line with a newline so the summary starts clean.
			stats := p.collector.Stats(time.Since(p.start))
			fmt.Fprint(p.writer, progressLine(stats)+"\n")
			return
		}
	}
}

func progressLine(stats metrics.Stats) string {
	return fmt.Sprintf("\rprogress: scenarios=%d failures=%d rps=%.1f",
		stats.Total, stats.Failures, stats.RequestsPerSec)
}
