package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Collector records per-request metrics in a thread-safe manner.
// Every issued HTTP request is recorded exactly once; skipped
// scenarios never reach the collector.
type Collector struct {
	mu             sync.Mutex
	hist           *hdrhistogram.Histogram
	successes      int64
	failures       int64
	minLatency     time.Duration
	maxLatency     time.Duration
	sumLatency     time.Duration
	failureReasons map[string]int64
	scenarios      map[string]*scenarioAgg
	start          time.Time
}

type scenarioAgg struct {
	total      int64
	failures   int64
	sumLatency time.Duration
	maxLatency time.Duration
}

// ScenarioStats aggregates the requests recorded under one scenario name.
type ScenarioStats struct {
	Total         int64   `json:"total"`
	Failures      int64   `json:"failures"`
	MeanLatencyMs float64 `json:"mean_latency_ms"`
	MaxLatencyMs  float64 `json:"max_latency_ms"`
}

// Stats represents aggregated metrics.
type Stats struct {
	Total             int64         `json:"total"`
	Successes         int64         `json:"successes"`
	Failures          int64         `json:"failures"`
	FailurePercentage float64       `json:"failure_percentage"`
	MinLatency        time.Duration `json:"-"`
	MaxLatency        time.Duration `json:"-"`
	MeanLatency       time.Duration `json:"-"`
	P50Latency        time.Duration `json:"-"`
	P90Latency        time.Duration `json:"-"`
	P99Latency        time.Duration `json:"-"`
	Duration          time.Duration `json:"-"`
	RequestsPerSec    float64       `json:"requests_per_sec"`

	// JSON-friendly millisecond fields.
	MinLatencyMs  float64 `json:"min_latency_ms"`
	MaxLatencyMs  float64 `json:"max_latency_ms"`
	MeanLatencyMs float64 `json:"mean_latency_ms"`
	P50LatencyMs  float64 `json:"p50_latency_ms"`
	P90LatencyMs  float64 `json:"p90_latency_ms"`
	P99LatencyMs  float64 `json:"p99_latency_ms"`
	DurationMs    float64 `json:"duration_ms"`

	Scenarios      map[string]ScenarioStats `json:"scenarios,omitempty"`
	FailureReasons map[string]int           `json:"failure_reasons,omitempty"`
}

func NewCollector() *Collector {
	// Track latencies from 1µs up to 60s with 3 significant figures.
	h := hdrhistogram.New(1, 60_000_000, 3)
	return &Collector{
		hist:           h,
		failureReasons: make(map[string]int64),
		scenarios:      make(map[string]*scenarioAgg),
		start:          time.Now(),
	}
}

// Start re-stamps the wall-clock start right before workers launch.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = time.Now()
}

// StartedAt returns the recorded wall-clock start.
func (c *Collector) StartedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start
}

// RecordRequest records a single request's latency and outcome under
// the given scenario name. A nil err is a success; otherwise the
// error's condensed reason feeds the failure breakdown.
func (c *Collector) RecordRequest(latency time.Duration, err error, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if latency > 0 {
		us := latency.Microseconds()
		if us < c.hist.LowestTrackableValue() {
			us = c.hist.LowestTrackableValue()
		}
		if us > c.hist.HighestTrackableValue() {
			us = c.hist.HighestTrackableValue()
		}
		_ = c.hist.RecordValue(us)
	}
	c.sumLatency += latency

	if c.minLatency == 0 || latency < c.minLatency {
		c.minLatency = latency
	}
	if latency > c.maxLatency {
		c.maxLatency = latency
	}

	if err == nil {
		c.successes++
	} else {
		c.failures++
		c.failureReasons[FailureReason(err)]++
	}

	agg := c.scenarios[name]
	if agg == nil {
		agg = &scenarioAgg{}
		c.scenarios[name] = agg
	}
	agg.total++
	agg.sumLatency += latency
	if latency > agg.maxLatency {
		agg.maxLatency = latency
	}
	if err != nil {
		agg.failures++
	}
}

// Stats computes and returns current aggregated statistics.
func (c *Collector) Stats(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.successes + c.failures
	stats := Stats{
		Total:      total,
		Successes:  c.successes,
		Failures:   c.failures,
		MinLatency: c.minLatency,
		MaxLatency: c.maxLatency,
	}

	if total > 0 {
		stats.MeanLatency = time.Duration(int64(c.sumLatency) / total)
		stats.FailurePercentage = float64(c.failures) / float64(total) * 100
	}

	if c.hist.TotalCount() > 0 {
		stats.P50Latency = time.Duration(c.hist.ValueAtQuantile(50)) * time.Microsecond
		stats.P90Latency = time.Duration(c.hist.ValueAtQuantile(90)) * time.Microsecond
		stats.P99Latency = time.Duration(c.hist.ValueAtQuantile(99)) * time.Microsecond
	}

	stats.MinLatencyMs = float64(stats.MinLatency) / float64(time.Millisecond)
	stats.MaxLatencyMs = float64(stats.MaxLatency) / float64(time.Millisecond)
	stats.MeanLatencyMs = float64(stats.MeanLatency) / float64(time.Millisecond)
	stats.P50LatencyMs = float64(stats.P50Latency) / float64(time.Millisecond)
	stats.P90LatencyMs = float64(stats.P90Latency) / float64(time.Millisecond)
	stats.P99LatencyMs = float64(stats.P99Latency) / float64(time.Millisecond)

	stats.Duration = elapsed
	stats.DurationMs = float64(elapsed) / float64(time.Millisecond)
	if elapsed > 0 && total > 0 {
		stats.RequestsPerSec = float64(total) / elapsed.Seconds()
	}

	if len(c.scenarios) > 0 {
		stats.Scenarios = make(map[string]ScenarioStats, len(c.scenarios))
		for name, agg := range c.scenarios {
			s := ScenarioStats{
				Total:        agg.total,
				Failures:     agg.failures,
				MaxLatencyMs: float64(agg.maxLatency) / float64(time.Millisecond),
			}
			if agg.total > 0 {
				s.MeanLatencyMs = float64(agg.sumLatency/time.Duration(agg.total)) / float64(time.Millisecond)
			}
			stats.Scenarios[name] = s
		}
	}

	if len(c.failureReasons) > 0 {
		stats.FailureReasons = make(map[string]int, len(c.failureReasons))
		for k, v := range c.failureReasons {
			stats.FailureReasons[k] = int(v)
		}
	}

	return stats
}
