// Package metrics provides real-time metrics collection and aggregation
// for load test runs.
//
// The package collects latency measurements, success/failure counts, and
// per-scenario breakdowns while sessions execute.
//
// # Collector
//
// The central [Collector] type aggregates metrics from all sessions:
//
//	collector := metrics.NewCollector()
//	collector.Start() // mark test start for accurate RPS calculation
//
//	// Record an issued request under its scenario name.
//	collector.RecordRequest(latency, err, "1. Register New User")
//
//	// Get aggregated statistics.
//	stats := collector.Stats(elapsed)
//
// Skipped scenarios never reach the collector; only issued HTTP
// requests are recorded.
//
// # Statistics
//
// The [Stats] type carries:
//   - Request counts (total, successes, failures, failure percentage)
//   - Latency spread (min, mean, max and P50/P90/P99 percentiles)
//   - Requests per second
//   - Per-scenario aggregates ([ScenarioStats])
//   - Failure reasons bucketed by [FailureReason]
//
// # Thread Safety
//
// The Collector serializes updates behind a single mutex. It is safe
// to call RecordRequest from multiple goroutines.
package metrics
