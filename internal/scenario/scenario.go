// Package scenario defines the outcome classification, the per-session
// statistics, and the shared scenario log used by every simulated user.
package scenario

import "time"

// Status classifies one scenario execution.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFail    Status = "FAIL"
	StatusError   Status = "ERROR"
	StatusSkip    Status = "SKIP"
)

// Stats tracks one session's run counters. A session runs on a single
// goroutine, so Stats is not synchronized.
type Stats struct {
	TotalRequests   int64
	FailedRequests  int64
	MaxResponseTime time.Duration
	StartTime       time.Time
}

// NewStats returns counters stamped with the current time.
func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// CountOutcome tallies one scenario execution. Every status counts
// toward the total, SKIP included; FAIL and ERROR also count as
// failures.
func (s *Stats) CountOutcome(status Status) {
	s.TotalRequests++
	if status == StatusFail || status == StatusError {
		s.FailedRequests++
	}
}

// Observe raises the recorded maximum response time. Only the
// registration scenario feeds it.
func (s *Stats) Observe(latency time.Duration) {
	if latency > s.MaxResponseTime {
		s.MaxResponseTime = latency
	}
}

// FailurePercentage returns failed/total as a percentage, or zero
// when nothing has run.
func (s *Stats) FailurePercentage() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.FailedRequests) / float64(s.TotalRequests) * 100
}
