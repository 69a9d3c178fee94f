package threshold

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Ubaid1192/authload/internal/metrics"
)

// Thresholds are the pass/fail limits applied to a finished run.
type Thresholds struct {
	MaxFailurePercent float64       // verdict fails when the failure percentage exceeds this
	MaxAvgResponse    time.Duration // verdict fails when the mean latency exceeds this
	MinRequests       int64         // verdict fails when fewer requests were issued
}

// Defaults returns the standard acceptance limits: at most 1% failures, at
// most 2s average response time, at least 10 issued requests.
func Defaults() Thresholds {
	return Thresholds{
		MaxFailurePercent: 1.0,
		MaxAvgResponse:    2000 * time.Millisecond,
		MinRequests:       10,
	}
}

// Check is the outcome of one threshold rule.
type Check struct {
	Name    string
	Message string
	Pass    bool
}

// Evaluate applies every rule to the collected stats. Upper limits are
// exclusive: a run sitting exactly on a limit passes.
func (t Thresholds) Evaluate(stats metrics.Stats) []Check {
	maxAvgMs := float64(t.MaxAvgResponse) / float64(time.Millisecond)

	return []Check{
		newCheck("failure_rate",
			stats.FailurePercentage <= t.MaxFailurePercent,
			fmt.Sprintf("%.2f%%", stats.FailurePercentage),
			fmt.Sprintf("%.2f%%", t.MaxFailurePercent),
			"<=", ">"),
		newCheck("avg_response",
			stats.MeanLatencyMs <= maxAvgMs,
			fmt.Sprintf("%.2fms", stats.MeanLatencyMs),
			fmt.Sprintf("%.2fms", maxAvgMs),
			"<=", ">"),
		newCheck("min_requests",
			stats.Total >= t.MinRequests,
			strconv.FormatInt(stats.Total, 10),
			strconv.FormatInt(t.MinRequests, 10),
			">=", "<"),
	}
}

// Passed reports whether every check passed.
func Passed(checks []Check) bool {
	for _, c := range checks {
		if !c.Pass {
			return false
		}
	}
	return true
}

func newCheck(name string, pass bool, actual, limit, passOp, failOp string) Check {
	status, op := "✓", passOp
	if !pass {
		status, op = "✗", failOp
	}
	return Check{
		Name:    name,
		Pass:    pass,
		Message: fmt.Sprintf("%s %s: %s %s %s", status, name, actual, op, limit),
	}
}
