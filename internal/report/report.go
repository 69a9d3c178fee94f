// Package report writes the run artifacts (JSON summary and JUnit XML) and
// renders the final verdict against the acceptance thresholds.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/Ubaid1192/authload/internal/history"
	"github.com/Ubaid1192/authload/internal/metrics"
	"github.com/Ubaid1192/authload/internal/scenario"
	"github.com/Ubaid1192/authload/internal/threshold"
)

// Artifact names inside the report directory.
const (
	JSONFileName  = "load_test_report.json"
	JUnitFileName = "load_test_results.xml"
	lockFileName  = ".authload.lock"
)

// ErrNoRequests means the run produced nothing to report on. No artifacts
// are written in that case.
var ErrNoRequests = errors.New("no requests were made during the test")

// ErrRequirements means the artifacts were written but the run failed its
// performance requirements.
var ErrRequirements = errors.New("load test failed to meet requirements")

// Report is the compact JSON artifact consumed by CI jobs. The field set and
// names are a contract; downstream parsers rely on them.
type Report struct {
	TotalRequests   int64   `json:"total_requests"`
	FailedRequests  int64   `json:"failed_requests"`
	FailurePercent  float64 `json:"failure_percentage"`
	AvgResponseTime float64 `json:"average_response_time"`
	TestDuration    string  `json:"test_duration"`
}

// Generator writes the run artifacts and renders the verdict.
type Generator struct {
	Dir        string
	Thresholds threshold.Thresholds
	Sink       *scenario.Sink
	History    *history.Store // nil disables history recording
	Target     string
	Users      int
}

// Generate writes the JSON and JUnit artifacts, appends the history record,
// and evaluates the thresholds. Artifacts reach disk before the verdict is
// rendered, so a failing run still leaves a full report behind.
func (g *Generator) Generate(stats metrics.Stats, elapsed time.Duration) ([]threshold.Check, error) {
	if stats.Total == 0 {
		g.Sink.Errorf("No requests were made during the test!")
		return nil, ErrNoRequests
	}

	rep := Report{
		TotalRequests:   stats.Total,
		FailedRequests:  stats.Failures,
		FailurePercent:  stats.FailurePercentage,
		AvgResponseTime: stats.MeanLatencyMs,
		TestDuration:    elapsed.Round(100 * time.Millisecond).String(),
	}

	if err := g.writeArtifacts(rep); err != nil {
		return nil, err
	}

	checks := g.Thresholds.Evaluate(stats)
	passed := threshold.Passed(checks)

	if g.History != nil {
		rec := history.Record{
			Target:         g.Target,
			Users:          g.Users,
			TotalRequests:  stats.Total,
			FailedRequests: stats.Failures,
			FailurePercent: stats.FailurePercentage,
			AvgResponseMs:  stats.MeanLatencyMs,
			TestDuration:   rep.TestDuration,
			Passed:         passed,
		}
		if _, err := g.History.Append(rec); err != nil {
			g.Sink.Errorf("Failed to record run history: %v", err)
		}
	}

	if !passed {
		g.Sink.Errorf("Load test failed to meet requirements!")
		return checks, ErrRequirements
	}
	g.Sink.Infof("Load test completed successfully.")
	return checks, nil
}

// writeArtifacts writes both report files under the directory lock, so
// concurrent runs sharing a report dir never interleave writes.
func (g *Generator) writeArtifacts(rep Report) error {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	lock := flock.New(filepath.Join(g.Dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock report dir: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(g.Dir, JSONFileName), append(data, '\n')); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}

	junit, err := renderJUnit(rep)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(g.Dir, JUnitFileName), junit); err != nil {
		return fmt.Errorf("write JUnit report: %w", err)
	}
	return nil
}

// writeFileAtomic writes via a temp file and rename so a concurrent reader
// never sees a torn artifact.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
