package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Ubaid1192/authload/internal/history"
	"github.com/Ubaid1192/authload/internal/metrics"
	"github.com/Ubaid1192/authload/internal/threshold"
)

func sampleStats() metrics.Stats {
	return metrics.Stats{
		Total:             100,
		Successes:         95,
		Failures:          5,
		FailurePercentage: 5.0,
		Duration:          2 * time.Second,
		RequestsPerSec:    50.0,
		MeanLatencyMs:     42.0,
		Scenarios: map[string]metrics.ScenarioStats{
			"1. Register New User":   {Total: 34, Failures: 5, MeanLatencyMs: 55.0, MaxLatencyMs: 120.0},
			"2. Login with Email":    {Total: 33, MeanLatencyMs: 35.0, MaxLatencyMs: 90.0},
			"3. Login with Username": {Total: 33, MeanLatencyMs: 36.0, MaxLatencyMs: 88.0},
		},
		FailureReasons: map[string]int{
			"Login failed":      3,
			"Connection failed": 2,
		},
	}
}

func TestPrintReportSummary(t *testing.T) {
	stats := sampleStats()
	checks := threshold.Defaults().Evaluate(stats)

	var buf bytes.Buffer
	PrintReport(&buf, stats, checks)

	output := buf.String()
	for _, want := range []string{
		"Total Requests",
		"95",
		"Failure Rate:      5.00%",
		"Failure Reasons:",
		"Login failed: 3",
		"--- Performance Requirements ---",
		"LOAD TEST FAILED",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("report missing %q:\n%s", want, output)
		}
	}

	// Scenarios print in execution order.
	register := strings.Index(output, "1. Register New User")
	email := strings.Index(output, "2. Login with Email")
	username := strings.Index(output, "3. Login with Username")
	if register < 0 || email < 0 || username < 0 {
		t.Fatalf("missing scenario rows:\n%s", output)
	}
	if !(register < email && email < username) {
		t.Errorf("scenario rows out of order:\n%s", output)
	}
}

func TestPrintReportPassingVerdict(t *testing.T) {
	stats := sampleStats()
	stats.Failures = 0
	stats.Successes = 100
	stats.FailurePercentage = 0
	stats.FailureReasons = nil
	checks := threshold.Defaults().Evaluate(stats)

	var buf bytes.Buffer
	PrintReport(&buf, stats, checks)

	output := buf.String()
	if !strings.Contains(output, "LOAD TEST PASSED") {
		t.Errorf("missing pass banner:\n%s", output)
	}
	if !strings.Contains(output, "✓ failure_rate") {
		t.Errorf("missing passing check line:\n%s", output)
	}
	if strings.Contains(output, "Failure Reasons:") {
		t.Errorf("clean run should not print failure reasons:\n%s", output)
	}
}

func TestPrintVerdictEmptyChecks(t *testing.T) {
	var buf bytes.Buffer
	PrintVerdict(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("verdict with no checks wrote output: %q", buf.String())
	}
}

func TestPrintJSONReport(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSONReport(&buf, sampleStats()); err != nil {
		t.Fatalf("PrintJSONReport failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["total"] != float64(100) {
		t.Errorf("total = %v, want 100", doc["total"])
	}
	if _, ok := doc["scenarios"]; !ok {
		t.Errorf("missing scenarios breakdown in JSON output")
	}
}

func TestPrintHistory(t *testing.T) {
	records := []history.Record{
		{
			ID:             "01JD0000000000000000000002",
			StartedAt:      time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC),
			Target:         "http://localhost:8080",
			Users:          10,
			TotalRequests:  812,
			FailedRequests: 3,
			FailurePercent: 0.37,
			AvgResponseMs:  41.2,
			TestDuration:   "30.0s",
			Passed:         true,
		},
		{
			ID:             "01JD0000000000000000000001",
			StartedAt:      time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
			Target:         "http://localhost:8080",
			Users:          10,
			TotalRequests:  5,
			FailedRequests: 5,
			FailurePercent: 100,
			AvgResponseMs:  12.0,
			TestDuration:   "5.0s",
			Passed:         false,
		},
	}

	var buf bytes.Buffer
	PrintHistory(&buf, records)

	output := buf.String()
	for _, want := range []string{"TARGET", "http://localhost:8080", "PASS", "FAIL", "812"} {
		if !strings.Contains(output, want) {
			t.Errorf("history table missing %q:\n%s", want, output)
		}
	}
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No recorded runs.") {
		t.Errorf("unexpected empty-history output: %q", buf.String())
	}
}
