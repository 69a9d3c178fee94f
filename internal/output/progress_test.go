package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Ubaid1192/authload/internal/metrics"
)

func TestProgressReporterPrintsCounters(t *testing.T) {
	collector := metrics.NewCollector()
	collector.Start()
	for i := 0; i < 5; i++ {
		collector.RecordRequest(30*time.Millisecond, nil, "1. Register New User")
	}
	collector.RecordRequest(40*time.Millisecond, errors.New("Login failed"), "2. Login with Email")

	var buf bytes.Buffer
	reporter := NewProgressReporter(collector, 20*time.Millisecond, &buf)
	reporter.Start()
	time.Sleep(80 * time.Millisecond)
	reporter.Stop()

	output := buf.String()
	if !strings.Contains(output, "progress: scenarios=6 failures=1") {
		t.Errorf("missing progress counters in output: %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("final flush should end with a newline: %q", output)
	}
}

func TestProgressReporterSkipsQuietTicks(t *testing.T) {
	collector := metrics.NewCollector()
	collector.Start()
	collector.RecordRequest(10*time.Millisecond, nil, "1. Register New User")

	var buf bytes.Buffer
	reporter := NewProgressReporter(collector, 10*time.Millisecond, &buf)
	reporter.Start()
	time.Sleep(100 * time.Millisecond)
	reporter.Stop()

	// One print for the first tick, one for the final flush; the quiet
	// ticks in between stay silent.
	if n := strings.Count(buf.String(), "scenarios=1"); n > 2 {
		t.Errorf("quiet ticks reprinted the line %d times: %q", n, buf.String())
	}
}

func TestProgressReporterStopWithoutStart(t *testing.T) {
	collector := metrics.NewCollector()
	var buf bytes.Buffer
	reporter := NewProgressReporter(collector, 50*time.Millisecond, &buf)
	reporter.Stop()

	if buf.Len() != 0 {
		t.Errorf("stopped-before-start reporter wrote output: %q", buf.String())
	}
}

func TestProgressReporterStopIsIdempotent(t *testing.T) {
	collector := metrics.NewCollector()
	reporter := NewProgressReporter(collector, 50*time.Millisecond, nil)
	reporter.Start()
	reporter.Stop()
	reporter.Stop()
}
