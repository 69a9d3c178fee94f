package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Ubaid1192/authload/internal/metrics"
	"github.com/Ubaid1192/authload/internal/threshold"
)

// PrintReport outputs the human-readable run summary followed by the
// requirements verdict.
func PrintReport(w io.Writer, stats metrics.Stats, checks []threshold.Check) {
	fmt.Fprintln(w, "\n--- Load Test Results ---")
	fmt.Fprintf(w, "Total Requests:    %d\n", stats.Total)
	fmt.Fprintf(w, "Successful:        %d\n", stats.Successes)
	fmt.Fprintf(w, "Failed:            %d\n", stats.Failures)
	fmt.Fprintf(w, "Failure Rate:      %.2f%%\n", stats.FailurePercentage)
	fmt.Fprintf(w, "Duration:          %s\n", stats.Duration)
	fmt.Fprintf(w, "Requests/sec:      %.2f\n", stats.RequestsPerSec)
	fmt.Fprintln(w, "\nLatency:")
	fmt.Fprintf(w, "  Min:             %s\n", stats.MinLatency)
	fmt.Fprintf(w, "  Max:             %s\n", stats.MaxLatency)
	fmt.Fprintf(w, "  Mean:            %s\n", stats.MeanLatency)
	fmt.Fprintf(w, "  P50:             %s\n", stats.P50Latency)
	fmt.Fprintf(w, "  P90:             %s\n", stats.P90Latency)
	fmt.Fprintf(w, "  P99:             %s\n", stats.P99Latency)

	if rows := metrics.SortScenarios(stats.Scenarios); len(rows) > 0 {
		fmt.Fprintln(w, "\nScenarios:")
		for _, row := range rows {
			fmt.Fprintf(
				w,
				"  - %s: total=%d, failures=%d, mean=%.1fms, max=%.1fms\n",
				row.Name,
				row.Total,
				row.Failures,
				row.MeanLatencyMs,
				row.MaxLatencyMs,
			)
		}
	}

	if rows := metrics.SortReasons(stats.FailureReasons); len(rows) > 0 {
		fmt.Fprintln(w, "\nFailure Reasons:")
		for _, row := range rows {
			fmt.Fprintf(w, "  - %s: %d\n", row.Reason, row.Count)
		}
	}

	PrintVerdict(w, checks)
}

// PrintJSONReport outputs the full stats document as indented JSON.
func PrintJSONReport(w io.Writer, stats metrics.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
