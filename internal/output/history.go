package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Ubaid1192/authload/internal/history"
)

// PrintHistory writes the recent-runs table, newest first.
func PrintHistory(w io.Writer, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tTARGET\tUSERS\tTOTAL\tFAILED\tFAIL%\tAVG(ms)\tDURATION\tRESULT")
	for _, rec := range records {
		verdict := "PASS"
		if !rec.Passed {
			verdict = "FAIL"
		}
		fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%d\t%d\t%d\t%.2f\t%.1f\t%s\t%s\n",
			rec.ID,
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Target,
			rec.Users,
			rec.TotalRequests,
			rec.FailedRequests,
			rec.FailurePercent,
			rec.AvgResponseMs,
			rec.TestDuration,
			verdict,
		)
	}
	tw.Flush()
}
