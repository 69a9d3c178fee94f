package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Ubaid1192/authload/internal/threshold"
)

var (
	passBanner = color.New(color.FgGreen).Add(color.Bold)
	failBanner = color.New(color.FgRed).Add(color.Bold)
)

// PrintVerdict writes the per-requirement check lines followed by the
// overall verdict banner.
func PrintVerdict(w io.Writer, checks []threshold.Check) {
	if len(checks) == 0 {
		return
	}
	fmt.Fprintln(w, "\n--- Performance Requirements ---")
	for _, check := range checks {
		fmt.Fprintln(w, check.Message)
	}
	fmt.Fprintln(w)
	if threshold.Passed(checks) {
		passBanner.Fprintln(w, "LOAD TEST PASSED")
	} else {
		failBanner.Fprintln(w, "LOAD TEST FAILED")
	}
}
