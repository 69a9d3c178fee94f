package metrics

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

const maxReasonLength = 80

// FailureReason condenses an error into a stable, human-readable
// bucket key for the failure breakdown. Scenario-level failure
// reasons (response body messages) pass through unchanged; transport
// errors collapse into a few well-known labels so the breakdown does
// not splinter on addresses and ports.
func FailureReason(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	case errors.Is(err, context.Canceled):
		return "Request canceled"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Request timed out"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return "Connection failed"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return trimReason(urlErr.Err.Error())
	}

	return trimReason(err.Error())
}

func trimReason(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown error"
	}
	if len(s) > maxReasonLength {
		s = s[:maxReasonLength-3] + "..."
	}
	return s
}
