package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds the full run configuration for authload.
type Config struct {
	TargetURL        string        `mapstructure:"target"`
	Users            int           `mapstructure:"users"`
	Wait             time.Duration `mapstructure:"wait"`
	Duration         time.Duration `mapstructure:"duration"`
	Iterations       int           `mapstructure:"iterations"`
	Rate             int           `mapstructure:"rate"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
	MaxAvgResponse   time.Duration `mapstructure:"max_avg_response"`
	MinRequests      int64         `mapstructure:"min_requests"`
	ReportDir        string        `mapstructure:"report_dir"`
	ScenarioLog      string        `mapstructure:"scenario_log"`
	HTMLReport       string        `mapstructure:"html_report"`
	HistoryFile      string        `mapstructure:"history_file"`
	NoHistory        bool          `mapstructure:"no_history"`
	Seed             int64         `mapstructure:"seed"`
	JSONOutput       bool          `mapstructure:"json_output"`
	Dashboard        bool          `mapstructure:"dashboard"`
	LogErrors        bool          `mapstructure:"log_errors"`
	ShowHistory      bool          `mapstructure:"-"`
	ConfigFile       string        `mapstructure:"-"`
	Tracing          TracingConfig `mapstructure:"tracing"`
}

// TracingConfig controls OTLP trace export.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Insecure    bool    `mapstructure:"insecure"`
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string
	var warnings []string

	target := strings.TrimSpace(c.TargetURL)
	if target == "" {
		// --history only reads the run database, no target needed.
		if !c.ShowHistory {
			issues = append(issues, "target is required (use --help for usage information)")
		}
	} else {
		u, err := url.Parse(target)
		if err != nil {
			issues = append(issues, fmt.Sprintf("target is not a valid URL: %v", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			issues = append(issues, fmt.Sprintf("target scheme must be http or https, got %q", u.Scheme))
		} else if u.Host == "" {
			issues = append(issues, "target host cannot be empty")
		}
	}

	// Security warnings for high rate/user counts.
	if c.Rate > 1000 {
		warnings = append(warnings, fmt.Sprintf("WARNING: High rate limit configured (%d scenarios/s). Ensure you have authorization to test the target system.", c.Rate))
	}
	if c.Users > 500 {
		warnings = append(warnings, fmt.Sprintf("WARNING: High user count configured (%d sessions). Ensure you have authorization to test the target system.", c.Users))
	}
	if len(warnings) > 0 {
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, w)
		}
	}

	if c.Users < 1 {
		issues = append(issues, "users must be >= 1")
	}
	if c.Wait < 0 {
		issues = append(issues, "wait must be >= 0")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate must be >= 0")
	}
	if c.Iterations < 0 {
		issues = append(issues, "iterations must be >= 0")
	}
	if c.Duration < 0 {
		issues = append(issues, "duration must be >= 0")
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}
	if c.FailureThreshold < 0 || c.FailureThreshold > 100 {
		issues = append(issues, "failure-threshold must be between 0 and 100")
	}
	if c.MaxAvgResponse <= 0 {
		issues = append(issues, "max-avg-response must be > 0")
	}
	if c.MinRequests < 0 {
		issues = append(issues, "min-requests must be >= 0")
	}
	if strings.TrimSpace(c.ReportDir) == "" {
		issues = append(issues, "report-dir cannot be empty")
	}
	if strings.TrimSpace(c.ScenarioLog) == "" {
		issues = append(issues, "scenario-log cannot be empty")
	}
	if c.Dashboard && c.JSONOutput {
		issues = append(issues, "dashboard and json-output are mutually exclusive")
	}

	tracingIssues := validateTracingConfig(c.Tracing)
	if len(tracingIssues) > 0 {
		issues = append(issues, tracingIssues...)
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}

	return nil
}

func validateTracingConfig(tc TracingConfig) []string {
	var issues []string

	protocol := strings.ToLower(strings.TrimSpace(tc.Protocol))
	switch protocol {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing protocol must be 'grpc' or 'http', got %q", tc.Protocol))
	}

	if tc.SampleRate < 0 || tc.SampleRate > 1.0 {
		issues = append(issues, "tracing sample rate must be between 0.0 and 1.0")
	}

	return issues
}
