package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers all CLI flags to a cobra command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.Flags())
}

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "authload",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Target and load shape
	flags.String("target", "", "Base URL of the application under test")
	flags.IntP("users", "u", 10, "Number of concurrent simulated users")
	flags.Duration("wait", time.Second, "Pause after each scenario")
	flags.DurationP("duration", "d", 0, "How long to run the test (0 means until interrupted)")
	flags.IntP("iterations", "i", 0, "Scenario sequence passes per user (0 means unlimited)")
	flags.IntP("rate", "r", 0, "Global scenario starts per second (0 means unpaced)")
	flags.Duration("timeout", 30*time.Second, "Per-request timeout")

	// Verdict thresholds
	flags.Float64("failure-threshold", 1.0, "Maximum allowed failure percentage")
	flags.Duration("max-avg-response", 2000*time.Millisecond, "Maximum allowed average response time")
	flags.Int("min-requests", 10, "Minimum number of requests for a valid run")

	// Artifacts
	flags.String("report-dir", "load_test_reports", "Directory for the JSON and JUnit reports")
	flags.String("scenario-log", "bdd_load_test.log", "Scenario log file path")
	flags.String("html-report", "", "Write an HTML run report to this path")
	flags.String("history-file", "", "Run history database path (defaults to <report-dir>/history.db)")
	flags.Bool("no-history", false, "Skip recording this run in the history database")
	flags.Bool("history", false, "Print recent runs from the history database and exit")

	// Output flags
	flags.Bool("json-output", false, "Emit JSON formatted output")
	flags.Bool("dashboard", false, "Show live terminal dashboard with metrics")
	flags.Bool("log-errors", false, "Log each failed scenario to stderr")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")

	// Reproducibility
	flags.Int64("seed", 0, "Seed for synthetic user data (0 means time-based)")

	// Tracing flags
	flags.String("otlp-endpoint", "", "OTLP collector endpoint for trace export")
	flags.String("otlp-protocol", "grpc", "OTLP transport: 'grpc' or 'http'")
	flags.Bool("otlp-insecure", false, "Disable TLS for OTLP export")
	flags.Float64("trace-sample-rate", 1.0, "Trace sampling ratio between 0.0 and 1.0")
	flags.String("service-name", "", "Service name reported on trace spans")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Usage: %s\n\nFlags:\n", cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("target") {
		val, err := fs.GetString("target")
		if err != nil {
			return err
		}
		cfg.TargetURL = val
	}
	if fs.Changed("users") {
		val, err := fs.GetInt("users")
		if err != nil {
			return err
		}
		cfg.Users = val
	}
	if fs.Changed("wait") {
		val, err := fs.GetDuration("wait")
		if err != nil {
			return err
		}
		cfg.Wait = val
	}
	if fs.Changed("duration") {
		val, err := fs.GetDuration("duration")
		if err != nil {
			return err
		}
		cfg.Duration = val
	}
	if fs.Changed("iterations") {
		val, err := fs.GetInt("iterations")
		if err != nil {
			return err
		}
		cfg.Iterations = val
	}
	if fs.Changed("rate") {
		val, err := fs.GetInt("rate")
		if err != nil {
			return err
		}
		cfg.Rate = val
	}
	if fs.Changed("timeout") {
		val, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = val
	}
	if fs.Changed("failure-threshold") {
		val, err := fs.GetFloat64("failure-threshold")
		if err != nil {
			return err
		}
		cfg.FailureThreshold = val
	}
	if fs.Changed("max-avg-response") {
		val, err := fs.GetDuration("max-avg-response")
		if err != nil {
			return err
		}
		cfg.MaxAvgResponse = val
	}
	if fs.Changed("min-requests") {
		val, err := fs.GetInt("min-requests")
		if err != nil {
			return err
		}
		cfg.MinRequests = int64(val)
	}
	if fs.Changed("report-dir") {
		val, err := fs.GetString("report-dir")
		if err != nil {
			return err
		}
		cfg.ReportDir = val
	}
	if fs.Changed("scenario-log") {
		val, err := fs.GetString("scenario-log")
		if err != nil {
			return err
		}
		cfg.ScenarioLog = val
	}
	if fs.Changed("html-report") {
		val, err := fs.GetString("html-report")
		if err != nil {
			return err
		}
		cfg.HTMLReport = val
	}
	if fs.Changed("history-file") {
		val, err := fs.GetString("history-file")
		if err != nil {
			return err
		}
		cfg.HistoryFile = val
	}
	if fs.Changed("no-history") {
		val, err := fs.GetBool("no-history")
		if err != nil {
			return err
		}
		cfg.NoHistory = val
	}
	if fs.Changed("history") {
		val, err := fs.GetBool("history")
		if err != nil {
			return err
		}
		cfg.ShowHistory = val
	}
	if fs.Changed("seed") {
		val, err := fs.GetInt64("seed")
		if err != nil {
			return err
		}
		cfg.Seed = val
	}
	if fs.Changed("json-output") {
		val, err := fs.GetBool("json-output")
		if err != nil {
			return err
		}
		cfg.JSONOutput = val
	}
	if fs.Changed("dashboard") {
		val, err := fs.GetBool("dashboard")
		if err != nil {
			return err
		}
		cfg.Dashboard = val
	}
	if fs.Changed("log-errors") {
		val, err := fs.GetBool("log-errors")
		if err != nil {
			return err
		}
		cfg.LogErrors = val
	}
	if fs.Changed("otlp-endpoint") {
		val, err := fs.GetString("otlp-endpoint")
		if err != nil {
			return err
		}
		cfg.Tracing.Endpoint = val
	}
	if fs.Changed("otlp-protocol") {
		val, err := fs.GetString("otlp-protocol")
		if err != nil {
			return err
		}
		cfg.Tracing.Protocol = val
	}
	if fs.Changed("otlp-insecure") {
		val, err := fs.GetBool("otlp-insecure")
		if err != nil {
			return err
		}
		cfg.Tracing.Insecure = val
	}
	if fs.Changed("trace-sample-rate") {
		val, err := fs.GetFloat64("trace-sample-rate")
		if err != nil {
			return err
		}
		cfg.Tracing.SampleRate = val
	}
	if fs.Changed("service-name") {
		val, err := fs.GetString("service-name")
		if err != nil {
			return err
		}
		cfg.Tracing.ServiceName = val
	}

	return nil
}
