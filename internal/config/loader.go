package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles loading configuration from files and command-line arguments.
type Loader struct{}

// ErrHelpRequested is returned when the user requests help via --help flag.
var ErrHelpRequested = errors.New("help requested")

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses command-line arguments and configuration files to produce a Config.
func (Loader) Load(args []string) (*Config, error) {
	cmd := newFlagCommand()
	if err := cmd.Flags().Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
		return nil, err
	}

	flagSet := cmd.Flags()
	if helpFlag := flagSet.Lookup("help"); helpFlag != nil {
		if wantsHelp, err := strconv.ParseBool(helpFlag.Value.String()); err == nil && wantsHelp {
			displayHelp(cmd)
			return nil, ErrHelpRequested
		}
	}

	// If no arguments provided and no config file, show help/usage
	configPath := flagSet.Lookup("config").Value.String()
	if len(args) == 0 && configPath == "" {
		displayHelp(cmd)
		return nil, ErrHelpRequested
	}
	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	settings := cfgViper.AllSettings()

	cfg := &Config{
		Users:            10,
		Wait:             time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MaxAvgResponse:   2000 * time.Millisecond,
		MinRequests:      10,
		ReportDir:        "load_test_reports",
		ScenarioLog:      "bdd_load_test.log",
		ConfigFile:       configPath,
		Tracing: TracingConfig{
			Protocol:   "grpc",
			SampleRate: 1.0,
		},
	}

	if err := applyConfigSettings(cfg, settings); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, flagSet); err != nil {
		return nil, err
	}

	cfg.TargetURL = strings.TrimSpace(cfg.TargetURL)
	cfg.ReportDir = strings.TrimSpace(cfg.ReportDir)
	cfg.ScenarioLog = strings.TrimSpace(cfg.ScenarioLog)
	if strings.TrimSpace(cfg.HistoryFile) == "" {
		cfg.HistoryFile = filepath.Join(cfg.ReportDir, "history.db")
	}

	return cfg, nil
}

// applyConfigSettings applies settings from a config file to the Config struct.
func applyConfigSettings(cfg *Config, settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}

	if raw, ok := lookupSetting(settings, "target"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		cfg.TargetURL = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "users"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("users: %w", err)
		}
		cfg.Users = val
	}

	if raw, ok := lookupSetting(settings, "wait"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("wait: %w", err)
		}
		cfg.Wait = dur
	}

	if raw, ok := lookupSetting(settings, "duration"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		cfg.Duration = dur
	}

	if raw, ok := lookupSetting(settings, "iterations"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("iterations: %w", err)
		}
		cfg.Iterations = val
	}

	if raw, ok := lookupSetting(settings, "rate"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("rate: %w", err)
		}
		cfg.Rate = val
	}

	if raw, ok := lookupSetting(settings, "timeout"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.Timeout = dur
	}

	if raw, ok := lookupSetting(settings, "failurethreshold", "failure_threshold", "failure-threshold"); ok {
		val, err := asFloat64(raw)
		if err != nil {
			return fmt.Errorf("failureThreshold: %w", err)
		}
		cfg.FailureThreshold = val
	}

	if raw, ok := lookupSetting(settings, "maxavgresponse", "max_avg_response", "max-avg-response"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("maxAvgResponse: %w", err)
		}
		cfg.MaxAvgResponse = dur
	}

	if raw, ok := lookupSetting(settings, "minrequests", "min_requests", "min-requests"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("minRequests: %w", err)
		}
		cfg.MinRequests = int64(val)
	}

	if raw, ok := lookupSetting(settings, "reportdir", "report_dir", "report-dir"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("reportDir: %w", err)
		}
		cfg.ReportDir = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "scenariolog", "scenario_log", "scenario-log"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("scenarioLog: %w", err)
		}
		cfg.ScenarioLog = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "htmlreport", "html_report", "html-report"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("htmlReport: %w", err)
		}
		cfg.HTMLReport = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "historyfile", "history_file", "history-file"); ok {
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("historyFile: %w", err)
		}
		cfg.HistoryFile = strings.TrimSpace(val)
	}

	if raw, ok := lookupSetting(settings, "nohistory", "no_history", "no-history"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("noHistory: %w", err)
		}
		cfg.NoHistory = val
	}

	if raw, ok := lookupSetting(settings, "seed"); ok {
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		cfg.Seed = int64(val)
	}

	if raw, ok := lookupSetting(settings, "jsonoutput", "json_output", "json-output"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("jsonOutput: %w", err)
		}
		cfg.JSONOutput = val
	}

	if raw, ok := lookupSetting(settings, "dashboard"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		cfg.Dashboard = val
	}

	if raw, ok := lookupSetting(settings, "logerrors", "log_errors", "log-errors"); ok {
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("logErrors: %w", err)
		}
		cfg.LogErrors = val
	}

	if raw, ok := lookupSetting(settings, "tracing"); ok {
		tracing, err := parseTracing(raw)
		if err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
		if tracing.Protocol == "" {
			tracing.Protocol = cfg.Tracing.Protocol
		}
		cfg.Tracing = tracing
	}

	return nil
}

func parseTracing(value interface{}) (TracingConfig, error) {
	if value == nil {
		return TracingConfig{}, nil
	}
	entry, err := toStringKeyMap(value)
	if err != nil {
		return TracingConfig{}, err
	}

	tracing := TracingConfig{SampleRate: 1.0}
	if raw, ok := lookupSetting(entry, "endpoint"); ok {
		val, err := asString(raw)
		if err != nil {
			return TracingConfig{}, fmt.Errorf("endpoint: %w", err)
		}
		tracing.Endpoint = strings.TrimSpace(val)
	}
	if raw, ok := lookupSetting(entry, "protocol"); ok {
		val, err := asString(raw)
		if err != nil {
			return TracingConfig{}, fmt.Errorf("protocol: %w", err)
		}
		tracing.Protocol = strings.ToLower(strings.TrimSpace(val))
	}
	if raw, ok := lookupSetting(entry, "servicename", "service_name", "service-name"); ok {
		val, err := asString(raw)
		if err != nil {
			return TracingConfig{}, fmt.Errorf("service_name: %w", err)
		}
		tracing.ServiceName = strings.TrimSpace(val)
	}
	if raw, ok := lookupSetting(entry, "samplerate", "sample_rate", "sample-rate"); ok {
		val, err := asFloat64(raw)
		if err != nil {
			return TracingConfig{}, fmt.Errorf("sample_rate: %w", err)
		}
		tracing.SampleRate = val
	}
	if raw, ok := lookupSetting(entry, "insecure"); ok {
		val, err := asBool(raw)
		if err != nil {
			return TracingConfig{}, fmt.Errorf("insecure: %w", err)
		}
		tracing.Insecure = val
	}
	return tracing, nil
}
