package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Ubaid1192/authload/internal/config"
	"github.com/Ubaid1192/authload/internal/dashboard"
	"github.com/Ubaid1192/authload/internal/history"
	"github.com/Ubaid1192/authload/internal/httpclient"
	"github.com/Ubaid1192/authload/internal/metrics"
	"github.com/Ubaid1192/authload/internal/output"
	"github.com/Ubaid1192/authload/internal/report"
	"github.com/Ubaid1192/authload/internal/runner"
	"github.com/Ubaid1192/authload/internal/scenario"
	"github.com/Ubaid1192/authload/internal/session"
	"github.com/Ubaid1192/authload/internal/threshold"
	"github.com/Ubaid1192/authload/internal/tracing"
	"github.com/Ubaid1192/authload/internal/userdata"
)

const (
	progressInterval = time.Second
	historyTableSize = 20
	shutdownTimeout  = 5 * time.Second
)

// sessionFactory builds one Session per simulated user. Each user gets
// its own user-data source so sessions never share generated accounts.
type sessionFactory struct {
	cfg       *config.Config
	client    *http.Client
	sink      *scenario.Sink
	collector *metrics.Collector
	tracer    trace.Tracer
	seed      int64
	onFailure func(name, details string)
}

func (f *sessionFactory) New(user int) runner.Session {
	logger := scenario.NewLogger(f.sink, scenario.NewStats())
	return session.New(session.Options{
		Target:    f.cfg.TargetURL,
		Client:    f.client,
		Users:     userdata.NewFactory(f.seed + int64(user)),
		Logger:    logger,
		Collector: f.collector,
		Tracer:    f.tracer,
		OnFailure: f.onFailure,
	})
}

type stderrFailureLogger struct {
	mu sync.Mutex
}

func (l *stderrFailureLogger) LogFailure(name, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(os.Stderr, "[authload] scenario failed: %s: %s\n", name, details)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.ShowHistory {
		return printHistory(cfg.HistoryFile)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The scenario log echoes to the console only when the terminal is
	// not owned by the dashboard or reserved for JSON output.
	console := io.Writer(os.Stdout)
	if cfg.JSONOutput || cfg.Dashboard {
		console = io.Discard
	}
	sink, err := scenario.Open(cfg.ScenarioLog, console)
	if err != nil {
		return err
	}
	defer sink.Close()

	provider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "tracing shutdown: %v\n", err)
		}
	}()

	var store *history.Store
	if !cfg.NoHistory {
		store, err = history.Open(cfg.HistoryFile)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	collector := metrics.NewCollector()
	client := httpclient.NewClient(cfg.Timeout)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	factory := &sessionFactory{
		cfg:       cfg,
		client:    client,
		sink:      sink,
		collector: collector,
		tracer:    provider.Tracer(),
		seed:      seed,
	}
	if cfg.LogErrors {
		logger := &stderrFailureLogger{}
		factory.onFailure = logger.LogFailure
	}

	r := runner.New(runner.Options{
		Users:      cfg.Users,
		Iterations: cfg.Iterations,
		Duration:   cfg.Duration,
		Wait:       cfg.Wait,
		Rate:       cfg.Rate,
		Factory:    factory,
	})

	var dash *dashboard.Dashboard
	if cfg.Dashboard {
		dash, err = dashboard.New(collector, dashboard.RunConfig{
			TargetURL:        cfg.TargetURL,
			Users:            cfg.Users,
			Wait:             cfg.Wait,
			Duration:         cfg.Duration,
			Iterations:       cfg.Iterations,
			Rate:             cfg.Rate,
			Timeout:          cfg.Timeout,
			FailureThreshold: cfg.FailureThreshold,
			ConfigFile:       cfg.ConfigFile,
		}, cancel)
		if err != nil {
			return err
		}
		dash.Start()
	}

	var progress *output.ProgressReporter
	if !cfg.JSONOutput && !cfg.Dashboard {
		progress = output.NewProgressReporter(collector, progressInterval, os.Stdout)
		progress.Start()
	}

	// Re-stamp the start right before workers launch so RPS reflects
	// the test window, not setup time.
	collector.Start()
	result := r.Run(ctx)

	if progress != nil {
		progress.Stop()
	}
	if dash != nil {
		dash.Stop()
	}

	stats := collector.Stats(result.Duration)

	thresholds := threshold.Thresholds{
		MaxFailurePercent: cfg.FailureThreshold,
		MaxAvgResponse:    cfg.MaxAvgResponse,
		MinRequests:       cfg.MinRequests,
	}

	if stats.Total > 0 {
		checks := thresholds.Evaluate(stats)
		if cfg.JSONOutput {
			if err := output.PrintJSONReport(os.Stdout, stats); err != nil {
				return err
			}
		} else {
			output.PrintReport(os.Stdout, stats, checks)
		}
		if cfg.HTMLReport != "" {
			if err := writeHTMLReport(cfg, stats, checks); err != nil {
				return err
			}
		}
	}

	gen := &report.Generator{
		Dir:        cfg.ReportDir,
		Thresholds: thresholds,
		Sink:       sink,
		History:    store,
		Target:     cfg.TargetURL,
		Users:      cfg.Users,
	}
	_, err = gen.Generate(stats, result.Duration)
	return err
}

func printHistory(path string) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(historyTableSize)
	if err != nil {
		return err
	}
	output.PrintHistory(os.Stdout, records)
	return nil
}

func writeHTMLReport(cfg *config.Config, stats metrics.Stats, checks []threshold.Check) error {
	f, err := os.Create(cfg.HTMLReport)
	if err != nil {
		return fmt.Errorf("create HTML report: %w", err)
	}
	if err := output.WriteHTMLReport(f, stats, checks, cfg.TargetURL, cfg.Users); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
