// Package dashboard renders a live terminal UI for an in-flight load
// test run.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/Ubaid1192/authload/internal/metrics"
)

// RunConfig holds the run parameters shown in the summary panel.
type RunConfig struct {
	TargetURL        string
	Users            int
	Wait             time.Duration
	Duration         time.Duration // 0 = until interrupted
	Iterations       int           // 0 = unlimited passes
	Rate             int           // scenario starts per second, 0 = unpaced
	Timeout          time.Duration
	FailureThreshold float64 // max allowed failure percentage
	ConfigFile       string
}

// Dashboard renders live collector stats until the run ends or the
// user quits.
type Dashboard struct {
	collector    *metrics.Collector
	ctx          context.Context
	cancel       context.CancelFunc
	shutdownFunc func()
	wg           sync.WaitGroup
	mu           sync.Mutex

	// Widgets
	grid           *ui.Grid
	latencySparkle *widgets.SparklineGroup
	latencyPara    *widgets.Paragraph
	failGauge      *widgets.Gauge
	reasonList     *widgets.List
	scenarioList   *widgets.List
	summaryPara    *widgets.Paragraph
	metricsPara    *widgets.Paragraph
	latencyHistory []float64
	startTime      time.Time
	testDuration   time.Duration
	runConfig      RunConfig
}

// New creates a new Dashboard.
func New(collector *metrics.Collector, cfg RunConfig, shutdownFunc func()) (*Dashboard, error) {
	if err := ui.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize termui: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	d := &Dashboard{
		collector:      collector,
		ctx:            ctx,
		cancel:         cancel,
		shutdownFunc:   shutdownFunc,
		latencyHistory: make([]float64, 0, 100),
		startTime:      time.Now(),
		runConfig:      cfg,
	}

	d.initWidgets()
	d.setupGrid()

	return d, nil
}

// initWidgets initializes all dashboard widgets.
func (d *Dashboard) initWidgets() {
	// Latency Sparkline
	sparkline := widgets.NewSparkline()
	sparkline.Title = "Latency (ms)"
	sparkline.LineColor = ui.ColorGreen
	sparkline.Data = []float64{0}

	d.latencySparkle = widgets.NewSparklineGroup(sparkline)
	d.latencySparkle.Title = "Real-time Latency"
	d.latencySparkle.BorderStyle.Fg = ui.ColorCyan

	// Latency Metrics Paragraph
	d.latencyPara = widgets.NewParagraph()
	d.latencyPara.Title = "Latency Stats"
	d.latencyPara.Text = "Min: 0ms\nMean: 0ms\nP50: 0ms\nP90: 0ms\nP99: 0ms"
	d.latencyPara.BorderStyle.Fg = ui.ColorCyan

	// Failure Rate Gauge
	d.failGauge = widgets.NewGauge()
	d.failGauge.Title = "Failure Budget"
	d.failGauge.Percent = 0
	d.failGauge.BarColor = ui.ColorGreen
	d.failGauge.BorderStyle.Fg = ui.ColorCyan
	d.failGauge.LabelStyle = ui.NewStyle(ui.ColorWhite)

	// Failure Reason List
	d.reasonList = widgets.NewList()
	d.reasonList.Title = "Failure Reasons"
	d.reasonList.Rows = []string{"No failures"}
	d.reasonList.TextStyle = ui.NewStyle(ui.ColorYellow)
	d.reasonList.BorderStyle.Fg = ui.ColorCyan

	// Scenario List
	d.scenarioList = widgets.NewList()
	d.scenarioList.Title = "Scenarios"
	d.scenarioList.Rows = []string{"Awaiting data"}
	d.scenarioList.TextStyle = ui.NewStyle(ui.ColorCyan)
	d.scenarioList.BorderStyle.Fg = ui.ColorCyan

	// Summary Paragraph
	d.summaryPara = widgets.NewParagraph()
	d.summaryPara.Title = "Run Summary"
	d.summaryPara.Text = "Initializing..."
	d.summaryPara.BorderStyle.Fg = ui.ColorCyan

	// Metrics Paragraph (plain text summary)
	d.metricsPara = widgets.NewParagraph()
	d.metricsPara.Title = "Metrics"
	d.metricsPara.Text = "Waiting for data..."
	d.metricsPara.BorderStyle.Fg = ui.ColorCyan
}

// setupGrid configures the layout grid.
func (d *Dashboard) setupGrid() {
	termWidth, termHeight := ui.TerminalDimensions()

	d.grid = ui.NewGrid()
	d.grid.SetRect(0, 0, termWidth, termHeight)

	d.grid.Set(
		ui.NewRow(0.16,
			ui.NewCol(1.0, d.summaryPara),
		),
		ui.NewRow(0.20,
			ui.NewCol(0.5, d.failGauge),
			ui.NewCol(0.5, d.metricsPara),
		),
		ui.NewRow(0.28,
			ui.NewCol(0.65, d.latencySparkle),
			ui.NewCol(0.35, d.latencyPara),
		),
		ui.NewRow(0.36,
			ui.NewCol(0.5, d.scenarioList),
			ui.NewCol(0.5, d.reasonList),
		),
	)
}

// Start begins the dashboard update loop.
func (d *Dashboard) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop stops the dashboard and cleans up.
func (d *Dashboard) Stop() {
	d.cancel()
	d.wg.Wait()
	d.testDuration = time.Since(d.startTime)
	ui.Close()
	// Give terminal time to restore
	time.Sleep(100 * time.Millisecond)
}

// GetFinalStats returns the final statistics after the dashboard has stopped.
func (d *Dashboard) GetFinalStats() metrics.Stats {
	return d.collector.Stats(d.testDuration)
}

// run is the main dashboard update loop.
func (d *Dashboard) run() {
	defer d.wg.Done()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	uiEvents := ui.PollEvents()

	d.render()

	for {
		select {
		case <-d.ctx.Done():
			// Drain any remaining events
			for len(uiEvents) > 0 {
				<-uiEvents
			}
			return
		case e := <-uiEvents:
			// Check if context is done to avoid blocking
			select {
			case <-d.ctx.Done():
				return
			default:
			}

			switch e.ID {
			case "q", "<C-c>":
				if d.shutdownFunc != nil {
					d.shutdownFunc()
				}
				// Do not return here; wait for Stop() to cancel context
			case "<Resize>":
				payload := e.Payload.(ui.Resize)
				d.grid.SetRect(0, 0, payload.Width, payload.Height)
				ui.Clear()
				d.render()
			}
		case <-ticker.C:
			d.update()
			d.render()
		}
	}
}

// update refreshes all widget data from the collector.
func (d *Dashboard) update() {
	d.mu.Lock()
	defer d.mu.Unlock()

	elapsed := time.Since(d.startTime)
	stats := d.collector.Stats(elapsed)

	// Update latency history for sparkline
	if stats.MeanLatency > 0 {
		latencyMs := stats.MeanLatencyMs
		d.latencyHistory = append(d.latencyHistory, latencyMs)
		if len(d.latencyHistory) > 100 {
			d.latencyHistory = d.latencyHistory[1:]
		}
		d.latencySparkle.Sparklines[0].Data = d.latencyHistory
		d.latencySparkle.Title = fmt.Sprintf(
			"Real-time Latency | Current: %.2fms | Min: %.2fms | Max: %.2fms",
			latencyMs,
			stats.MinLatencyMs,
			stats.MaxLatencyMs,
		)
	}

	percent, label := gaugeState(stats.FailurePercentage, d.runConfig.FailureThreshold)
	d.failGauge.Percent = percent
	d.failGauge.Label = label
	if stats.FailurePercentage > d.runConfig.FailureThreshold {
		d.failGauge.BarColor = ui.ColorRed
	} else {
		d.failGauge.BarColor = ui.ColorGreen
	}

	d.summaryPara.Text = fmt.Sprintf(
		"Target: %s\n%s\nElapsed: %s | Scenarios: %d | Failure Rate: %.2f%%",
		d.runConfig.TargetURL,
		d.formatRunParams(),
		elapsed.Round(time.Second),
		stats.Total,
		stats.FailurePercentage,
	)

	d.metricsPara.Text = fmt.Sprintf(
		"Total Requests:    %d\nSuccessful:        %d\nFailed:            %d\nCurrent RPS:       %.2f\nFailure Rate:      %.2f%%\nMin Latency:       %.2fms\nMean Latency:      %.2fms\nP50/P90/P99:       %.2f / %.2f / %.2f ms",
		stats.Total,
		stats.Successes,
		stats.Failures,
		stats.RequestsPerSec,
		stats.FailurePercentage,
		stats.MinLatencyMs,
		stats.MeanLatencyMs,
		stats.P50LatencyMs,
		stats.P90LatencyMs,
		stats.P99LatencyMs,
	)

	d.latencyPara.Text = fmt.Sprintf(
		"Min:  %.2fms\nMean: %.2fms\nP50:  %.2fms\nP90:  %.2fms\nP99:  %.2fms",
		stats.MinLatencyMs,
		stats.MeanLatencyMs,
		stats.P50LatencyMs,
		stats.P90LatencyMs,
		stats.P99LatencyMs,
	)

	d.updateScenarioList(stats)
	d.reasonList.Rows = formatReasonRows(stats.FailureReasons)
}

// render draws all widgets to the screen.
func (d *Dashboard) render() {
	d.mu.Lock()
	defer d.mu.Unlock()

	ui.Render(d.grid)
}

func (d *Dashboard) updateScenarioList(stats metrics.Stats) {
	rows := metrics.SortScenarios(stats.Scenarios)
	if len(rows) == 0 {
		d.scenarioList.Rows = []string{"[No scenario data](fg:green)"}
		return
	}
	formatted := make([]string, 0, len(rows))
	for _, row := range rows {
		share := 0.0
		if stats.Total > 0 {
			share = (float64(row.Total) / float64(stats.Total)) * 100
		}
		formatted = append(formatted, fmt.Sprintf("[%s](fg:cyan) | %5.1f%% | fail %d | mean %6.1fms | max %6.1fms",
			row.Name,
			share,
			row.Failures,
			row.MeanLatencyMs,
			row.MaxLatencyMs,
		))
	}
	d.scenarioList.Rows = formatted
}

func formatReasonRows(reasons map[string]int) []string {
	rows := metrics.SortReasons(reasons)
	if len(rows) == 0 {
		return []string{"[No failures](fg:green)"}
	}
	maxRows := len(rows)
	if maxRows > 10 {
		maxRows = 10
	}
	formatted := make([]string, 0, maxRows)
	for i := 0; i < maxRows; i++ {
		row := rows[i]
		formatted = append(formatted, fmt.Sprintf("[%s](fg:red) %d", row.Reason, row.Count))
	}
	return formatted
}

// gaugeState maps the current failure percentage onto the allowed
// budget: 100% of the gauge means the threshold is fully consumed.
func gaugeState(failurePct, threshold float64) (int, string) {
	label := fmt.Sprintf("%.2f%% of %.2f%% allowed", failurePct, threshold)
	if threshold <= 0 {
		if failurePct > 0 {
			return 100, label
		}
		return 0, label
	}
	percent := int((failurePct / threshold) * 100)
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return percent, label
}

// formatRunParams formats the run configuration parameters for display.
func (d *Dashboard) formatRunParams() string {
	var parts []string

	if d.runConfig.Users > 0 {
		parts = append(parts, fmt.Sprintf("Users: %d", d.runConfig.Users))
	}

	if d.runConfig.Wait > 0 {
		parts = append(parts, fmt.Sprintf("Wait: %s", d.runConfig.Wait))
	}

	if d.runConfig.Rate > 0 {
		parts = append(parts, fmt.Sprintf("Rate: %d/s", d.runConfig.Rate))
	} else {
		parts = append(parts, "Rate: unpaced")
	}

	if d.runConfig.Duration > 0 {
		parts = append(parts, fmt.Sprintf("Duration: %s", d.runConfig.Duration))
	}

	if d.runConfig.Iterations > 0 {
		parts = append(parts, fmt.Sprintf("Iterations: %d", d.runConfig.Iterations))
	}

	if d.runConfig.Timeout > 0 {
		parts = append(parts, fmt.Sprintf("Timeout: %s", d.runConfig.Timeout))
	}

	if d.runConfig.ConfigFile != "" {
		parts = append(parts, fmt.Sprintf("Config: %s", d.runConfig.ConfigFile))
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.Join(parts, " | ")
}
