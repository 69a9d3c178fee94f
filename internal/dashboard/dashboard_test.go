package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/gizak/termui/v3/widgets"

	"github.com/Ubaid1192/authload/internal/metrics"
)

func TestGaugeState(t *testing.T) {
	tests := []struct {
		name       string
		failurePct float64
		threshold  float64
		percent    int
	}{
		{"no failures", 0, 1.0, 0},
		{"half budget", 0.5, 1.0, 50},
		{"at threshold", 1.0, 1.0, 100},
		{"over threshold", 3.5, 1.0, 100},
		{"zero threshold clean", 0, 0, 0},
		{"zero threshold failing", 0.1, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, label := gaugeState(tt.failurePct, tt.threshold)
			if percent != tt.percent {
				t.Errorf("gaugeState(%v, %v) percent = %d, expected %d", tt.failurePct, tt.threshold, percent, tt.percent)
			}
			if !strings.Contains(label, "allowed") {
				t.Errorf("label missing budget wording: %q", label)
			}
		})
	}
}

func TestUpdateScenarioList(t *testing.T) {
	d := &Dashboard{
		scenarioList: widgets.NewList(),
	}

	stats := metrics.Stats{
		Total: 100,
		Scenarios: map[string]metrics.ScenarioStats{
			"2. Login with Email": {
				Total:         30,
				Failures:      1,
				MeanLatencyMs: 35.5,
				MaxLatencyMs:  90.0,
			},
			"1. Register New User": {
				Total:         70,
				Failures:      2,
				MeanLatencyMs: 55.0,
				MaxLatencyMs:  120.0,
			},
		},
	}

	d.updateScenarioList(stats)

	if len(d.scenarioList.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(d.scenarioList.Rows))
	}

	// Rows keep scenario sequence order.
	if !strings.Contains(d.scenarioList.Rows[0], "1. Register New User") {
		t.Error("Expected registration scenario first")
	}
	if !strings.Contains(d.scenarioList.Rows[1], "2. Login with Email") {
		t.Error("Expected email login scenario second")
	}

	row1 := d.scenarioList.Rows[0]
	if !strings.Contains(row1, "70.0%") {
		t.Errorf("Expected 70.0%% share in row 1, got %s", row1)
	}
	if !strings.Contains(row1, "fail 2") {
		t.Errorf("Expected failure count in row 1, got %s", row1)
	}
}

func TestUpdateScenarioListEmpty(t *testing.T) {
	d := &Dashboard{
		scenarioList: widgets.NewList(),
	}

	d.updateScenarioList(metrics.Stats{})

	if len(d.scenarioList.Rows) != 1 || !strings.Contains(d.scenarioList.Rows[0], "No scenario data") {
		t.Errorf("Expected placeholder row, got %v", d.scenarioList.Rows)
	}
}

func TestFormatReasonRows(t *testing.T) {
	rows := formatReasonRows(map[string]int{
		"Login failed":      3,
		"Connection failed": 5,
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Sorted by descending count.
	if !strings.Contains(rows[0], "Connection failed") {
		t.Errorf("expected most frequent reason first, got %s", rows[0])
	}
	if !strings.Contains(rows[1], "Login failed") {
		t.Errorf("expected Login failed second, got %s", rows[1])
	}
}

func TestFormatReasonRowsEmpty(t *testing.T) {
	rows := formatReasonRows(nil)
	if len(rows) != 1 || !strings.Contains(rows[0], "No failures") {
		t.Errorf("expected placeholder row, got %v", rows)
	}
}

func TestFormatRunParams(t *testing.T) {
	tests := []struct {
		name     string
		config   RunConfig
		contains []string
		excludes []string
	}{
		{
			name: "basic config",
			config: RunConfig{
				Users:    10,
				Wait:     time.Second,
				Rate:     100,
				Duration: 30 * time.Second,
			},
			contains: []string{"Users: 10", "Wait: 1s", "Rate: 100/s", "Duration: 30s"},
			excludes: []string{"Iterations:", "Config:"},
		},
		{
			name: "unpaced rate",
			config: RunConfig{
				Users: 5,
				Rate:  0,
			},
			contains: []string{"Users: 5", "Rate: unpaced"},
		},
		{
			name: "with iterations",
			config: RunConfig{
				Users:      5,
				Iterations: 3,
			},
			contains: []string{"Iterations: 3"},
		},
		{
			name: "with config file",
			config: RunConfig{
				Users:      5,
				ConfigFile: "test.yml",
			},
			contains: []string{"Config: test.yml"},
		},
		{
			name: "with timeout",
			config: RunConfig{
				Users:   5,
				Timeout: 10 * time.Second,
			},
			contains: []string{"Timeout: 10s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dashboard{runConfig: tt.config}
			result := d.formatRunParams()

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("expected result to contain %q, got %q", s, result)
				}
			}

			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("expected result NOT to contain %q, got %q", s, result)
				}
			}
		})
	}
}
