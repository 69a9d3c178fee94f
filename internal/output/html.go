package output

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Ubaid1192/authload/internal/metrics"
	"github.com/Ubaid1192/authload/internal/threshold"
)

// htmlReportData carries everything the HTML template renders.
type htmlReportData struct {
	GeneratedAt string
	Target      string
	Users       int
	Stats       metrics.Stats
	Checks      []threshold.Check
	PassedCount int
	Passed      bool
	Scenarios   []metrics.ScenarioRow
	Reasons     []metrics.ReasonRow
}

// WriteHTMLReport renders a standalone HTML page summarizing the run.
func WriteHTMLReport(w io.Writer, stats metrics.Stats, checks []threshold.Check, target string, users int) error {
	passed := 0
	for _, check := range checks {
		if check.Pass {
			passed++
		}
	}

	data := htmlReportData{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Target:      target,
		Users:       users,
		Stats:       stats,
		Checks:      checks,
		PassedCount: passed,
		Passed:      threshold.Passed(checks),
		Scenarios:   metrics.SortScenarios(stats.Scenarios),
		Reasons:     metrics.SortReasons(stats.FailureReasons),
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"formatDuration": func(d time.Duration) string {
			return d.String()
		},
		"formatFloat": func(f float64) string {
			return fmt.Sprintf("%.2f", f)
		},
		"formatPercent": func(part, total int64) string {
			if total == 0 {
				return "0.0"
			}
			return fmt.Sprintf("%.1f", (float64(part)/float64(total))*100)
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Authload Load Test Report</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
            padding: 20px;
        }
        .container {
            max-width: 1400px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0,0,0,0.1);
            overflow: hidden;
        }
        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px 40px;
        }
        header h1 {
            font-size: 2rem;
            margin-bottom: 10px;
        }
        header .meta {
            opacity: 0.9;
            font-size: 0.9rem;
        }
        .content {
            padding: 40px;
        }
        .grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin-bottom: 40px;
        }
        .card {
            background: #f8f9fa;
            border-radius: 8px;
            padding: 20px;
            border-left: 4px solid #667eea;
        }
        .card h3 {
            font-size: 0.9rem;
            color: #6c757d;
            text-transform: uppercase;
            letter-spacing: 0.5px;
            margin-bottom: 10px;
        }
        .card .value {
            font-size: 2rem;
            font-weight: bold;
            color: #2c3e50;
        }
        .card .subvalue {
            font-size: 0.85rem;
            color: #6c757d;
            margin-top: 5px;
        }
        .card.success {
            border-left-color: #10b981;
        }
        .card.error {
            border-left-color: #ef4444;
        }
        .section {
            margin-bottom: 40px;
        }
        .section h2 {
            font-size: 1.5rem;
            margin-bottom: 20px;
            padding-bottom: 10px;
            border-bottom: 2px solid #e5e7eb;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            background: white;
        }
        th, td {
            text-align: left;
            padding: 12px;
            border-bottom: 1px solid #e5e7eb;
        }
        th {
            background: #f8f9fa;
            font-weight: 600;
            color: #4b5563;
            font-size: 0.9rem;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        tr:hover {
            background: #f8f9fa;
        }
        .badge {
            display: inline-block;
            padding: 4px 12px;
            border-radius: 12px;
            font-size: 0.85rem;
            font-weight: 600;
        }
        .badge-success {
            background: #d1fae5;
            color: #065f46;
        }
        .badge-error {
            background: #fee2e2;
            color: #991b1b;
        }
        .latency-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(150px, 1fr));
            gap: 15px;
            margin-top: 20px;
        }
        .latency-item {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            text-align: center;
        }
        .latency-item .label {
            font-size: 0.85rem;
            color: #6c757d;
            margin-bottom: 5px;
        }
        .latency-item .value {
            font-size: 1.3rem;
            font-weight: bold;
            color: #2c3e50;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Authload Load Test Report</h1>
            {{if .Target}}
            <div class="meta" style="margin-top: 5px;">Target: <a href="{{.Target}}" style="color: white; text-decoration: underline;">{{.Target}}</a> | Users: {{.Users}}</div>
            {{end}}
            <div class="meta">Generated: {{.GeneratedAt}} | Duration: {{formatDuration .Stats.Duration}}</div>
        </header>

        <div class="content">
            <!-- Summary Cards -->
            <div class="grid">
                <div class="card">
                    <h3>Total Requests</h3>
                    <div class="value">{{.Stats.Total}}</div>
                </div>
                <div class="card success">
                    <h3>Successful</h3>
                    <div class="value">{{.Stats.Successes}}</div>
                    <div class="subvalue">{{formatPercent .Stats.Successes .Stats.Total}}%</div>
                </div>
                <div class="card error">
                    <h3>Failed</h3>
                    <div class="value">{{.Stats.Failures}}</div>
                    <div class="subvalue">{{formatPercent .Stats.Failures .Stats.Total}}%</div>
                </div>
                <div class="card">
                    <h3>Requests/sec</h3>
                    <div class="value">{{formatFloat .Stats.RequestsPerSec}}</div>
                </div>
            </div>

            <!-- Verdict -->
            {{if .Checks}}
            <div class="section">
                <h2>Performance Requirements ({{.PassedCount}}/{{len .Checks}} Passed)</h2>
                <table>
                    <thead>
                        <tr>
                            <th>Requirement</th>
                            <th>Result</th>
                            <th>Status</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Checks}}
                        <tr>
                            <td><strong>{{.Name}}</strong></td>
                            <td>{{.Message}}</td>
                            <td>
                                {{if .Pass}}
                                <span class="badge badge-success">PASS</span>
                                {{else}}
                                <span class="badge badge-error">FAIL</span>
                                {{end}}
                            </td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}

            <!-- Latency Statistics -->
            <div class="section">
                <h2>Latency Statistics</h2>
                <div class="latency-grid">
                    <div class="latency-item">
                        <div class="label">Min</div>
                        <div class="value">{{formatDuration .Stats.MinLatency}}</div>
                    </div>
                    <div class="latency-item">
                        <div class="label">Max</div>
                        <div class="value">{{formatDuration .Stats.MaxLatency}}</div>
                    </div>
                    <div class="latency-item">
                        <div class="label">Mean</div>
                        <div class="value">{{formatDuration .Stats.MeanLatency}}</div>
                    </div>
                    <div class="latency-item">
                        <div class="label">P50</div>
                        <div class="value">{{formatDuration .Stats.P50Latency}}</div>
                    </div>
                    <div class="latency-item">
                        <div class="label">P90</div>
                        <div class="value">{{formatDuration .Stats.P90Latency}}</div>
                    </div>
                    <div class="latency-item">
                        <div class="label">P99</div>
                        <div class="value">{{formatDuration .Stats.P99Latency}}</div>
                    </div>
                </div>
            </div>

            <!-- Scenario Breakdown -->
            {{if .Scenarios}}
            <div class="section">
                <h2>Scenario Breakdown</h2>
                <table>
                    <thead>
                        <tr>
                            <th>Scenario</th>
                            <th>Total</th>
                            <th>Failed</th>
                            <th>Mean Latency</th>
                            <th>Max Latency</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Scenarios}}
                        <tr>
                            <td><strong>{{.Name}}</strong></td>
                            <td>{{.Total}} ({{formatPercent .Total $.Stats.Total}}%)</td>
                            <td>{{.Failures}}</td>
                            <td>{{formatFloat .MeanLatencyMs}} ms</td>
                            <td>{{formatFloat .MaxLatencyMs}} ms</td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}

            <!-- Failure Reasons -->
            {{if .Reasons}}
            <div class="section">
                <h2>Failure Reasons</h2>
                <table>
                    <thead>
                        <tr>
                            <th>Reason</th>
                            <th>Count</th>
                        </tr>
                    </thead>
                    <tbody>
                        {{range .Reasons}}
                        <tr>
                            <td>{{.Reason}}</td>
                            <td>{{.Count}}</td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{end}}
        </div>
    </div>
</body>
</html>
`
