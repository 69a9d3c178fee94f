package metrics

import "sort"

// ScenarioRow pairs a scenario name with its aggregates for ordered display.
type ScenarioRow struct {
	Name string
	ScenarioStats
}

// SortScenarios flattens the per-scenario map into rows ordered by name.
// Scenario names carry their sequence-number prefix, so lexicographic
// order matches execution order.
func SortScenarios(scenarios map[string]ScenarioStats) []ScenarioRow {
	if len(scenarios) == 0 {
		return nil
	}
	rows := make([]ScenarioRow, 0, len(scenarios))
	for name, s := range scenarios {
		rows = append(rows, ScenarioRow{Name: name, ScenarioStats: s})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// ReasonRow pairs a failure reason with its count.
type ReasonRow struct {
	Reason string
	Count  int
}

// SortReasons flattens the failure-reason map into rows sorted by
// descending count, then by reason for stability.
func SortReasons(reasons map[string]int) []ReasonRow {
	if len(reasons) == 0 {
		return nil
	}
	rows := make([]ReasonRow, 0, len(reasons))
	for reason, count := range reasons {
		rows = append(rows, ReasonRow{Reason: reason, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Reason < rows[j].Reason
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}
