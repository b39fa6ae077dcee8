// Package summary aggregates per-cell benchmark results into per-model
// statistics. Only Success cells contribute to latency, cost, and score
// figures; Failure cells count toward the cell total and nothing else.
package summary

import (
	"sort"

	"github.com/markm8/synthbench/internal/bench"
)

// ModelSummary is the aggregate view of one model across all scenarios.
// CostKnown is false when any successful cell lacked a reported cost, in
// which case TotalCostUSD is a lower bound, not a total.
type ModelSummary struct {
	Model              string             `json:"model"`
	Cells              int                `json:"cells"`
	Successes          int                `json:"successes"`
	NoSuccessfulRuns   bool               `json:"no_successful_runs,omitempty"`
	MeanElapsedSeconds float64            `json:"mean_elapsed_s"`
	TotalCostUSD       float64            `json:"total_cost_usd"`
	CostKnown          bool               `json:"cost_known"`
	MeanScores         map[string]float64 `json:"mean_scores,omitempty"`
	ScoredCells        map[string]int     `json:"scored_cells,omitempty"`
}

// Summarize reduces one model's cells. Per-criterion means are taken over
// the cells that actually scored that criterion, so a judge failure on one
// cell lowers the sample count rather than dragging the mean to zero.
func Summarize(model string, cells []bench.Cell) ModelSummary {
	s := ModelSummary{
		Model:     model,
		Cells:     len(cells),
		CostKnown: true,
	}

	var elapsed float64
	scoreSums := make(map[string]float64)
	scoreCounts := make(map[string]int)

	for i := range cells {
		c := &cells[i]
		if c.Failed() {
			continue
		}
		s.Successes++
		if c.Generation != nil {
			elapsed += c.Generation.ElapsedSeconds
			if c.Generation.CostUSD != nil {
				s.TotalCostUSD += *c.Generation.CostUSD
			} else {
				s.CostKnown = false
			}
		} else {
			s.CostKnown = false
		}
		for _, sc := range c.Scores {
			scoreSums[sc.Criterion] += sc.Score
			scoreCounts[sc.Criterion]++
		}
	}

	if s.Successes == 0 {
		s.NoSuccessfulRuns = true
		s.CostKnown = false
		return s
	}

	s.MeanElapsedSeconds = elapsed / float64(s.Successes)
	s.MeanScores = make(map[string]float64, len(scoreSums))
	s.ScoredCells = scoreCounts
	for name, sum := range scoreSums {
		s.MeanScores[name] = sum / float64(scoreCounts[name])
	}
	return s
}

// SummarizeAll summarizes every model, sorted by model name for stable
// output.
func SummarizeAll(cells map[string][]bench.Cell) []ModelSummary {
	models := make([]string, 0, len(cells))
	for m := range cells {
		models = append(models, m)
	}
	sort.Strings(models)

	out := make([]ModelSummary, 0, len(models))
	for _, m := range models {
		out = append(out, Summarize(m, cells[m]))
	}
	return out
}
