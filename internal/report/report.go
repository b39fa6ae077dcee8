// Package report renders a persisted benchmark run as a human-readable
// summary plus a per-cell breakdown.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/markm8/synthbench/internal/bench"
	"github.com/markm8/synthbench/internal/pricing"
	"github.com/markm8/synthbench/internal/result"
	"github.com/markm8/synthbench/internal/summary"
)

// Generate reads the cells of a run and writes a report in the requested
// format: "table" (default), "markdown", or "json". A pricing path, when
// given, fills in estimated costs for cells whose backend never reported
// one; backend-reported costs are left untouched.
func Generate(runDir, format string, w io.Writer, pricingPath ...string) error {
	cells, err := result.CollectCells(runDir)
	if err != nil {
		return err
	}

	if len(pricingPath) > 0 && pricingPath[0] != "" {
		if err := estimateCosts(cells, pricingPath[0]); err != nil {
			return err
		}
	}

	summaries := summary.SummarizeAll(cells)

	switch format {
	case "markdown":
		return writeMarkdown(summaries, cells, w)
	case "json":
		return writeJSON(summaries, cells, w)
	case "", "table":
		return writeTable(summaries, cells, w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// estimateCosts fills CostUSD on successful cells that have token counts
// but no reported cost.
func estimateCosts(cells map[string][]bench.Cell, pricingPath string) error {
	table, err := pricing.Load(pricingPath)
	if err != nil {
		return err
	}
	for model, modelCells := range cells {
		for i := range modelCells {
			g := modelCells[i].Generation
			if g == nil || g.CostUSD != nil || g.PromptTokens == nil || g.CompletionTokens == nil {
				continue
			}
			g.CostUSD = table.Estimate(model, *g.PromptTokens, *g.CompletionTokens)
		}
	}
	return nil
}

// criterionColumns returns every criterion name seen across all cells,
// sorted, so the report has one column per criterion regardless of which
// cells scored it.
func criterionColumns(cells map[string][]bench.Cell) []string {
	seen := make(map[string]bool)
	for _, modelCells := range cells {
		for i := range modelCells {
			for _, s := range modelCells[i].Scores {
				seen[s.Criterion] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func summaryRow(s summary.ModelSummary, criteria []string) []string {
	row := []string{
		s.Model,
		fmt.Sprintf("%d/%d", s.Successes, s.Cells),
	}
	if s.NoSuccessfulRuns {
		row = append(row, "-")
	} else {
		row = append(row, fmt.Sprintf("%.1fs", s.MeanElapsedSeconds))
	}
	if s.CostKnown {
		row = append(row, fmt.Sprintf("$%.4f", s.TotalCostUSD))
	} else {
		row = append(row, "unknown")
	}
	for _, name := range criteria {
		if mean, ok := s.MeanScores[name]; ok {
			row = append(row, fmt.Sprintf("%.2f (n=%d)", mean, s.ScoredCells[name]))
		} else {
			row = append(row, "-")
		}
	}
	return row
}

func writeTable(summaries []summary.ModelSummary, cells map[string][]bench.Cell, w io.Writer) error {
	criteria := criterionColumns(cells)
	headers := append([]string{"Model", "OK", "Mean Time", "Total Cost"}, criteria...)

	table := newSummaryTable(w, headers)
	for _, s := range summaries {
		_ = table.Append(summaryRow(s, criteria))
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering summary table: %w", err)
	}

	fmt.Fprintln(w)
	writeCellDetail(cells, w)
	return nil
}

func writeMarkdown(summaries []summary.ModelSummary, cells map[string][]bench.Cell, w io.Writer) error {
	criteria := criterionColumns(cells)
	headers := append([]string{"Model", "OK", "Mean Time", "Total Cost"}, criteria...)

	fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | "))
	fmt.Fprintf(w, "|%s\n", strings.Repeat("---|", len(headers)))
	for _, s := range summaries {
		fmt.Fprintf(w, "| %s |\n", strings.Join(summaryRow(s, criteria), " | "))
	}

	fmt.Fprintln(w)
	writeCellDetail(cells, w)
	return nil
}

// writeCellDetail enumerates every cell, failures included, below the
// summary so a failed cell is never silently hidden by the aggregates.
func writeCellDetail(cells map[string][]bench.Cell, w io.Writer) {
	models := make([]string, 0, len(cells))
	for m := range cells {
		models = append(models, m)
	}
	sort.Strings(models)

	for _, m := range models {
		for i := range cells[m] {
			c := &cells[m][i]
			if c.Failed() {
				fmt.Fprintf(w, "FAILED  %s x %s: %s\n", c.Model, c.ScenarioID, c.Err)
				continue
			}
			fmt.Fprintf(w, "ok      %s x %s (%.1fs)", c.Model, c.ScenarioID, c.Generation.ElapsedSeconds)
			for _, fail := range c.JudgeFailures {
				fmt.Fprintf(w, " [%s]", fail)
			}
			fmt.Fprintln(w)
		}
	}
}

func writeJSON(summaries []summary.ModelSummary, cells map[string][]bench.Cell, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Summaries []summary.ModelSummary  `json:"summaries"`
		Cells     map[string][]bench.Cell `json:"cells"`
	}{Summaries: summaries, Cells: cells})
}
