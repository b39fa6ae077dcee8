package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markm8/synthbench/internal/backend"
	"github.com/markm8/synthbench/internal/bench"
	"github.com/markm8/synthbench/internal/judge"
	"github.com/markm8/synthbench/internal/report"
	"github.com/markm8/synthbench/internal/result"
	"github.com/markm8/synthbench/internal/summary"
)

func writeRun(t *testing.T, cells []bench.Cell) string {
	t.Helper()
	runDir := t.TempDir()
	for i := range cells {
		require.NoError(t, result.WriteCell(runDir, &cells[i]))
	}
	return runDir
}

func testCells() []bench.Cell {
	cost := 0.003
	return []bench.Cell{
		{
			Model:      "openai/gpt-4o-mini",
			ScenarioID: "industrial-revolution",
			Generation: &backend.GenerationResult{Content: "out", ElapsedSeconds: 2.0, CostUSD: &cost},
			Scores: []judge.CriterionScore{
				{Criterion: "Selection", Score: 8, Passed: true},
				{Criterion: "Clarity", Score: 7, Passed: true},
			},
		},
		{
			Model:      "openai/gpt-4o-mini",
			ScenarioID: "photosynthesis-lab",
			Err:        "generation: backend openai/gpt-4o-mini: timeout",
		},
		{
			Model:      "anthropic/claude-haiku-4.5",
			ScenarioID: "industrial-revolution",
			Generation: &backend.GenerationResult{Content: "out", ElapsedSeconds: 4.0},
			Scores: []judge.CriterionScore{
				{Criterion: "Selection", Score: 6, Passed: true},
			},
			JudgeFailures: []string{"judging Clarity: parsing judge response: unexpected end of JSON input"},
		},
	}
}

func TestGenerateTable(t *testing.T) {
	runDir := writeRun(t, testCells())

	var buf bytes.Buffer
	require.NoError(t, report.Generate(runDir, "table", &buf))
	out := buf.String()

	require.Contains(t, out, "openai/gpt-4o-mini")
	require.Contains(t, out, "anthropic/claude-haiku-4.5")
	// Haiku never reported a cost, so its total must read unknown.
	require.Contains(t, out, "unknown")
	require.Contains(t, out, "$0.0030")
	// Every cell shows up below the summary, failures included.
	require.Contains(t, out, "FAILED  openai/gpt-4o-mini x photosynthesis-lab")
	require.Contains(t, out, "ok      openai/gpt-4o-mini x industrial-revolution")
	require.Contains(t, out, "judging Clarity")
}

func TestGenerateMarkdown(t *testing.T) {
	runDir := writeRun(t, testCells())

	var buf bytes.Buffer
	require.NoError(t, report.Generate(runDir, "markdown", &buf))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "| Model |"))
	require.Contains(t, out, "| Selection |")
	require.Contains(t, out, "1/2")
}

func TestGenerateJSON(t *testing.T) {
	runDir := writeRun(t, testCells())

	var buf bytes.Buffer
	require.NoError(t, report.Generate(runDir, "json", &buf))

	var payload struct {
		Summaries []summary.ModelSummary  `json:"summaries"`
		Cells     map[string][]bench.Cell `json:"cells"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Summaries, 2)
	require.Len(t, payload.Cells["openai/gpt-4o-mini"], 2)

	// Summaries come back sorted by model name.
	require.Equal(t, "anthropic/claude-haiku-4.5", payload.Summaries[0].Model)
	require.False(t, payload.Summaries[0].CostKnown)
	require.True(t, payload.Summaries[1].CostKnown)
}

func TestGenerateUnknownFormat(t *testing.T) {
	runDir := writeRun(t, testCells())

	var buf bytes.Buffer
	require.Error(t, report.Generate(runDir, "csv", &buf))
}

func TestGenerateWithPricingEstimate(t *testing.T) {
	prompt, completion := int64(1_000_000), int64(100_000)
	cells := []bench.Cell{{
		Model:      "openai/gpt-4o-mini",
		ScenarioID: "industrial-revolution",
		Generation: &backend.GenerationResult{
			Content:          "out",
			ElapsedSeconds:   2.0,
			PromptTokens:     &prompt,
			CompletionTokens: &completion,
		},
		Scores: []judge.CriterionScore{{Criterion: "Selection", Score: 8, Passed: true}},
	}}
	runDir := writeRun(t, cells)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(runDir, "table", &buf, "../../testdata/pricing.yaml"))

	// 1M prompt tokens at $0.15 plus 100k completion at $0.60.
	require.Contains(t, buf.String(), "$0.2100")
	require.NotContains(t, buf.String(), "unknown")
}
