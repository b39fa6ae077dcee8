// Package judge scores a synthesized feedback report against rubric
// criteria using an LLM as the evaluation oracle. Each criterion is scored
// by its own independent call so one quality dimension cannot bleed into
// another, and a failure on one criterion never blocks the rest.
package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/markm8/synthbench/internal/backend"
)

// Scale bounds the numeric range a criterion is scored on.
type Scale struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Criterion is one independently scored quality dimension. Steps are the
// free-text evaluation instructions handed to the judge model. Threshold
// is a normalized fraction of the scale, so 0-10 and 1-5 criteria can
// share a pass bar.
type Criterion struct {
	Name      string   `yaml:"name" json:"name"`
	Steps     []string `yaml:"steps" json:"steps"`
	Scale     Scale    `yaml:"scale" json:"scale"`
	Threshold float64  `yaml:"threshold" json:"threshold"`
}

// Normalize maps a raw score onto [0, 1] within the criterion's scale.
func (c Criterion) Normalize(score float64) float64 {
	span := c.Scale.Max - c.Scale.Min
	if span <= 0 {
		return 0
	}
	return (score - c.Scale.Min) / span
}

// CriterionScore is the judge's verdict for one criterion.
type CriterionScore struct {
	Criterion string  `json:"criterion"`
	Score     float64 `json:"score"`
	Passed    bool    `json:"passed"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// Error reports a judge failure scoped to a single criterion.
type Error struct {
	Criterion string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("judging %s: %v", e.Criterion, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Generator is the slice of the backend the judge needs.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, temperature float64) (*backend.GenerationResult, error)
}

// Adapter wraps a generation backend as an evaluation oracle.
type Adapter struct {
	gen         Generator
	model       string
	temperature float64
	samples     int
}

// NewAdapter builds an Adapter. samples > 1 scores each criterion that many
// times and takes the per-criterion median, smoothing judge noise at the
// price of extra calls.
func NewAdapter(gen Generator, model string, temperature float64, samples int) *Adapter {
	if samples < 1 {
		samples = 1
	}
	return &Adapter{gen: gen, model: model, temperature: temperature, samples: samples}
}

// Score evaluates output against every criterion, in the order supplied.
// Criteria that fail are omitted from the returned scores (missing, never
// zero) and collected into the returned error, one *Error per criterion.
func (a *Adapter) Score(ctx context.Context, criteria []Criterion, input, output string) ([]CriterionScore, error) {
	var scores []CriterionScore
	var errs []error
	for _, crit := range criteria {
		score, err := a.scoreCriterion(ctx, crit, input, output)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scores = append(scores, *score)
	}
	return scores, errors.Join(errs...)
}

func (a *Adapter) scoreCriterion(ctx context.Context, crit Criterion, input, output string) (*CriterionScore, error) {
	prompt := criterionPrompt(crit, input, output)

	var samples []float64
	var reasoning string
	var lastErr error
	for i := 0; i < a.samples; i++ {
		res, err := a.gen.Generate(ctx, a.model, prompt, a.temperature)
		if err != nil {
			lastErr = err
			continue
		}
		v, why, err := parseVerdict(res.Content)
		if err != nil {
			lastErr = err
			continue
		}
		if v < crit.Scale.Min || v > crit.Scale.Max {
			lastErr = fmt.Errorf("score %.2f outside scale [%g, %g]", v, crit.Scale.Min, crit.Scale.Max)
			continue
		}
		samples = append(samples, v)
		if reasoning == "" {
			reasoning = why
		}
	}
	if len(samples) == 0 {
		return nil, &Error{Criterion: crit.Name, Err: lastErr}
	}

	score := Median(samples)
	return &CriterionScore{
		Criterion: crit.Name,
		Score:     score,
		Passed:    crit.Normalize(score) >= crit.Threshold,
		Reasoning: reasoning,
	}, nil
}

func criterionPrompt(crit Criterion, input, output string) string {
	var b strings.Builder
	b.WriteString("You are a strict judge of AI-synthesized essay feedback. ")
	b.WriteString("Evaluate the synthesized feedback against a single criterion.\n\n")
	fmt.Fprintf(&b, "Criterion: %s\n\nEvaluation steps:\n", crit.Name)
	for _, step := range crit.Steps {
		fmt.Fprintf(&b, "- %s\n", step)
	}
	fmt.Fprintf(&b, "\n<original_feedback>\n%s\n</original_feedback>\n\n", input)
	fmt.Fprintf(&b, "<synthesized_feedback>\n%s\n</synthesized_feedback>\n\n", output)
	fmt.Fprintf(&b, "Score the synthesized feedback on a scale of %g to %g following the steps above.\n", crit.Scale.Min, crit.Scale.Max)
	b.WriteString("Respond with ONLY a JSON object, e.g.:\n")
	b.WriteString(`{"score": 7.5, "reasoning": "one or two sentences"}`)
	return b.String()
}

type verdict struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

func parseVerdict(content string) (float64, string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var v verdict
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return 0, "", fmt.Errorf("parsing judge response: %w", err)
	}
	return v.Score, v.Reasoning, nil
}

// Median returns the median of scores without mutating the input.
func Median(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
