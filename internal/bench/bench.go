// Package bench drives the benchmark cross product: every scenario against
// every candidate model, generation then judging, with failures contained
// to the single (model, scenario) cell they occurred in.
package bench

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/markm8/synthbench/internal/backend"
	"github.com/markm8/synthbench/internal/corpus"
	"github.com/markm8/synthbench/internal/judge"
	"github.com/markm8/synthbench/internal/prompt"
)

// Generator produces a synthesis for one prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string, temperature float64) (*backend.GenerationResult, error)
}

// Scorer judges a synthesis against rubric criteria.
type Scorer interface {
	Score(ctx context.Context, criteria []judge.Criterion, input, output string) ([]judge.CriterionScore, error)
}

// Cell is one (model, scenario) unit of work. Err non-empty means the cell
// is a Failure; a Success cell may still carry JudgeFailures for criteria
// whose scoring errored, which are reported missing rather than zero.
type Cell struct {
	Model         string                    `json:"model"`
	ScenarioID    string                    `json:"scenario"`
	Generation    *backend.GenerationResult `json:"generation,omitempty"`
	Scores        []judge.CriterionScore    `json:"scores,omitempty"`
	JudgeFailures []string                  `json:"judge_failures,omitempty"`
	Err           string                    `json:"error,omitempty"`
}

// Failed reports whether the cell is a Failure outcome.
func (c *Cell) Failed() bool { return c.Err != "" }

// Orchestrator runs the benchmark. Parallel > 1 executes that many cells
// concurrently; per-cell latency is still measured inside each cell's own
// call, and a panic in one cell never cancels its siblings.
type Orchestrator struct {
	Gen          Generator
	Judge        Scorer
	Temperature  float64
	Instructions string
	Parallel     int
}

// Run executes every (model, scenario) cell and returns, per model, one
// cell per scenario in corpus order. The prompt is assembled once per
// scenario and shared across models so comparisons are apples-to-apples.
// Every pair appears in the result exactly once, Failure cells included.
func (o *Orchestrator) Run(ctx context.Context, scenarios []corpus.Scenario, models []string, criteria []judge.Criterion) map[string][]Cell {
	cells := make(map[string][]Cell, len(models))
	for _, m := range models {
		cells[m] = make([]Cell, len(scenarios))
	}

	var jobs []func()
	for si := range scenarios {
		sc := &scenarios[si]
		p, perr := prompt.Assemble(sc, o.Instructions)
		for _, m := range models {
			si, m := si, m
			jobs = append(jobs, func() {
				if perr != nil {
					cells[m][si] = Cell{Model: m, ScenarioID: sc.ID, Err: fmt.Sprintf("assembling prompt: %v", perr)}
					return
				}
				log := clog.FromContext(ctx)
				log.Infof("running %s x %s", m, sc.ID)
				cell := o.runCell(ctx, m, sc.ID, p, criteria)
				if cell.Failed() {
					log.Warnf("%s x %s failed: %s", m, sc.ID, cell.Err)
				}
				cells[m][si] = cell
			})
		}
	}

	if o.Parallel > 1 {
		runPool(o.Parallel, jobs)
	} else {
		for _, job := range jobs {
			job()
		}
	}
	return cells
}

// runCell executes one cell. Any error, and any panic, is converted into a
// Failure outcome here and nowhere else; nothing escapes the cell boundary.
func (o *Orchestrator) runCell(ctx context.Context, model, scenarioID string, p *prompt.Prompt, criteria []judge.Criterion) (cell Cell) {
	cell = Cell{Model: model, ScenarioID: scenarioID}
	defer func() {
		if r := recover(); r != nil {
			cell = Cell{Model: model, ScenarioID: scenarioID, Err: fmt.Sprintf("panic: %v", r)}
		}
	}()

	gen, err := o.Gen.Generate(ctx, model, p.Text, o.Temperature)
	if err != nil {
		cell.Err = fmt.Sprintf("generation: %v", err)
		return cell
	}
	cell.Generation = gen

	scores, err := o.Judge.Score(ctx, criteria, p.GraderDigest, gen.Content)
	cell.Scores = scores
	if err != nil {
		cell.JudgeFailures = FailureMessages(err)
		if len(scores) == 0 {
			cell.Err = fmt.Sprintf("judging: %v", err)
		}
	}
	return cell
}

// FailureMessages flattens an errors.Join result into one message per
// failed criterion.
func FailureMessages(err error) []string {
	if err == nil {
		return nil
	}
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		errs := multi.Unwrap()
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}
