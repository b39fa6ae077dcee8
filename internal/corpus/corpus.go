// Package corpus loads the fixed set of grading scenarios the benchmark
// runs against. Scenarios are read once at startup and never mutated.
package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one test fixture: a student essay, the rubric it was graded
// against, and the independent grader feedback the synthesis model must
// collapse into a single report.
type Scenario struct {
	ID           string         `yaml:"id" json:"id"`
	EssayTitle   string         `yaml:"essay_title" json:"essay_title"`
	EssayContent string         `yaml:"essay_content" json:"essay_content"`
	Rubric       string         `yaml:"rubric" json:"rubric"`
	Graders      []GraderRecord `yaml:"grader_feedback" json:"grader_feedback"`
}

// GraderRecord is one grader's output for a scenario: the grading model,
// the percentage it awarded, and its structured feedback.
type GraderRecord struct {
	Model      string       `yaml:"model" json:"model"`
	Percentage float64      `yaml:"percentage" json:"percentage"`
	Feedback   FeedbackBody `yaml:"feedback" json:"feedback"`
}

// FeedbackBody holds a grader's feedback exactly as produced. Titles may
// repeat across graders; deduplication is the synthesis model's job, not
// the harness's.
type FeedbackBody struct {
	Strengths    []FeedbackItem `yaml:"strengths" json:"strengths"`
	Improvements []FeedbackItem `yaml:"improvements" json:"improvements"`
}

// FeedbackItem is a single strength or improvement point. Evidence is set
// on strengths, Suggestion on improvements; both are optional.
type FeedbackItem struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Evidence    string `yaml:"evidence,omitempty" json:"evidence,omitempty"`
	Suggestion  string `yaml:"suggestion,omitempty" json:"suggestion,omitempty"`
}

type file struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Load reads scenarios from a YAML file. Any malformed record fails the
// whole load: a benchmark must not start against a partial corpus.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing corpus %s: %w", path, err)
	}
	if err := validate(f.Scenarios); err != nil {
		return nil, fmt.Errorf("invalid corpus %s: %w", path, err)
	}
	return f.Scenarios, nil
}

func validate(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios defined")
	}
	seen := make(map[string]bool, len(scenarios))
	for i, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("scenario %q: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if s.EssayTitle == "" {
			return fmt.Errorf("scenario %q: essay_title is required", s.ID)
		}
		if s.EssayContent == "" {
			return fmt.Errorf("scenario %q: essay_content is required", s.ID)
		}
		if s.Rubric == "" {
			return fmt.Errorf("scenario %q: rubric is required", s.ID)
		}
		if len(s.Graders) == 0 {
			return fmt.Errorf("scenario %q: at least one grader_feedback entry is required", s.ID)
		}
		for j, g := range s.Graders {
			if g.Model == "" {
				return fmt.Errorf("scenario %q: grader %d: model is required", s.ID, j)
			}
			if g.Percentage < 0 || g.Percentage > 100 {
				return fmt.Errorf("scenario %q: grader %q: percentage %.1f out of range [0, 100]", s.ID, g.Model, g.Percentage)
			}
			for _, item := range append(append([]FeedbackItem{}, g.Feedback.Strengths...), g.Feedback.Improvements...) {
				if item.Title == "" {
					return fmt.Errorf("scenario %q: grader %q: feedback item without a title", s.ID, g.Model)
				}
			}
		}
	}
	return nil
}
