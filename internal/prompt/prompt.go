// Package prompt renders a scenario's multi-grader feedback into the
// synthesis prompt sent to each candidate model. Rendering is deterministic
// and preserves every grader's feedback in full: the judge's selection
// criterion depends on seeing exactly what was available to the synthesizer.
package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/markm8/synthbench/internal/corpus"
)

// DefaultInstructions are the task instructions appended to every synthesis
// prompt unless the config overrides them. Output constraints are explicit
// so candidate models produce length-comparable reports.
const DefaultInstructions = `Synthesize the feedback from all graders into a single, coherent response.

1. STRENGTHS: Select the 3-4 most impactful strengths. Prefer those:
   - Mentioned by multiple graders
   - With direct quotes/evidence from the essay
   - Most relevant to the rubric criteria

2. IMPROVEMENTS: Merge overlapping suggestions into 3-4 most actionable items:
   - Combine similar points (e.g., "transitions" and "paragraph flow" are related)
   - Prioritize based on rubric weighting
   - Keep suggestions specific and actionable

3. LANGUAGE TIPS: Consolidate into 2-3 unique tips, removing duplicates.

Be concise. Preserve the best specific examples and evidence from the original feedback.
Output in markdown format with ## headers for each section.`

// Prompt is the rendered synthesis prompt for one scenario. Text is the
// full prompt sent to the candidate model; GraderDigest is the labeled
// grader blocks alone, reused as the judge's view of the original feedback.
type Prompt struct {
	Text         string
	GraderDigest string
}

// Assemble renders a scenario into a Prompt. Each grader becomes one
// delimited block carrying its model id and percentage verbatim, in the
// order the graders appear in the scenario. Nothing is deduplicated or
// truncated here; that is the model under test's job.
func Assemble(s *corpus.Scenario, instructions string) (*Prompt, error) {
	if instructions == "" {
		instructions = DefaultInstructions
	}
	digest, err := graderDigest(s.Graders)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are synthesizing feedback from %d independent essay graders.\n\n", len(s.Graders))
	fmt.Fprintf(&b, "<assignment>\n<title>%s</title>\n</assignment>\n\n", s.EssayTitle)
	fmt.Fprintf(&b, "<rubric>\n%s\n</rubric>\n\n", s.Rubric)
	fmt.Fprintf(&b, "<essay_excerpt>\n%s\n</essay_excerpt>\n\n", s.EssayContent)
	fmt.Fprintf(&b, "<grader_feedback>\n%s\n</grader_feedback>\n\n", digest)
	fmt.Fprintf(&b, "<task>\n%s\n</task>", instructions)

	return &Prompt{Text: b.String(), GraderDigest: digest}, nil
}

func graderDigest(graders []corpus.GraderRecord) (string, error) {
	blocks := make([]string, 0, len(graders))
	for i, g := range graders {
		body, err := json.MarshalIndent(normalize(g.Feedback), "", "  ")
		if err != nil {
			return "", fmt.Errorf("serializing feedback from %s: %w", g.Model, err)
		}
		pct := strconv.FormatFloat(g.Percentage, 'f', -1, 64)
		blocks = append(blocks, fmt.Sprintf("<grader_%d model=%q percentage=%q>\n%s\n</grader_%d>",
			i+1, g.Model, pct, body, i+1))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// normalize replaces nil item lists with empty ones so a grader with zero
// strengths or improvements renders as an explicit empty list rather than
// null.
func normalize(f corpus.FeedbackBody) corpus.FeedbackBody {
	if f.Strengths == nil {
		f.Strengths = []corpus.FeedbackItem{}
	}
	if f.Improvements == nil {
		f.Improvements = []corpus.FeedbackItem{}
	}
	return f
}
