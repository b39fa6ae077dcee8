package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markm8/synthbench/internal/corpus"
	"github.com/markm8/synthbench/internal/prompt"
)

func scenario() *corpus.Scenario {
	return &corpus.Scenario{
		ID:           "industrial-revolution",
		EssayTitle:   "The Industrial Revolution and Urban Life",
		EssayContent: "Factories drew workers from the countryside.",
		Rubric:       "Assess evidence and structure.",
		Graders: []corpus.GraderRecord{
			{
				Model:      "anthropic/claude-sonnet-4.5",
				Percentage: 90,
				Feedback: corpus.FeedbackBody{
					Strengths: []corpus.FeedbackItem{
						{Title: "Precise use of evidence", Description: "Claims are anchored in specifics.", Evidence: "his 1842 report"},
					},
					Improvements: []corpus.FeedbackItem{
						{Title: "Weak conclusion", Description: "Restates the topic.", Suggestion: "Weigh reform against growth."},
					},
				},
			},
			{
				Model:      "openai/gpt-4o",
				Percentage: 72.5,
				Feedback: corpus.FeedbackBody{
					Improvements: []corpus.FeedbackItem{
						{Title: "Conclusion needs development", Description: "The ending is abrupt."},
					},
				},
			},
		},
	}
}

func TestAssembleContainsEverySection(t *testing.T) {
	p, err := prompt.Assemble(scenario(), "")
	require.NoError(t, err)

	require.Contains(t, p.Text, "synthesizing feedback from 2 independent essay graders")
	require.Contains(t, p.Text, "<title>The Industrial Revolution and Urban Life</title>")
	require.Contains(t, p.Text, "<rubric>\nAssess evidence and structure.\n</rubric>")
	require.Contains(t, p.Text, "<essay_excerpt>\nFactories drew workers from the countryside.\n</essay_excerpt>")
	require.Contains(t, p.Text, prompt.DefaultInstructions)
}

func TestAssembleGraderBlocksVerbatimAndOrdered(t *testing.T) {
	p, err := prompt.Assemble(scenario(), "")
	require.NoError(t, err)

	// Each grader appears exactly once, model id and percentage untouched.
	require.Equal(t, 1, strings.Count(p.GraderDigest, `<grader_1 model="anthropic/claude-sonnet-4.5" percentage="90">`))
	require.Equal(t, 1, strings.Count(p.GraderDigest, `<grader_2 model="openai/gpt-4o" percentage="72.5">`))
	require.Less(t,
		strings.Index(p.GraderDigest, "grader_1"),
		strings.Index(p.GraderDigest, "grader_2"))

	// Feedback content survives the serialization, duplicates included.
	require.Contains(t, p.GraderDigest, "Weak conclusion")
	require.Contains(t, p.GraderDigest, "Conclusion needs development")
	require.Contains(t, p.GraderDigest, "his 1842 report")
}

func TestAssembleEmptyStrengthsRenderAsEmptyList(t *testing.T) {
	p, err := prompt.Assemble(scenario(), "")
	require.NoError(t, err)

	// The second grader has no strengths; the block must still show the
	// field rather than null.
	g2 := p.GraderDigest[strings.Index(p.GraderDigest, "<grader_2"):]
	require.Contains(t, g2, `"strengths": []`)
	require.NotContains(t, g2, "null")
}

func TestAssembleCustomInstructions(t *testing.T) {
	p, err := prompt.Assemble(scenario(), "Reply with a haiku.")
	require.NoError(t, err)

	require.Contains(t, p.Text, "<task>\nReply with a haiku.\n</task>")
	require.NotContains(t, p.Text, prompt.DefaultInstructions)
}

func TestAssembleIsDeterministic(t *testing.T) {
	a, err := prompt.Assemble(scenario(), "")
	require.NoError(t, err)
	b, err := prompt.Assemble(scenario(), "")
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestAssembleDigestMatchesPromptSection(t *testing.T) {
	p, err := prompt.Assemble(scenario(), "")
	require.NoError(t, err)
	require.Contains(t, p.Text, "<grader_feedback>\n"+p.GraderDigest+"\n</grader_feedback>")
}
