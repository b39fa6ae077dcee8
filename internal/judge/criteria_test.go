package judge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markm8/synthbench/internal/judge"
)

func TestDefaultCriteria(t *testing.T) {
	criteria := judge.DefaultCriteria()

	var names []string
	for _, c := range criteria {
		names = append(names, c.Name)
		require.NotEmpty(t, c.Steps, "%s has no steps", c.Name)
		require.Greater(t, c.Scale.Max, c.Scale.Min, "%s scale", c.Name)
		require.Equal(t, 0.6, c.Threshold, "%s threshold", c.Name)
	}
	require.Equal(t, []string{
		"Selection",
		"Clarity",
		"Coverage",
		"Deduplication",
		"Evidence Preservation",
		"Actionability",
	}, names)

	// Selection and Clarity run on 0-10, the rest on 1-5.
	for _, c := range criteria {
		switch c.Name {
		case "Selection", "Clarity":
			require.Equal(t, judge.Scale{Min: 0, Max: 10}, c.Scale)
		default:
			require.Equal(t, judge.Scale{Min: 1, Max: 5}, c.Scale)
		}
	}
}
