package pricing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/markm8/synthbench/internal/pricing"
)

func TestLoadAndEstimate(t *testing.T) {
	dir := t.TempDir()
	content := `anthropic:
  claude-opus-4.5:
    input: 15.0
    output: 75.0
openai:
  gpt-4o:
    input: 2.5
    output: 10.0
`
	path := filepath.Join(dir, "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := pricing.Load(path)
	require.NoError(t, err)

	cost := table.Estimate("anthropic/claude-opus-4.5", 1_000_000, 100_000)
	require.NotNil(t, cost)
	require.InDelta(t, 15.0+7.5, *cost, 1e-9)
}

func TestEstimateUnknownModelIsNil(t *testing.T) {
	table := &pricing.Table{Providers: map[string]map[string]pricing.ModelPricing{
		"openai": {"gpt-4o": {Input: 2.5, Output: 10.0}},
	}}

	require.Nil(t, table.Estimate("openai/gpt-5", 1000, 500))
	require.Nil(t, table.Estimate("mistral/mistral-large", 1000, 500))
	require.Nil(t, table.Estimate("not-a-slug", 1000, 500))
}

func TestEstimateZeroTokensIsKnownZero(t *testing.T) {
	table := &pricing.Table{Providers: map[string]map[string]pricing.ModelPricing{
		"openai": {"gpt-4o": {Input: 2.5, Output: 10.0}},
	}}

	cost := table.Estimate("openai/gpt-4o", 0, 0)
	require.NotNil(t, cost)
	require.Zero(t, *cost)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := pricing.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
