// Package pricing estimates generation cost from token counts for runs
// where the backend did not report cost itself. Estimates are a fallback;
// a backend-reported cost always wins.
package pricing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ModelPricing holds prices in USD per 1M tokens, matching how providers
// publish them.
type ModelPricing struct {
	Input  float64 `yaml:"input"`
	Output float64 `yaml:"output"`
}

// Table maps provider -> model -> pricing.
type Table struct {
	Providers map[string]map[string]ModelPricing
}

// Load reads a pricing table from a YAML file keyed by provider then model.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pricing file: %w", err)
	}
	var providers map[string]map[string]ModelPricing
	if err := yaml.Unmarshal(data, &providers); err != nil {
		return nil, fmt.Errorf("parsing pricing file: %w", err)
	}
	return &Table{Providers: providers}, nil
}

// Estimate computes a cost for a provider/model identifier (the OpenRouter
// slug form, e.g. "anthropic/claude-opus-4.5"). It returns nil when the
// model is not in the table; an unknown price must stay unknown, not
// become zero.
func (t *Table) Estimate(model string, promptTokens, completionTokens int64) *float64 {
	provider, name, ok := strings.Cut(model, "/")
	if !ok || t.Providers == nil {
		return nil
	}
	models, ok := t.Providers[provider]
	if !ok {
		return nil
	}
	p, ok := models[name]
	if !ok {
		return nil
	}
	cost := float64(promptTokens)/1e6*p.Input + float64(completionTokens)/1e6*p.Output
	return &cost
}
