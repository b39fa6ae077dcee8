// Package config loads the benchmark configuration from YAML and the
// secrets from the environment. YAML holds everything a run report should
// be reproducible from; credentials never appear in the file.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/markm8/synthbench/internal/judge"
)

type Config struct {
	Models     []string          `yaml:"models"`
	Judge      Judge             `yaml:"judge"`
	Criteria   []judge.Criterion `yaml:"criteria"`
	Corpus     string            `yaml:"corpus"`
	Generation Generation        `yaml:"generation"`
	Results    Results           `yaml:"results"`
	Pricing    string            `yaml:"pricing"`
}

// Judge and Generation temperatures are pointers so an explicit 0 in the
// file survives defaulting; nil means the key was absent.
type Judge struct {
	Model          string   `yaml:"model"`
	Temperature    *float64 `yaml:"temperature"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Samples        int      `yaml:"samples"`
}

type Generation struct {
	Temperature    *float64 `yaml:"temperature"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Instructions   string   `yaml:"instructions"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

// Secrets come exclusively from the environment. JudgeModel, when set,
// overrides the configured judge model for the whole run.
type Secrets struct {
	APIKey     string `env:"OPENROUTER_API_KEY,required"`
	BaseURL    string `env:"OPENROUTER_BASE_URL,default=https://openrouter.ai/api/v1"`
	JudgeModel string `env:"JUDGE_MODEL"`
}

// LoadSecrets reads credentials from the environment. Called before any
// network work so a missing key fails the run up front.
func LoadSecrets(ctx context.Context) (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process(ctx, &s); err != nil {
		return nil, fmt.Errorf("loading secrets: %w", err)
	}
	return &s, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Models) == 0 {
		return fmt.Errorf("no models defined")
	}
	for i, m := range cfg.Models {
		if m == "" {
			return fmt.Errorf("model %d: name is required", i)
		}
	}
	if cfg.Corpus == "" {
		return fmt.Errorf("corpus path is required")
	}
	if cfg.Judge.Model == "" {
		cfg.Judge.Model = "anthropic/claude-opus-4.5"
	}
	if cfg.Judge.Temperature == nil {
		cfg.Judge.Temperature = ptr(0.1)
	}
	if cfg.Judge.Samples < 1 {
		cfg.Judge.Samples = 1
	}
	if cfg.Judge.TimeoutSeconds < 1 {
		cfg.Judge.TimeoutSeconds = 120
	}
	if cfg.Generation.Temperature == nil {
		cfg.Generation.Temperature = ptr(0.3)
	}
	if cfg.Generation.TimeoutSeconds < 1 {
		cfg.Generation.TimeoutSeconds = 180
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}
	if len(cfg.Criteria) == 0 {
		cfg.Criteria = judge.DefaultCriteria()
	}
	for i, c := range cfg.Criteria {
		if c.Name == "" {
			return fmt.Errorf("criterion %d: name is required", i)
		}
		if len(c.Steps) == 0 {
			return fmt.Errorf("criterion %q: steps are required", c.Name)
		}
		if c.Scale.Max <= c.Scale.Min {
			return fmt.Errorf("criterion %q: scale max must exceed min", c.Name)
		}
		if c.Threshold < 0 || c.Threshold > 1 {
			return fmt.Errorf("criterion %q: threshold must be in [0, 1]", c.Name)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
