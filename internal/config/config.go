package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkgwatch/pkgwatch/pkg/scoring"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultWindowDays = 90
	DefaultFormat     = "table"
)

// Config is the top-level configuration for pkgwatch.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Collect CollectConfig `yaml:"collect"`
	Output  OutputConfig  `yaml:"output"`
}

// ScoringConfig holds the scoring engine tunables.
type ScoringConfig struct {
	// Weights reapportions the five health components. They must sum
	// to 1.0.
	Weights WeightsConfig `yaml:"weights"`

	// HorizonMonths is the default abandonment-risk horizon.
	HorizonMonths int `yaml:"horizon_months"`

	// TrendThreshold is the per-observation change below which a risk
	// history counts as stable.
	TrendThreshold float64 `yaml:"trend_threshold"`
}

// WeightsConfig holds the five component weights of the health score.
type WeightsConfig struct {
	Maintainer  float64 `yaml:"maintainer"`
	UserCentric float64 `yaml:"user_centric"`
	Evolution   float64 `yaml:"evolution"`
	Community   float64 `yaml:"community"`
	Security    float64 `yaml:"security"`
}

// CollectConfig holds the git collection settings.
type CollectConfig struct {
	// WindowDays is how far back the activity window reaches when
	// collecting signals from a repository.
	WindowDays int `yaml:"window_days"`
}

// OutputConfig holds rendering defaults, overridable per run with flags.
type OutputConfig struct {
	// Format is the default output format: table | json.
	Format string `yaml:"format"`
}

// Load reads and parses the YAML config file at path. Missing optional
// fields are filled with defaults; an empty path skips the file entirely
// and returns the pure defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Weights: WeightsConfig{
				Maintainer:  scoring.DefaultMaintainerWeight,
				UserCentric: scoring.DefaultUserCentricWeight,
				Evolution:   scoring.DefaultEvolutionWeight,
				Community:   scoring.DefaultCommunityWeight,
				Security:    scoring.DefaultSecurityWeight,
			},
			HorizonMonths:  scoring.DefaultHorizonMonths,
			TrendThreshold: scoring.DefaultTrendThreshold,
		},
		Collect: CollectConfig{
			WindowDays: DefaultWindowDays,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if err := cfg.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if cfg.Collect.WindowDays < 1 {
		return fmt.Errorf("collect.window_days must be at least 1, got %d", cfg.Collect.WindowDays)
	}
	switch cfg.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q", cfg.Output.Format)
	}
	return nil
}

// EngineConfig converts the scoring section into the engine's own
// configuration type.
func (c *Config) EngineConfig() scoring.Config {
	return scoring.Config{
		Weights: scoring.Weights{
			Maintainer:  c.Scoring.Weights.Maintainer,
			UserCentric: c.Scoring.Weights.UserCentric,
			Evolution:   c.Scoring.Weights.Evolution,
			Community:   c.Scoring.Weights.Community,
			Security:    c.Scoring.Weights.Security,
		},
		HorizonMonths:  c.Scoring.HorizonMonths,
		TrendThreshold: c.Scoring.TrendThreshold,
	}
}

// Engine builds a scoring engine from the configuration.
func (c *Config) Engine() (*scoring.Engine, error) {
	return scoring.New(c.EngineConfig())
}
