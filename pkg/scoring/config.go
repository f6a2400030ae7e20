package scoring

import (
	"fmt"
	"math"
)

// Default component weights. They must sum to 1.0.
const (
	DefaultMaintainerWeight  = 0.25
	DefaultUserCentricWeight = 0.30
	DefaultEvolutionWeight   = 0.20
	DefaultCommunityWeight   = 0.10
	DefaultSecurityWeight    = 0.15
)

// Defaults for the non-weight tunables.
const (
	// DefaultHorizonMonths is the abandonment-risk horizon used when the
	// caller does not supply one.
	DefaultHorizonMonths = 12

	// DefaultTrendThreshold is the per-observation change below which a
	// risk history counts as STABLE.
	DefaultTrendThreshold = 5.0
)

// weightTolerance is how far the weight sum may drift from 1.0 before
// validation rejects it. Covers float accumulation error, nothing more.
const weightTolerance = 1e-9

// Weights holds the share each component contributes to the health score.
type Weights struct {
	Maintainer  float64
	UserCentric float64
	Evolution   float64
	Community   float64
	Security    float64
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Maintainer + w.UserCentric + w.Evolution + w.Community + w.Security
}

// Config carries every tunable of the engine. Callers construct one
// explicitly (or start from DefaultConfig) and pass it to New; there is no
// package-level mutable state.
type Config struct {
	Weights        Weights
	HorizonMonths  int
	TrendThreshold float64
}

// DefaultConfig returns the stock scoring model.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Maintainer:  DefaultMaintainerWeight,
			UserCentric: DefaultUserCentricWeight,
			Evolution:   DefaultEvolutionWeight,
			Community:   DefaultCommunityWeight,
			Security:    DefaultSecurityWeight,
		},
		HorizonMonths:  DefaultHorizonMonths,
		TrendThreshold: DefaultTrendThreshold,
	}
}

// Validate checks structural constraints on the configuration.
func (c Config) Validate() error {
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"maintainer", c.Weights.Maintainer},
		{"user_centric", c.Weights.UserCentric},
		{"evolution", c.Weights.Evolution},
		{"community", c.Weights.Community},
		{"security", c.Weights.Security},
	} {
		if w.value < 0 {
			return fmt.Errorf("weight %s must not be negative, got %v", w.name, w.value)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.9f", sum)
	}
	if c.HorizonMonths < 1 {
		return fmt.Errorf("horizon_months must be at least 1, got %d", c.HorizonMonths)
	}
	if c.TrendThreshold < 0 {
		return fmt.Errorf("trend_threshold must not be negative, got %v", c.TrendThreshold)
	}
	return nil
}
