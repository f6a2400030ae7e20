package scoring

import (
	"fmt"
)

// Engine evaluates snapshots against one scoring configuration.
//
// The zero Engine is not usable; build one with New or Default. All methods
// are pure and safe for concurrent use.
type Engine struct {
	cfg Config
}

// New returns an Engine for the given configuration, or an error when the
// configuration is structurally invalid.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Default returns an Engine running the stock scoring model.
func Default() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}
