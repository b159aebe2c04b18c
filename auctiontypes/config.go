package auctiontypes

import (
	"fmt"
	"time"
)

const MaxQuality = 100

const (
	DefaultIterationLimit = 45
	DefaultBidTimeout     = 60 * time.Second
)

// GameConfig carries the knobs the engine itself understands. Budget
// computation policy (base plus per-team increments) lives in the config
// layer; the engine only ever sees one StartingBudget applied identically
// to every team.
type GameConfig struct {
	StartingBudget  int           `json:"starting_budget" yaml:"starting_budget"`
	IterationLimit  int           `json:"iteration_limit" yaml:"iteration_limit"`
	RequiredSetSize int           `json:"required_set_size" yaml:"required_set_size"`
	BidTimeout      time.Duration `json:"bid_timeout" yaml:"bid_timeout"`
}

func (c GameConfig) Validate() error {
	if c.StartingBudget <= 0 {
		return fmt.Errorf("starting budget must be positive, got %d", c.StartingBudget)
	}
	if c.IterationLimit < 1 {
		return fmt.Errorf("iteration limit must be at least 1, got %d", c.IterationLimit)
	}
	if c.RequiredSetSize < 0 {
		return fmt.Errorf("required set size must not be negative, got %d", c.RequiredSetSize)
	}
	if c.BidTimeout <= 0 {
		return fmt.Errorf("bid timeout must be positive, got %s", c.BidTimeout)
	}
	return nil
}
