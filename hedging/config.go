package hedging

import (
	"github.com/pkg/errors"

	"github.com/bcdannyboy/dhedge/positions"
)

var ErrShortPath = errors.New("path needs at least two points")

// HedgeConfig describes how the option is hedged and how the real-world
// path is drawn. SigmaH and SigmaA are always concrete; NewHedgeConfig
// resolves them to the pricing volatility when no override is given.
type HedgeConfig struct {
	Mu        float64 `json:"mu"`         // Real-world drift of the simulated path
	SigmaH    float64 `json:"sigma_h"`    // Volatility used to compute hedge deltas
	SigmaA    float64 `json:"sigma_a"`    // Volatility of the simulated path
	Dt        float64 `json:"dt"`         // Rebalancing interval in years
	OptionPos float64 `json:"option_pos"` // Signed number of options held
}

type HedgeOption func(*HedgeConfig)

// WithHedgingVol makes the hedger compute deltas with a volatility other
// than the one the option was priced with.
func WithHedgingVol(sigma float64) HedgeOption {
	return func(c *HedgeConfig) {
		c.SigmaH = sigma
	}
}

// WithActualVol draws the real-world path with its own volatility.
func WithActualVol(sigma float64) HedgeOption {
	return func(c *HedgeConfig) {
		c.SigmaA = sigma
	}
}

func NewHedgeConfig(spec positions.OptionSpec, mu, dt, optionPos float64, opts ...HedgeOption) HedgeConfig {
	cfg := HedgeConfig{
		Mu:        mu,
		SigmaH:    spec.Sigma,
		SigmaA:    spec.Sigma,
		Dt:        dt,
		OptionPos: optionPos,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate checks the fields needed to hedge a supplied path.
func (c HedgeConfig) Validate() error {
	if c.SigmaH <= 0 {
		return errors.Wrapf(positions.ErrInvalidParameter, "hedging volatility must be positive, got %v", c.SigmaH)
	}
	return nil
}

// validateSimulation also checks the fields needed to draw a path.
func (c HedgeConfig) validateSimulation() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SigmaA < 0 {
		return errors.Wrapf(positions.ErrInvalidParameter, "actual volatility must be non-negative, got %v", c.SigmaA)
	}
	if c.Dt <= 0 {
		return errors.Wrapf(positions.ErrInvalidParameter, "time step must be positive, got %v", c.Dt)
	}
	return nil
}
