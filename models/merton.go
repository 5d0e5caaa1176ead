package models

import (
	"math"

	"golang.org/x/exp/rand"
)

// MertonJumpDiffusion is a GBM with log-normally distributed jumps arriving
// at rate Lambda. Drift is compensated so the expected return stays Mu.
type MertonJumpDiffusion struct {
	S0     float64 // Initial price
	Mu     float64 // Drift
	Sigma  float64 // Diffusion volatility
	Lambda float64 // Jump intensity
	Delta  float64 // Jump size volatility
	Jump   float64 // Mean log jump size
}

func (m MertonJumpDiffusion) Name() string { return "merton" }

// Simulate draws at most one jump per step with probability Lambda·dt.
func (m MertonJumpDiffusion) Simulate(T, dt float64, rng *rand.Rand) Path {
	grid := NewTimeGrid(T, dt)

	compensator := m.Lambda * (math.Exp(m.Jump+0.5*m.Delta*m.Delta) - 1)
	drift := (m.Mu - compensator - 0.5*m.Sigma*m.Sigma) * dt
	vol := m.Sigma * math.Sqrt(dt)

	path := make(Path, len(grid.Times))
	path[0] = m.S0
	for i := 1; i < len(path); i++ {
		logReturn := drift + vol*rng.NormFloat64()
		if rng.Float64() < m.Lambda*dt {
			logReturn += m.Jump + m.Delta*rng.NormFloat64()
		}
		path[i] = path[i-1] * math.Exp(logReturn)
	}
	return path
}
