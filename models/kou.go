package models

import (
	"math"

	"golang.org/x/exp/rand"
)

// KouJumpDiffusion is a GBM with double-exponential log jumps: up with
// probability P and mean 1/Eta1, down with mean 1/Eta2. Eta1 must exceed 1
// for the drift compensator to exist; otherwise the drift is left
// uncompensated.
type KouJumpDiffusion struct {
	S0     float64 // Initial price
	Mu     float64 // Drift
	Sigma  float64 // Diffusion volatility
	Lambda float64 // Jump intensity
	P      float64 // Probability of upward jump
	Eta1   float64 // Rate of upward jump
	Eta2   float64 // Rate of downward jump
}

func (k KouJumpDiffusion) Name() string { return "kou" }

func (k KouJumpDiffusion) compensator() float64 {
	if k.Lambda == 0 || k.Eta1 <= 1 {
		return 0
	}
	meanJump := k.P*k.Eta1/(k.Eta1-1) + (1-k.P)*k.Eta2/(k.Eta2+1) - 1
	return k.Lambda * meanJump
}

func (k KouJumpDiffusion) Simulate(T, dt float64, rng *rand.Rand) Path {
	grid := NewTimeGrid(T, dt)

	drift := (k.Mu - k.compensator() - 0.5*k.Sigma*k.Sigma) * dt
	vol := k.Sigma * math.Sqrt(dt)

	path := make(Path, len(grid.Times))
	path[0] = k.S0
	for i := 1; i < len(path); i++ {
		logReturn := drift + vol*rng.NormFloat64()
		if rng.Float64() < k.Lambda*dt {
			if rng.Float64() < k.P {
				logReturn += rng.ExpFloat64() / k.Eta1
			} else {
				logReturn -= rng.ExpFloat64() / k.Eta2
			}
		}
		path[i] = path[i-1] * math.Exp(logReturn)
	}
	return path
}
