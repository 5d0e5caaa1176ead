package models

import (
	"math"

	"golang.org/x/exp/rand"
)

type GeometricBrownianMotion struct {
	S0    float64 // Initial price
	Mu    float64 // Drift
	Sigma float64 // Volatility
}

type ArithmeticBrownianMotion struct {
	S0    float64 // Initial value
	Mu    float64 // Drift
	Sigma float64 // Volatility
}

func (g GeometricBrownianMotion) Name() string { return "gbm" }

// Simulate uses the exact solution S_i = S0·exp((mu - σ²/2)·t_i + σ·W_i).
func (g GeometricBrownianMotion) Simulate(T, dt float64, rng *rand.Rand) Path {
	grid := NewTimeGrid(T, dt)
	w := brownian(grid, rng)

	drift := g.Mu - 0.5*g.Sigma*g.Sigma
	path := make(Path, len(grid.Times))
	for i, t := range grid.Times {
		path[i] = g.S0 * math.Exp(drift*t+g.Sigma*w[i])
	}
	return path
}

func (a ArithmeticBrownianMotion) Name() string { return "bm" }

// Simulate returns S_i = S0 + mu·t_i + σ·W_i. Values may go negative.
func (a ArithmeticBrownianMotion) Simulate(T, dt float64, rng *rand.Rand) Path {
	grid := NewTimeGrid(T, dt)
	w := brownian(grid, rng)

	path := make(Path, len(grid.Times))
	for i, t := range grid.Times {
		path[i] = a.S0 + a.Mu*t + a.Sigma*w[i]
	}
	return path
}

// GBM simulates a geometric Brownian motion path.
func GBM(s0, mu, sigma, T, dt float64, rng *rand.Rand) Path {
	return GeometricBrownianMotion{S0: s0, Mu: mu, Sigma: sigma}.Simulate(T, dt, rng)
}

// BM simulates an arithmetic Brownian motion path.
func BM(s0, mu, sigma, T, dt float64, rng *rand.Rand) Path {
	return ArithmeticBrownianMotion{S0: s0, Mu: mu, Sigma: sigma}.Simulate(T, dt, rng)
}
