package models

import (
	"math"

	"golang.org/x/exp/rand"
)

type HestonModel struct {
	S0    float64 // Initial price
	Mu    float64 // Drift of the price
	V0    float64 // Initial variance
	Kappa float64 // Mean reversion speed of variance
	Theta float64 // Long-term variance
	Xi    float64 // Volatility of variance
	Rho   float64 // Correlation between asset returns and variance
}

func (h HestonModel) Name() string { return "heston" }

// Simulate uses a log-Euler step for the price and a full-truncation Euler
// step for the variance.
func (h HestonModel) Simulate(T, dt float64, rng *rand.Rand) Path {
	grid := NewTimeGrid(T, dt)
	sqrtDt := math.Sqrt(dt)
	rhoBar := math.Sqrt(1 - h.Rho*h.Rho)

	path := make(Path, len(grid.Times))
	path[0] = h.S0
	v := h.V0

	for i := 1; i < len(path); i++ {
		z1 := rng.NormFloat64()
		z2 := h.Rho*z1 + rhoBar*rng.NormFloat64()

		vPos := math.Max(0, v)
		path[i] = path[i-1] * math.Exp((h.Mu-0.5*vPos)*dt+math.Sqrt(vPos)*sqrtDt*z1)
		v += h.Kappa*(h.Theta-vPos)*dt + h.Xi*math.Sqrt(vPos)*sqrtDt*z2
	}
	return path
}
