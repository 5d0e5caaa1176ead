package models

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Path is one simulated trajectory aligned to a TimeGrid.
type Path []float64

// Last returns the terminal value of the path.
func (p Path) Last() float64 {
	return p[len(p)-1]
}

// Process is a stochastic model that can produce sample paths.
type Process interface {
	Name() string
	Simulate(T, dt float64, rng *rand.Rand) Path
}

// TimeGrid holds the discrete times t_0=0 < t_1 < ... < t_N <= T.
type TimeGrid struct {
	T     float64
	Dt    float64
	Times []float64
}

// NewTimeGrid builds a uniform grid with N = floor(T/dt) steps.
// Non-positive T or dt, or a step count below one, panics.
func NewTimeGrid(T, dt float64) TimeGrid {
	if T <= 0 || dt <= 0 {
		panic(fmt.Sprintf("time grid requires T > 0 and dt > 0, got T=%v dt=%v", T, dt))
	}

	n := int(T / dt)
	if n < 1 {
		panic(fmt.Sprintf("time grid has no steps: T=%v dt=%v", T, dt))
	}

	times := make([]float64, n+1)
	for i := range times {
		times[i] = float64(i) * dt
	}

	return TimeGrid{T: T, Dt: dt, Times: times}
}

// Steps is the number of increments N.
func (g TimeGrid) Steps() int {
	return len(g.Times) - 1
}

// Linspace returns n evenly spaced values over [start, stop], endpoints included.
func Linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	switch n {
	case 0:
		return out
	case 1:
		out[0] = start
		return out
	}
	floats.Span(out, start, stop)
	return out
}

// brownian draws a standard Brownian motion on the grid with W_0 = 0.
func brownian(g TimeGrid, rng *rand.Rand) []float64 {
	w := make([]float64, len(g.Times))
	for i := 1; i < len(w); i++ {
		w[i] = rng.NormFloat64()
	}
	floats.CumSum(w, w)
	floats.Scale(math.Sqrt(g.Dt), w)
	return w
}

// exactOU holds the per-step coefficients of the exact OU transition.
type exactOU struct {
	decay  float64 // e^{-λdt}
	pull   float64 // mean·(1 - e^{-λdt})
	stdDev float64 // σ·sqrt((1 - e^{-2λdt}) / 2λ)
}

func newExactOU(mean, speed, sigma, dt float64) exactOU {
	decay := math.Exp(-speed * dt)
	step := exactOU{
		decay:  decay,
		pull:   mean * (1 - decay),
		stdDev: sigma * math.Sqrt((1-math.Exp(-2*speed*dt))/(2*speed)),
	}
	if speed == 0 {
		// no reversion: a driftless Brownian step
		step.stdDev = sigma * math.Sqrt(dt)
	}
	return step
}
