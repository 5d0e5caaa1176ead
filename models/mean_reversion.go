package models

import (
	"math"

	"golang.org/x/exp/rand"
)

type OrnsteinUhlenbeck struct {
	S0    float64 // Initial value
	Mean  float64 // Long-run level
	Speed float64 // Mean reversion speed
	Sigma float64 // Volatility
}

// Vasicek is the Ornstein-Uhlenbeck process applied to a short rate.
type Vasicek struct {
	R0    float64 // Initial rate
	Speed float64 // Mean reversion speed
	Mean  float64 // Long-run rate
	Sigma float64 // Volatility
}

// CoxIngersollRoss scales the OU diffusion by sqrt(max(r, 0)). The Feller
// condition 2·Speed·Mean >= Sigma² is not enforced, so paths can go negative.
type CoxIngersollRoss struct {
	R0    float64 // Initial rate
	Speed float64 // Mean reversion speed
	Mean  float64 // Long-run rate
	Sigma float64 // Volatility
}

func (o OrnsteinUhlenbeck) Name() string { return "ou" }

// Simulate applies the exact OU transition step by step.
func (o OrnsteinUhlenbeck) Simulate(T, dt float64, rng *rand.Rand) Path {
	return simulateOU(o.S0, o.Mean, o.Speed, o.Sigma, T, dt, rng, false)
}

func (v Vasicek) Name() string { return "vasicek" }

func (v Vasicek) Simulate(T, dt float64, rng *rand.Rand) Path {
	return simulateOU(v.R0, v.Mean, v.Speed, v.Sigma, T, dt, rng, false)
}

func (c CoxIngersollRoss) Name() string { return "cir" }

func (c CoxIngersollRoss) Simulate(T, dt float64, rng *rand.Rand) Path {
	return simulateOU(c.R0, c.Mean, c.Speed, c.Sigma, T, dt, rng, true)
}

func simulateOU(x0, mean, speed, sigma, T, dt float64, rng *rand.Rand, sqrtDiffusion bool) Path {
	grid := NewTimeGrid(T, dt)
	step := newExactOU(mean, speed, sigma, dt)

	path := make(Path, len(grid.Times))
	path[0] = x0
	for i := 1; i < len(path); i++ {
		prev := path[i-1]
		shock := step.stdDev * rng.NormFloat64()
		if sqrtDiffusion {
			shock *= math.Sqrt(math.Max(prev, 0))
		}
		path[i] = prev*step.decay + step.pull + shock
	}
	return path
}

// OU simulates an Ornstein-Uhlenbeck path.
func OU(s0, mean, speed, sigma, T, dt float64, rng *rand.Rand) Path {
	return OrnsteinUhlenbeck{S0: s0, Mean: mean, Speed: speed, Sigma: sigma}.Simulate(T, dt, rng)
}

// VasicekPath simulates a Vasicek short-rate path.
func VasicekPath(r0, speed, mean, sigma, T, dt float64, rng *rand.Rand) Path {
	return Vasicek{R0: r0, Speed: speed, Mean: mean, Sigma: sigma}.Simulate(T, dt, rng)
}

// CIR simulates a Cox-Ingersoll-Ross short-rate path.
func CIR(r0, speed, mean, sigma, T, dt float64, rng *rand.Rand) Path {
	return CoxIngersollRoss{R0: r0, Speed: speed, Mean: mean, Sigma: sigma}.Simulate(T, dt, rng)
}
