package probability

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/dhedge/hedging"
	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/positions"
)

var atmCall = positions.OptionSpec{S0: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: positions.Call}

func TestSplitSeeds(t *testing.T) {
	a := SplitSeeds(7, 100)
	b := SplitSeeds(7, 100)
	assert.Equal(t, a, b)

	seen := make(map[uint64]bool, len(a))
	for _, s := range a {
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.NotEqual(t, a[:10], SplitSeeds(8, 10))
}

func TestMonteCarloPnL_InvalidInputs(t *testing.T) {
	sim := hedging.NewSimulator(atmCall, hedging.NewHedgeConfig(atmCall, 0.05, 0.01, 1))
	_, err := MonteCarloPnL(sim, 0)
	assert.True(t, errors.Is(err, ErrInvalidSimulations))

	bad := atmCall
	bad.Sigma = -1
	_, err = MonteCarloPnL(hedging.NewSimulator(bad, hedging.NewHedgeConfig(bad, 0.05, 0.01, 1)), 10)
	assert.True(t, errors.Is(err, positions.ErrInvalidParameter))
}

func TestMonteCarloPnL_IndependentOfWorkers(t *testing.T) {
	sim := hedging.NewSimulator(atmCall, hedging.NewHedgeConfig(atmCall, 0.05, 0.02, 1))

	single, err := MonteCarloPnL(sim, 64, WithSeed(11), WithWorkers(1), KeepDistribution())
	require.NoError(t, err)
	parallel, err := MonteCarloPnL(sim, 64, WithSeed(11), WithWorkers(8), KeepDistribution())
	require.NoError(t, err)

	assert.Equal(t, single.PnLs, parallel.PnLs)
	assert.Equal(t, single.Mean, parallel.Mean)
	assert.Equal(t, uint64(11), single.Seed)
}

func TestMonteCarloPnL_TrialsAreIndependent(t *testing.T) {
	sim := hedging.NewSimulator(atmCall, hedging.NewHedgeConfig(atmCall, 0.05, 0.02, 1))
	result, err := MonteCarloPnL(sim, 50, WithSeed(3), KeepDistribution())
	require.NoError(t, err)

	require.Len(t, result.PnLs, 50)
	distinct := make(map[float64]bool)
	for _, pnl := range result.PnLs {
		distinct[pnl] = true
	}
	assert.Len(t, distinct, 50)

	var sum float64
	for _, pnl := range result.PnLs {
		sum += pnl
	}
	assert.InDelta(t, sum/50, result.Mean, 1e-12)
}

func TestMonteCarloPnL_CorrectHedgeHasZeroMean(t *testing.T) {
	sim := hedging.NewSimulator(atmCall, hedging.NewHedgeConfig(atmCall, 0.05, 1.0/252, 1))

	result, err := MonteCarloPnL(sim, 5000, WithSeed(2024))
	require.NoError(t, err)

	assert.Equal(t, 5000, result.Simulations)
	assert.Nil(t, result.PnLs)
	assert.Greater(t, result.StdErr, 0.0)
	assert.Less(t, math.Abs(result.Mean), 4*result.StdErr)
	assert.InDelta(t, result.StdDev/math.Sqrt(5000), result.StdErr, 1e-12)
}

func TestMonteCarloPnL_MisspecifiedVolatility(t *testing.T) {
	// priced and hedged at 20% while the stock moves at 30%; the gap is
	// worth roughly vega times the volatility difference
	cfg := hedging.NewHedgeConfig(atmCall, 0.05, 1.0/100, 1, hedging.WithActualVol(0.3))
	mean, err := MeanPnL(atmCall, cfg, 2000, WithSeed(5))
	require.NoError(t, err)

	vega := positions.Vega(100, 100, 1, 0.05, 0.2, 0)
	assert.Greater(t, mean, 0.25*vega*0.1)
}

func TestMonteCarloPnL_FixedPath(t *testing.T) {
	path := models.Path(models.Linspace(100, 120, 101))
	sim := hedging.NewSimulator(atmCall, hedging.NewHedgeConfig(atmCall, 0, 0.01, 1))

	want, err := hedging.DeltaHedge(atmCall, sim.Config, path)
	require.NoError(t, err)

	result, err := MonteCarloPnL(sim, 20, WithFixedPath(path))
	require.NoError(t, err)
	assert.InDelta(t, want, result.Mean, 1e-12)
	assert.InDelta(t, 0, result.StdDev, 1e-12)
}

func TestMonteCarloPnL_Progress(t *testing.T) {
	var calls int64
	sim := hedging.NewSimulator(atmCall, hedging.NewHedgeConfig(atmCall, 0.05, 0.05, 1))

	_, err := MonteCarloPnL(sim, 37, WithSeed(1), WithWorkers(4), WithProgress(func() {
		atomic.AddInt64(&calls, 1)
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(37), atomic.LoadInt64(&calls))
}

func TestMonteCarloPnL_SingleTrial(t *testing.T) {
	sim := hedging.NewSimulator(atmCall, hedging.NewHedgeConfig(atmCall, 0.05, 0.05, 1))
	result, err := MonteCarloPnL(sim, 1, WithSeed(9))
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.StdDev)
	assert.Equal(t, result.Mean, result.ConfidenceLow)
	assert.Equal(t, result.Mean, result.ConfidenceHigh)
}
