package hedging

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/positions"
)

var atmCall = positions.OptionSpec{S0: 100, K: 100, T: 1, R: 0.05, Sigma: 0.2, Type: positions.Call}

func flatPath(n int, level float64) models.Path {
	path := make(models.Path, n)
	for i := range path {
		path[i] = level
	}
	return path
}

func linearPath(n int, from, to float64) models.Path {
	return models.Path(models.Linspace(from, to, n))
}

func TestNewHedgeConfig(t *testing.T) {
	cfg := NewHedgeConfig(atmCall, 0.1, 1.0/252, 1)
	assert.Equal(t, 0.2, cfg.SigmaH)
	assert.Equal(t, 0.2, cfg.SigmaA)
	assert.Equal(t, 0.1, cfg.Mu)

	cfg = NewHedgeConfig(atmCall, 0.1, 1.0/252, -2, WithHedgingVol(0.25), WithActualVol(0.3))
	assert.Equal(t, 0.25, cfg.SigmaH)
	assert.Equal(t, 0.3, cfg.SigmaA)
	assert.Equal(t, -2.0, cfg.OptionPos)
}

func TestDeltaHedge_FlatPathAtTheStrike(t *testing.T) {
	cfg := NewHedgeConfig(atmCall, 0, 1.0/252, 1)
	path := flatPath(253, 100)

	ledger, err := Replicate(atmCall, cfg, path)
	require.NoError(t, err)

	// expires exactly at the money: no strike is exchanged
	assert.Equal(t, 0.0, ledger.Settlement)
	assert.Equal(t, 0.5, ledger.Deltas[len(ledger.Deltas)-1])

	premium, err := atmCall.Price()
	require.NoError(t, err)

	var want float64
	for i, cf := range ledger.CashFlows {
		want += cf * math.Exp(-atmCall.R*ledger.Times[i])
	}
	want -= premium

	pnl, err := DeltaHedge(atmCall, cfg, path)
	require.NoError(t, err)
	assert.InDelta(t, want, pnl, 1e-9)

	t.Run("zero rate", func(t *testing.T) {
		spec := atmCall
		spec.R = 0
		premium, err := spec.Price()
		require.NoError(t, err)

		pnl, err := DeltaHedge(spec, NewHedgeConfig(spec, 0, 1.0/252, 1), path)
		require.NoError(t, err)
		// rebalancing telescopes to the final half share bought at 100
		assert.InDelta(t, 50-premium, pnl, 1e-9)
	})
}

func TestDeltaHedge_TwoPointPath(t *testing.T) {
	spec := atmCall
	cfg := NewHedgeConfig(spec, 0, 1, 3, WithHedgingVol(0.3))
	path := models.Path{100, 120}

	d0 := positions.Delta(100, 100, 1, 0.05, 0.3, positions.Call, 0)
	cf0 := d0 * 3 * 100
	cf1 := (1 - d0) * 3 * 120
	premium, err := spec.Price()
	require.NoError(t, err)

	want := (cf0*math.Exp(0.05)+cf1-100*3)*math.Exp(-0.05) - premium*3

	pnl, err := DeltaHedge(spec, cfg, path)
	require.NoError(t, err)
	assert.InDelta(t, want, pnl, 1e-9)
}

func TestDeltaHedge_Settlement(t *testing.T) {
	tests := []struct {
		name       string
		optionType positions.OptionType
		path       models.Path
		settlement float64
	}{
		{"itm call", positions.Call, linearPath(50, 100, 130), -200},
		{"otm call", positions.Call, linearPath(50, 100, 70), 0},
		{"itm put", positions.Put, linearPath(50, 100, 70), 200},
		{"otm put", positions.Put, linearPath(50, 100, 130), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := atmCall
			spec.Type = tt.optionType
			ledger, err := Replicate(spec, NewHedgeConfig(spec, 0, 0.02, 2), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.settlement, ledger.Settlement)
		})
	}
}

func TestDeltaHedgePath(t *testing.T) {
	cfg := NewHedgeConfig(atmCall, 0.05, 0.01, 1, WithHedgingVol(0.22))
	path := models.GBM(100, 0.05, 0.2, 1, 0.01, rand.New(rand.NewSource(3)))

	pnlPath, err := DeltaHedgePath(atmCall, cfg, path)
	require.NoError(t, err)
	require.Len(t, pnlPath, len(path))

	pnl, err := DeltaHedge(atmCall, cfg, path)
	require.NoError(t, err)
	assert.InDelta(t, pnl, pnlPath[len(pnlPath)-1], 1e-9)

	ledger, err := Replicate(atmCall, cfg, path)
	require.NoError(t, err)
	first := (ledger.CashFlows[0]+ledger.Interest[0])*ledger.Discount - ledger.Premium
	assert.InDelta(t, first, pnlPath[0], 1e-12)
}

func TestDeltaHedge_ShortPositionMirrorsLong(t *testing.T) {
	path := models.GBM(100, 0.08, 0.25, 1, 0.02, rand.New(rand.NewSource(21)))
	spec := atmCall
	spec.Type = positions.Put

	long, err := DeltaHedge(spec, NewHedgeConfig(spec, 0, 0.02, 1), path)
	require.NoError(t, err)
	short, err := DeltaHedge(spec, NewHedgeConfig(spec, 0, 0.02, -1), path)
	require.NoError(t, err)

	assert.InDelta(t, -long, short, 1e-9)
}

func TestDeltaHedge_Errors(t *testing.T) {
	cfg := NewHedgeConfig(atmCall, 0, 0.1, 1)

	_, err := DeltaHedge(atmCall, cfg, models.Path{100})
	assert.True(t, errors.Is(err, ErrShortPath))

	bad := atmCall
	bad.K = 0
	_, err = DeltaHedge(bad, cfg, flatPath(10, 100))
	assert.True(t, errors.Is(err, positions.ErrInvalidParameter))

	_, err = DeltaHedgePath(atmCall, NewHedgeConfig(atmCall, 0, 0.1, 1, WithHedgingVol(0)), flatPath(10, 100))
	assert.True(t, errors.Is(err, positions.ErrInvalidParameter))
}

func TestSimulator_Validate(t *testing.T) {
	sim := NewSimulator(atmCall, NewHedgeConfig(atmCall, 0, 2, 1))
	assert.True(t, errors.Is(sim.Validate(), positions.ErrInvalidParameter))

	sim = NewSimulator(atmCall, NewHedgeConfig(atmCall, 0, 0.01, 1, WithActualVol(-0.1)))
	_, err := sim.Run(rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, positions.ErrInvalidParameter))
}

func TestSimulator_Reproducible(t *testing.T) {
	sim := NewSimulator(atmCall, NewHedgeConfig(atmCall, 0.05, 0.01, 1))

	a, err := sim.Run(rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := sim.Run(rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	pnlPath, err := sim.RunPath(rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.InDelta(t, a, pnlPath[len(pnlPath)-1], 1e-9)
}

func TestSimulator_CustomModel(t *testing.T) {
	sim := NewSimulator(atmCall, NewHedgeConfig(atmCall, 0.05, 0.01, 1)).
		WithModel(models.MertonJumpDiffusion{S0: 100, Mu: 0.05, Sigma: 0.2, Lambda: 1, Jump: -0.1, Delta: 0.1})

	path := sim.DrawPath(rand.New(rand.NewSource(5)))
	assert.Len(t, path, 101)

	_, err := sim.Run(rand.New(rand.NewSource(5)))
	require.NoError(t, err)
}

func terminalStdDev(t *testing.T, dt float64, trials int) float64 {
	sim := NewSimulator(atmCall, NewHedgeConfig(atmCall, 0.05, dt, 1))
	pnls := make([]float64, trials)
	for i := range pnls {
		pnl, err := sim.Run(rand.New(rand.NewSource(uint64(i + 1))))
		require.NoError(t, err)
		pnls[i] = pnl
	}
	return stat.StdDev(pnls, nil)
}

func TestDeltaHedge_PerfectHedgeConverges(t *testing.T) {
	coarse := terminalStdDev(t, 1.0/50, 200)
	fine := terminalStdDev(t, 1.0/1000, 200)

	assert.Less(t, fine, coarse)
	// hedging error shrinks roughly like sqrt(dt)
	assert.Less(t, fine, coarse/2)
}
