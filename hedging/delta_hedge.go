package hedging

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/positions"
)

// PnLPath is the cumulative replication PnL at every grid point. The last
// element is the terminal PnL.
type PnLPath []float64

// Ledger records every rebalancing step of one hedged path.
type Ledger struct {
	Times      []float64 `json:"times"`
	Spots      []float64 `json:"spots"`
	Deltas     []float64 `json:"deltas"`
	CashFlows  []float64 `json:"cash_flows"`
	Interest   []float64 `json:"interest"`
	Settlement float64   `json:"settlement"` // Strike exchanged at expiry, signed
	Premium    float64   `json:"premium"`    // Option value at inception
	Discount   float64   `json:"discount"`   // e^{-rT}
	OptionPos  float64   `json:"option_pos"`
}

// Replicate hedges optionPos options along path. Deltas use the hedging
// volatility with remaining time T - t_i on t = linspace(0, T, len(path));
// the final point uses the expiry delta. Each rebalancing cash flow earns
// e^{r(T - t_i)} - 1 until maturity.
func Replicate(spec positions.OptionSpec, cfg HedgeConfig, path models.Path) (Ledger, error) {
	if len(path) < 2 {
		return Ledger{}, errors.Wrapf(ErrShortPath, "got %d points", len(path))
	}
	if err := cfg.Validate(); err != nil {
		return Ledger{}, err
	}

	// the premium uses the pricing volatility, not the hedging one
	premium, err := spec.Price()
	if err != nil {
		return Ledger{}, err
	}

	n := len(path)
	ledger := Ledger{
		Times:     models.Linspace(0, spec.T, n),
		Spots:     append([]float64(nil), path...),
		Deltas:    make([]float64, n),
		CashFlows: make([]float64, n),
		Interest:  make([]float64, n),
		Premium:   premium,
		Discount:  math.Exp(-spec.R * spec.T),
		OptionPos: cfg.OptionPos,
	}

	prevDelta := 0.0
	for i, s := range path {
		remaining := spec.T - ledger.Times[i]
		if i == n-1 {
			remaining = 0
		}

		delta := positions.Delta(s, spec.K, remaining, spec.R, cfg.SigmaH, spec.Type, spec.Q)
		cashFlow := (delta - prevDelta) * cfg.OptionPos * s

		ledger.Deltas[i] = delta
		ledger.CashFlows[i] = cashFlow
		ledger.Interest[i] = cashFlow * (math.Exp(spec.R*(spec.T-ledger.Times[i])) - 1)
		prevDelta = delta
	}

	final := path.Last()
	switch {
	case spec.Type == positions.Call && final > spec.K:
		ledger.Settlement = -spec.K * cfg.OptionPos
	case spec.Type == positions.Put && final < spec.K:
		ledger.Settlement = spec.K * cfg.OptionPos
	}

	return ledger, nil
}

// PnL is the discounted terminal PnL net of the premium paid.
func (l Ledger) PnL() float64 {
	total := floats.Sum(l.CashFlows) + floats.Sum(l.Interest) + l.Settlement
	return total*l.Discount - l.Premium*l.OptionPos
}

// Path accumulates cash flows and interest step by step. Settlement is only
// booked at the final point; discounting and the premium apply throughout.
func (l Ledger) Path() PnLPath {
	pnl := make(PnLPath, len(l.CashFlows))
	floats.AddTo(pnl, l.CashFlows, l.Interest)
	floats.CumSum(pnl, pnl)
	pnl[len(pnl)-1] += l.Settlement

	premium := l.Premium * l.OptionPos
	for i := range pnl {
		pnl[i] = pnl[i]*l.Discount - premium
	}
	return pnl
}

// DeltaHedge returns the terminal replication PnL of hedging along path.
func DeltaHedge(spec positions.OptionSpec, cfg HedgeConfig, path models.Path) (float64, error) {
	ledger, err := Replicate(spec, cfg, path)
	if err != nil {
		return 0, err
	}
	return ledger.PnL(), nil
}

// DeltaHedgePath returns the cumulative PnL at every grid point.
func DeltaHedgePath(spec positions.OptionSpec, cfg HedgeConfig, path models.Path) (PnLPath, error) {
	ledger, err := Replicate(spec, cfg, path)
	if err != nil {
		return nil, err
	}
	return ledger.Path(), nil
}
