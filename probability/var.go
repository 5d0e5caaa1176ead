package probability

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CalculateVaR returns the loss that is not exceeded with the given
// confidence. Losses are positive numbers; pnls are profits.
func CalculateVaR(pnls []float64, confidence float64) float64 {
	if len(pnls) == 0 {
		return 0
	}
	return stat.Quantile(confidence, stat.Empirical, sortedLosses(pnls), nil)
}

// CalculateExpectedShortfall averages the losses at or beyond the VaR.
func CalculateExpectedShortfall(pnls []float64, confidence float64) float64 {
	if len(pnls) == 0 {
		return 0
	}

	losses := sortedLosses(pnls)
	threshold := stat.Quantile(confidence, stat.Empirical, losses, nil)

	idx := sort.SearchFloat64s(losses, threshold)
	return stat.Mean(losses[idx:], nil)
}

func sortedLosses(pnls []float64) []float64 {
	losses := make([]float64, len(pnls))
	for i, pnl := range pnls {
		losses[i] = -pnl
	}
	sort.Float64s(losses)
	return losses
}
