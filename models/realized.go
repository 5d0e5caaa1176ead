package models

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// LogReturns returns log(p[i]/p[i-1]) for every step of the path.
func LogReturns(path Path) []float64 {
	if len(path) < 2 {
		return nil
	}
	returns := make([]float64, len(path)-1)
	for i := 1; i < len(path); i++ {
		returns[i-1] = math.Log(path[i] / path[i-1])
	}
	return returns
}

// RealizedVolatility is the close-to-close sample standard deviation of the
// log returns, annualized for steps of dt years. Paths with fewer than three
// points have no estimate and return 0.
func RealizedVolatility(path Path, dt float64) float64 {
	if len(path) < 3 || dt <= 0 {
		return 0
	}
	return stat.StdDev(LogReturns(path), nil) / math.Sqrt(dt)
}
