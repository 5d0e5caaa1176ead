package positions

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	maxIterations = 100
	epsilon       = 1e-8
)

// D1 is (ln(S/K) + (r - q + σ²/2)T) / (σ√T). At expiry it collapses to the
// sign of the moneyness: +Inf in the money, -Inf out of it, 0 at the money.
func D1(S, K, T, r, sigma, q float64) float64 {
	if T == 0 {
		switch {
		case S > K:
			return math.Inf(1)
		case S < K:
			return math.Inf(-1)
		default:
			return 0
		}
	}
	return (math.Log(S/K) + (r-q+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
}

// D2 is D1 - σ√T, defined as 0 at expiry.
func D2(S, K, T, r, sigma, q float64) float64 {
	if T == 0 {
		return 0
	}
	return D1(S, K, T, r, sigma, q) - sigma*math.Sqrt(T)
}

// Price returns the Black-Scholes-Merton value of a European option.
// At T = 0 the intrinsic value is returned.
func Price(S, K, T, r, sigma float64, optionType OptionType, q float64) (float64, error) {
	if err := validateType(optionType); err != nil {
		return 0, err
	}
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}
	return calculateOptionPrice(S, K, T, r, sigma, optionType, q), nil
}

func calculateOptionPrice(S, K, T, r, sigma float64, optionType OptionType, q float64) float64 {
	if T == 0 {
		return Intrinsic(S, K, optionType)
	}

	d1 := D1(S, K, T, r, sigma, q)
	d2 := D2(S, K, T, r, sigma, q)
	spot := S * math.Exp(-q*T)
	strike := K * math.Exp(-r*T)

	if optionType == Call {
		return spot*normCDF(d1) - strike*normCDF(d2)
	}
	return strike*normCDF(-d2) - spot*normCDF(-d1)
}

// Intrinsic is the payoff of immediate exercise.
func Intrinsic(S, K float64, optionType OptionType) float64 {
	if optionType == Call {
		return math.Max(S-K, 0)
	}
	return math.Max(K-S, 0)
}

func calculateBSM(S, K, T, r, sigma float64, optionType OptionType, q float64) BSMResult {
	return BSMResult{
		Price: calculateOptionPrice(S, K, T, r, sigma, optionType, q),
		D1:    D1(S, K, T, r, sigma, q),
		D2:    D2(S, K, T, r, sigma, q),
		Delta: Delta(S, K, T, r, sigma, optionType, q),
		Gamma: Gamma(S, K, T, r, sigma, q),
		Theta: Theta(S, K, T, r, sigma, optionType, q),
		Vega:  Vega(S, K, T, r, sigma, q),
		Rho:   Rho(S, K, T, r, sigma, optionType, q),
	}
}

// ImpliedVolatility inverts Price with Newton-Raphson on vega.
func ImpliedVolatility(targetPrice, S, K, T, r float64, optionType OptionType, q float64) (float64, error) {
	if err := validateType(optionType); err != nil {
		return 0, err
	}
	if T <= 0 {
		return 0, errors.Wrapf(ErrInvalidParameter, "implied volatility needs a positive maturity, got %v", T)
	}

	sigma := 0.5
	if err := validateInputs(S, K, T, sigma); err != nil {
		return 0, err
	}

	for i := 0; i < maxIterations; i++ {
		diff := calculateOptionPrice(S, K, T, r, sigma, optionType, q) - targetPrice
		if math.Abs(diff) < epsilon {
			return sigma, nil
		}

		vega := Vega(S, K, T, r, sigma, q)
		if vega < epsilon {
			break
		}

		sigma -= diff / vega
		if sigma <= 0 {
			sigma = 0.0001
		}
	}

	return 0, errors.Wrapf(ErrNoConvergence, "target price %v after %d iterations", targetPrice, maxIterations)
}

func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

func normPDF(x float64) float64 {
	return distuv.UnitNormal.Prob(x)
}
