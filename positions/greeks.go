package positions

import (
	"math"
)

// Delta is e^{-qT}·N(d1) for calls and e^{-qT}·(N(d1) - 1) for puts. At
// expiry it is the limiting step function of the moneyness.
func Delta(S, K, T, r, sigma float64, optionType OptionType, q float64) float64 {
	nd1 := normCDF(D1(S, K, T, r, sigma, q))
	if optionType == Put {
		nd1 -= 1
	}
	return math.Exp(-q*T) * nd1
}

// Gamma is undefined at T = 0.
func Gamma(S, K, T, r, sigma, q float64) float64 {
	d1 := D1(S, K, T, r, sigma, q)
	return math.Exp(-q*T) * normPDF(d1) / (S * sigma * math.Sqrt(T))
}

// Vega is undefined at T = 0.
func Vega(S, K, T, r, sigma, q float64) float64 {
	d1 := D1(S, K, T, r, sigma, q)
	return S * math.Exp(-q*T) * normPDF(d1) * math.Sqrt(T)
}

// Theta is the time decay per year.
func Theta(S, K, T, r, sigma float64, optionType OptionType, q float64) float64 {
	d1 := D1(S, K, T, r, sigma, q)
	d2 := D2(S, K, T, r, sigma, q)
	spot := S * math.Exp(-q*T)
	discounted := r * K * math.Exp(-r*T)

	common := -spot * normPDF(d1) * sigma / (2 * math.Sqrt(T))
	if optionType == Call {
		return common - discounted*normCDF(d2) + q*spot*normCDF(d1)
	}
	return common + discounted*normCDF(-d2) - q*spot*normCDF(-d1)
}

func Rho(S, K, T, r, sigma float64, optionType OptionType, q float64) float64 {
	d2 := D2(S, K, T, r, sigma, q)
	discounted := K * T * math.Exp(-r*T)
	if optionType == Call {
		return discounted * normCDF(d2)
	}
	return -discounted * normCDF(-d2)
}
