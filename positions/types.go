package positions

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrShapeMismatch    = errors.New("shapes cannot be broadcast together")
	ErrNoConvergence    = errors.New("implied volatility did not converge")
)

type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(strings.ToLower(strings.TrimSpace(s))) {
	case Call:
		return Call, nil
	case Put:
		return Put, nil
	}
	return "", errors.Wrapf(ErrInvalidParameter, "option type must be 'call' or 'put', got %q", s)
}

// OptionSpec describes a European option. It is a plain value; use Validate
// before pricing when the fields come from outside.
type OptionSpec struct {
	S0    float64    `json:"s0"`    // Spot reference
	K     float64    `json:"k"`     // Strike
	T     float64    `json:"t"`     // Maturity in years
	R     float64    `json:"r"`     // Continuously compounded risk-free rate
	Sigma float64    `json:"sigma"` // Pricing volatility
	Type  OptionType `json:"type"`
	Q     float64    `json:"q"` // Dividend yield
}

func (o OptionSpec) Validate() error {
	if err := validateInputs(o.S0, o.K, o.T, o.Sigma); err != nil {
		return err
	}
	return validateType(o.Type)
}

// Price is the Black-Scholes-Merton value at inception.
func (o OptionSpec) Price() (float64, error) {
	return Price(o.S0, o.K, o.T, o.R, o.Sigma, o.Type, o.Q)
}

// Greeks evaluates price and all sensitivities at inception.
func (o OptionSpec) Greeks() (BSMResult, error) {
	if err := o.Validate(); err != nil {
		return BSMResult{}, err
	}
	return calculateBSM(o.S0, o.K, o.T, o.R, o.Sigma, o.Type, o.Q), nil
}

type BSMResult struct {
	Price float64 `json:"price"`
	D1    float64 `json:"d1"`
	D2    float64 `json:"d2"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

func validateInputs(S, K, T, sigma float64) error {
	switch {
	case sigma <= 0:
		return errors.Wrapf(ErrInvalidParameter, "volatility must be positive, got %v", sigma)
	case T < 0:
		return errors.Wrapf(ErrInvalidParameter, "maturity must be non-negative, got %v", T)
	case K <= 0:
		return errors.Wrapf(ErrInvalidParameter, "strike must be positive, got %v", K)
	case S <= 0:
		return errors.Wrapf(ErrInvalidParameter, "spot must be positive, got %v", S)
	}
	return nil
}

func validateType(optionType OptionType) error {
	if optionType != Call && optionType != Put {
		return errors.Wrapf(ErrInvalidParameter, "option type must be 'call' or 'put', got %q", optionType)
	}
	return nil
}
