package positions

import (
	"github.com/pkg/errors"
)

// Batch holds column-wise inputs for element-wise evaluation. Every column
// must have length 1 (broadcast to all rows) or the common length n. A nil Q
// column means no dividend yield.
type Batch struct {
	S     []float64
	K     []float64
	T     []float64
	R     []float64
	Sigma []float64
	Q     []float64
}

// Scalar wraps a single value as a broadcastable column.
func Scalar(v float64) []float64 {
	return []float64{v}
}

// Len returns the broadcast length of the batch.
func (b Batch) Len() (int, error) {
	columns := []struct {
		name string
		data []float64
	}{
		{"S", b.S},
		{"K", b.K},
		{"T", b.T},
		{"R", b.R},
		{"Sigma", b.Sigma},
		{"Q", b.Q},
	}

	n := 1
	for _, c := range columns {
		if c.name != "Q" && len(c.data) == 0 {
			return 0, errors.Wrapf(ErrShapeMismatch, "column %s is empty", c.name)
		}
		if len(c.data) > 1 {
			if n > 1 && len(c.data) != n {
				return 0, errors.Wrapf(ErrShapeMismatch, "column %s has length %d, expected 1 or %d", c.name, len(c.data), n)
			}
			n = len(c.data)
		}
	}
	return n, nil
}

type row struct {
	s, k, t, r, sigma, q float64
}

func pick(col []float64, i int) float64 {
	switch len(col) {
	case 0:
		return 0
	case 1:
		return col[0]
	}
	return col[i]
}

func (b Batch) row(i int) row {
	return row{
		s:     pick(b.S, i),
		k:     pick(b.K, i),
		t:     pick(b.T, i),
		r:     pick(b.R, i),
		sigma: pick(b.Sigma, i),
		q:     pick(b.Q, i),
	}
}

func (b Batch) each(fn func(row) float64) ([]float64, error) {
	n, err := b.Len()
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = fn(b.row(i))
	}
	return out, nil
}

func (b Batch) D1() ([]float64, error) {
	return b.each(func(x row) float64 { return D1(x.s, x.k, x.t, x.r, x.sigma, x.q) })
}

func (b Batch) D2() ([]float64, error) {
	return b.each(func(x row) float64 { return D2(x.s, x.k, x.t, x.r, x.sigma, x.q) })
}

// Price rejects the whole batch if any row is invalid.
func (b Batch) Price(optionType OptionType) ([]float64, error) {
	if err := validateType(optionType); err != nil {
		return nil, err
	}

	n, err := b.Len()
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		x := b.row(i)
		if err := validateInputs(x.s, x.k, x.t, x.sigma); err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}

	return b.each(func(x row) float64 {
		return calculateOptionPrice(x.s, x.k, x.t, x.r, x.sigma, optionType, x.q)
	})
}

func (b Batch) Delta(optionType OptionType) ([]float64, error) {
	return b.each(func(x row) float64 { return Delta(x.s, x.k, x.t, x.r, x.sigma, optionType, x.q) })
}

func (b Batch) Gamma() ([]float64, error) {
	return b.each(func(x row) float64 { return Gamma(x.s, x.k, x.t, x.r, x.sigma, x.q) })
}

func (b Batch) Vega() ([]float64, error) {
	return b.each(func(x row) float64 { return Vega(x.s, x.k, x.t, x.r, x.sigma, x.q) })
}

func (b Batch) Theta(optionType OptionType) ([]float64, error) {
	return b.each(func(x row) float64 { return Theta(x.s, x.k, x.t, x.r, x.sigma, optionType, x.q) })
}

func (b Batch) Rho(optionType OptionType) ([]float64, error) {
	return b.each(func(x row) float64 { return Rho(x.s, x.k, x.t, x.r, x.sigma, optionType, x.q) })
}
