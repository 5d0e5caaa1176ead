package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bcdannyboy/dhedge/positions"
)

type priceReport struct {
	Option     positions.OptionSpec `json:"option"`
	Greeks     positions.BSMResult  `json:"greeks"`
	ImpliedVol *float64             `json:"implied_vol,omitempty"`
	Ladder     *strikeLadder        `json:"ladder,omitempty"`
}

type strikeLadder struct {
	Strikes []float64 `json:"strikes"`
	Prices  []float64 `json:"prices"`
	Deltas  []float64 `json:"deltas"`
	Gammas  []float64 `json:"gammas"`
	Vegas   []float64 `json:"vegas"`
}

func init() {
	PriceCmd.Flags().Float64("market-price", 0, "solve the implied volatility of this premium")
	PriceCmd.Flags().Float64Slice("strikes", nil, "also price a ladder of strikes, e.g. 90,100,110")
	RootCmd.AddCommand(PriceCmd)
}

var PriceCmd = &cobra.Command{
	Use:   "price",
	Short: "Black-Scholes-Merton price and greeks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		spec := cfg.Spec

		greeks, err := spec.Greeks()
		if err != nil {
			return err
		}
		report := priceReport{Option: spec, Greeks: greeks}

		marketPrice, err := cmd.Flags().GetFloat64("market-price")
		if err != nil {
			return err
		}
		if marketPrice > 0 {
			iv, err := positions.ImpliedVolatility(marketPrice, spec.S0, spec.K, spec.T, spec.R, spec.Type, spec.Q)
			if err != nil {
				return err
			}
			log.Debugf("implied volatility of %v is %v", marketPrice, iv)
			report.ImpliedVol = &iv
		}

		strikes, err := cmd.Flags().GetFloat64Slice("strikes")
		if err != nil {
			return err
		}
		if len(strikes) > 0 {
			ladder, err := priceLadder(spec, strikes)
			if err != nil {
				return err
			}
			report.Ladder = ladder
		}

		return writeOutput(report, func() table.Writer { return priceTable(report) })
	},
}

func priceLadder(spec positions.OptionSpec, strikes []float64) (*strikeLadder, error) {
	batch := positions.Batch{
		S:     positions.Scalar(spec.S0),
		K:     strikes,
		T:     positions.Scalar(spec.T),
		R:     positions.Scalar(spec.R),
		Sigma: positions.Scalar(spec.Sigma),
		Q:     positions.Scalar(spec.Q),
	}

	ladder := &strikeLadder{Strikes: strikes}
	var err error
	if ladder.Prices, err = batch.Price(spec.Type); err != nil {
		return nil, err
	}
	if ladder.Deltas, err = batch.Delta(spec.Type); err != nil {
		return nil, err
	}
	if ladder.Gammas, err = batch.Gamma(); err != nil {
		return nil, err
	}
	if ladder.Vegas, err = batch.Vega(); err != nil {
		return nil, err
	}
	return ladder, nil
}
