package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/bcdannyboy/dhedge/hedging"
	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/positions"
)

type hedgeReport struct {
	Option      positions.OptionSpec `json:"option"`
	Hedge       hedging.HedgeConfig  `json:"hedge"`
	Seed        uint64               `json:"seed,omitempty"`
	PnL         float64              `json:"pnl"`
	RealizedVol float64              `json:"realized_vol"`
	PnLPath     hedging.PnLPath      `json:"pnl_path,omitempty"`
	Ledger      *hedging.Ledger      `json:"ledger,omitempty"`
}

func init() {
	addSimulationFlags(HedgeCmd)
	HedgeCmd.Flags().String("path-file", "", "hedge the prices in this JSON array instead of a simulated path")
	HedgeCmd.Flags().Bool("pnl-path", false, "include the cumulative PnL at every step")
	HedgeCmd.Flags().Bool("ledger", false, "include every rebalancing cash flow")
	RootCmd.AddCommand(HedgeCmd)
}

var HedgeCmd = &cobra.Command{
	Use:   "hedge",
	Short: "delta-hedge one option along a simulated or supplied path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pathFile, err := cmd.Flags().GetString("path-file")
		if err != nil {
			return err
		}
		withPath, err := cmd.Flags().GetBool("pnl-path")
		if err != nil {
			return err
		}
		withLedger, err := cmd.Flags().GetBool("ledger")
		if err != nil {
			return err
		}

		report := hedgeReport{Option: cfg.Spec, Hedge: cfg.Hedge()}

		var path models.Path
		if pathFile != "" {
			prices, err := readPath(pathFile)
			if err != nil {
				return err
			}
			path = prices
			log.Infof("hedging %d prices from %s", len(path), pathFile)
		} else {
			sim, err := cfg.Simulator()
			if err != nil {
				return err
			}
			if err := sim.Validate(); err != nil {
				return err
			}
			path = sim.DrawPath(rand.New(rand.NewSource(cfg.Seed)))
			report.Seed = cfg.Seed
		}

		ledger, err := hedging.Replicate(cfg.Spec, report.Hedge, path)
		if err != nil {
			return err
		}

		report.PnL = ledger.PnL()
		report.RealizedVol = models.RealizedVolatility(path, cfg.Spec.T/float64(len(path)-1))
		if withPath {
			report.PnLPath = ledger.Path()
		}
		if withLedger {
			report.Ledger = &ledger
		}

		log.WithField("pnl", report.PnL).Infof("hedged %s over %d rebalances", cfg.Spec.Type, len(path)-1)
		return writeResult(report)
	},
}
