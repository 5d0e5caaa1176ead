package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shirou/gopsutil/cpu"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/probability"
)

func init() {
	addSimulationFlags(MonteCarloCmd)
	MonteCarloCmd.Flags().Int("simulations", 1000, "number of hedged paths")
	MonteCarloCmd.Flags().Int("workers", 0, "worker goroutines, defaults to GOMAXPROCS")
	MonteCarloCmd.Flags().String("path-file", "", "hedge the prices in this JSON array in every trial")
	MonteCarloCmd.Flags().Bool("distribution", false, "include every terminal PnL")
	MonteCarloCmd.Flags().Bool("no-progress", false, "hide the progress bar")
	RootCmd.AddCommand(MonteCarloCmd)
}

var MonteCarloCmd = &cobra.Command{
	Use:   "mc",
	Short: "Monte Carlo distribution of the delta-hedging PnL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sim, err := cfg.Simulator()
		if err != nil {
			return err
		}

		opts := []probability.Option{probability.WithSeed(cfg.Seed)}
		if cfg.Workers > 0 {
			opts = append(opts, probability.WithWorkers(cfg.Workers))
		}

		pathFile, err := cmd.Flags().GetString("path-file")
		if err != nil {
			return err
		}
		if pathFile != "" {
			prices, err := readPath(pathFile)
			if err != nil {
				return err
			}
			opts = append(opts, probability.WithFixedPath(models.Path(prices)))
		}

		distribution, err := cmd.Flags().GetBool("distribution")
		if err != nil {
			return err
		}
		if distribution {
			opts = append(opts, probability.KeepDistribution())
		}

		var (
			p   *mpb.Progress
			bar *mpb.Bar
		)
		if !viper.GetBool("no-progress") && cfg.NumSims > 0 {
			p = mpb.New(mpb.WithWidth(64), mpb.WithOutput(os.Stderr))
			bar = p.AddBar(int64(cfg.NumSims),
				mpb.PrependDecorators(
					decor.Name("Trials"),
					decor.Percentage(decor.WCSyncSpace),
				),
				mpb.AppendDecorators(
					decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
				),
			)
			opts = append(opts, probability.WithProgress(func() { bar.Increment() }))
		}

		log.Infof("running %d hedged paths, seed %d", cfg.NumSims, cfg.Seed)
		// first sample only sets the baseline for the one after the run
		cpu.Percent(0, false)
		result, err := probability.MonteCarloPnL(sim, cfg.NumSims, opts...)
		if usage, cpuErr := cpu.Percent(0, false); cpuErr == nil && len(usage) > 0 {
			log.Debugf("cpu usage during the run: %.2f%%", usage[0])
		}
		if p != nil {
			if err != nil {
				bar.Abort(false)
			}
			p.Wait()
		}
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"mean":    result.Mean,
			"std_err": result.StdErr,
		}).Infof("zero inside the 95%% interval: %v", result.ContainsZero())
		return writeOutput(result, func() table.Writer { return monteCarloTable(result) })
	},
}
