package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/bcdannyboy/dhedge/models"
)

type pathReport struct {
	Model  string      `json:"model"`
	Seed   uint64      `json:"seed"`
	Times  []float64   `json:"times"`
	Values models.Path `json:"values"`
}

func init() {
	addSimulationFlags(PathCmd)
	RootCmd.AddCommand(PathCmd)
}

var PathCmd = &cobra.Command{
	Use:   "path",
	Short: "simulate one path of a stochastic process over the option's life",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		sim, err := cfg.Simulator()
		if err != nil {
			return err
		}
		// the generators panic on a degenerate grid
		if err := sim.Validate(); err != nil {
			return err
		}

		grid := models.NewTimeGrid(cfg.Spec.T, cfg.Dt)
		values := sim.DrawPath(rand.New(rand.NewSource(cfg.Seed)))
		log.Debugf("simulated %d steps of %s", grid.Steps(), sim.Model.Name())

		return writeResult(pathReport{
			Model:  sim.Model.Name(),
			Seed:   cfg.Seed,
			Times:  grid.Times,
			Values: values,
		})
	},
}
