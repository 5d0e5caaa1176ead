package cmd

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bcdannyboy/dhedge/config"
)

var RootCmd = &cobra.Command{
	Use:   "dhedge",
	Short: "stochastic paths, option greeks and delta-hedge replication",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// parent persistent flags are merged into cmd.Flags() once parsed
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		}

		dotenv := viper.GetString("dotenv")
		if err := godotenv.Load(dotenv); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			log.Debugf("no dotenv file at %s", dotenv)
		}

		if configFile := viper.GetString("config"); configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
			log.Debugf("loaded config file %s", viper.ConfigFileUsed())
		}

		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("config", "", "yaml, toml or json file with run parameters")
	RootCmd.PersistentFlags().String("dotenv", ".env", "dotenv file with DHEDGE_* variables")
	RootCmd.PersistentFlags().String("output", "", "write the result to this file instead of stdout")
	RootCmd.PersistentFlags().String("format", formatJSON, "output format for price and mc: json or table")

	RootCmd.PersistentFlags().Float64("s0", 100, "spot price at inception")
	RootCmd.PersistentFlags().Float64("strike", 100, "strike price")
	RootCmd.PersistentFlags().Float64("maturity", 1, "time to maturity in years")
	RootCmd.PersistentFlags().Float64("rate", 0.05, "continuously compounded risk-free rate")
	RootCmd.PersistentFlags().Float64("sigma", 0.2, "pricing volatility")
	RootCmd.PersistentFlags().Float64("dividend", 0, "continuous dividend yield")
	RootCmd.PersistentFlags().String("type", "call", "option type: call or put")
}

// addSimulationFlags registers the hedge and real-world model flags shared by
// the path, hedge and mc commands.
func addSimulationFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Float64("mu", 0.05, "real-world drift")
	flags.Float64("dt", 1.0/252, "time step in years")
	flags.Float64("position", 1, "signed number of options held")
	flags.Float64("sigma-h", 0, "hedging volatility, defaults to --sigma")
	flags.Float64("sigma-a", 0, "actual path volatility, defaults to --sigma")
	flags.Uint64("seed", 0, "random seed, defaults to the clock")
	flags.String("model", "gbm", "real-world model: gbm, bm, ou, vasicek, cir, merton, kou, heston")

	flags.Float64("mean", 0, "long-run level for ou, vasicek and cir")
	flags.Float64("speed", 0, "mean reversion speed for ou, vasicek and cir")
	flags.Float64("lambda", 0, "jump intensity for merton and kou")
	flags.Float64("jump-mean", 0, "mean log jump size for merton")
	flags.Float64("jump-vol", 0, "log jump volatility for merton")
	flags.Float64("jump-prob", 0, "probability of an upward jump for kou")
	flags.Float64("eta1", 0, "upward jump rate for kou")
	flags.Float64("eta2", 0, "downward jump rate for kou")
	flags.Float64("v0", 0, "initial variance for heston")
	flags.Float64("kappa", 0, "variance mean reversion speed for heston")
	flags.Float64("theta", 0, "long-run variance for heston")
	flags.Float64("xi", 0, "volatility of variance for heston")
	flags.Float64("rho", 0, "price/variance correlation for heston")
}

func loadConfig() (config.RunConfig, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.RunConfig{}, err
	}
	if !cfg.Seeded {
		cfg.Seed = uint64(time.Now().UnixNano())
		cfg.Seeded = true
	}
	log.WithField("seed", cfg.Seed).Debugf("loaded %s option, model %s", cfg.Spec.Type, cfg.Model)
	return cfg, nil
}

func Execute() {
	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	log.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
