package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/bcdannyboy/dhedge/hedging"
	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/positions"
)

const EnvPrefix = "DHEDGE"

var ErrUnknownModel = errors.New("unknown process model")

// ModelParams holds the parameters of the alternative real-world processes.
// Fields a model does not use are ignored.
type ModelParams struct {
	Mean     float64 `json:"mean"`      // Long-run level for ou, vasicek, cir
	Speed    float64 `json:"speed"`     // Mean reversion speed for ou, vasicek, cir
	Lambda   float64 `json:"lambda"`    // Jump intensity for merton, kou
	JumpMean float64 `json:"jump_mean"` // Mean log jump for merton
	JumpVol  float64 `json:"jump_vol"`  // Log jump volatility for merton
	JumpProb float64 `json:"jump_prob"` // Upward jump probability for kou
	Eta1     float64 `json:"eta1"`      // Upward jump rate for kou
	Eta2     float64 `json:"eta2"`      // Downward jump rate for kou
	V0       float64 `json:"v0"`        // Initial variance for heston
	Kappa    float64 `json:"kappa"`
	Theta    float64 `json:"theta"`
	Xi       float64 `json:"xi"`
	Rho      float64 `json:"rho"`
}

type RunConfig struct {
	Spec     positions.OptionSpec `json:"option"`
	Mu       float64              `json:"mu"`
	Dt       float64              `json:"dt"`
	Position float64              `json:"position"`
	SigmaH   *float64             `json:"sigma_h,omitempty"`
	SigmaA   *float64             `json:"sigma_a,omitempty"`
	Model    string               `json:"model"`
	Params   ModelParams          `json:"params"`
	NumSims  int                  `json:"simulations"`
	Workers  int                  `json:"workers"`
	Seed     uint64               `json:"seed"`
	Seeded   bool                 `json:"-"`
}

// SetDefaults registers an at-the-money one-year call used when nothing else is
// configured.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("s0", 100.0)
	v.SetDefault("strike", 100.0)
	v.SetDefault("maturity", 1.0)
	v.SetDefault("rate", 0.05)
	v.SetDefault("sigma", 0.2)
	v.SetDefault("dividend", 0.0)
	v.SetDefault("type", string(positions.Call))
	v.SetDefault("mu", 0.05)
	v.SetDefault("dt", 1.0/252)
	v.SetDefault("position", 1.0)
	v.SetDefault("model", "gbm")
	v.SetDefault("simulations", 1000)
	v.SetDefault("workers", 0)
}

// BindEnv makes every key readable from DHEDGE_* variables, with dashes
// mapped to underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load assembles a RunConfig from v and validates the option contract.
func Load(v *viper.Viper) (RunConfig, error) {
	optionType, err := positions.ParseOptionType(v.GetString("type"))
	if err != nil {
		return RunConfig{}, err
	}

	cfg := RunConfig{
		Spec: positions.OptionSpec{
			S0:    v.GetFloat64("s0"),
			K:     v.GetFloat64("strike"),
			T:     v.GetFloat64("maturity"),
			R:     v.GetFloat64("rate"),
			Sigma: v.GetFloat64("sigma"),
			Type:  optionType,
			Q:     v.GetFloat64("dividend"),
		},
		Mu:       v.GetFloat64("mu"),
		Dt:       v.GetFloat64("dt"),
		Position: v.GetFloat64("position"),
		Model:    strings.ToLower(strings.TrimSpace(v.GetString("model"))),
		Params: ModelParams{
			Mean:     v.GetFloat64("mean"),
			Speed:    v.GetFloat64("speed"),
			Lambda:   v.GetFloat64("lambda"),
			JumpMean: v.GetFloat64("jump-mean"),
			JumpVol:  v.GetFloat64("jump-vol"),
			JumpProb: v.GetFloat64("jump-prob"),
			Eta1:     v.GetFloat64("eta1"),
			Eta2:     v.GetFloat64("eta2"),
			V0:       v.GetFloat64("v0"),
			Kappa:    v.GetFloat64("kappa"),
			Theta:    v.GetFloat64("theta"),
			Xi:       v.GetFloat64("xi"),
			Rho:      v.GetFloat64("rho"),
		},
		NumSims: v.GetInt("simulations"),
		Workers: v.GetInt("workers"),
	}

	if v.IsSet("sigma-h") {
		sigma := v.GetFloat64("sigma-h")
		cfg.SigmaH = &sigma
	}
	if v.IsSet("sigma-a") {
		sigma := v.GetFloat64("sigma-a")
		cfg.SigmaA = &sigma
	}
	if v.IsSet("seed") {
		cfg.Seed = v.GetUint64("seed")
		cfg.Seeded = true
	}

	if err := cfg.Spec.Validate(); err != nil {
		return RunConfig{}, errors.Wrap(err, "option")
	}
	return cfg, nil
}

// Hedge resolves the optional volatilities against the pricing volatility.
func (c RunConfig) Hedge() hedging.HedgeConfig {
	var opts []hedging.HedgeOption
	if c.SigmaH != nil {
		opts = append(opts, hedging.WithHedgingVol(*c.SigmaH))
	}
	if c.SigmaA != nil {
		opts = append(opts, hedging.WithActualVol(*c.SigmaA))
	}
	return hedging.NewHedgeConfig(c.Spec, c.Mu, c.Dt, c.Position, opts...)
}

// Process builds the real-world model named by Model. The diffusion
// volatility is the resolved actual volatility and the start value is S0.
func (c RunConfig) Process() (models.Process, error) {
	h := c.Hedge()
	p := c.Params
	s0 := c.Spec.S0

	switch c.Model {
	case "", "gbm":
		return models.GeometricBrownianMotion{S0: s0, Mu: h.Mu, Sigma: h.SigmaA}, nil
	case "bm":
		return models.ArithmeticBrownianMotion{S0: s0, Mu: h.Mu, Sigma: h.SigmaA}, nil
	case "ou":
		return models.OrnsteinUhlenbeck{S0: s0, Mean: p.Mean, Speed: p.Speed, Sigma: h.SigmaA}, nil
	case "vasicek":
		return models.Vasicek{R0: s0, Speed: p.Speed, Mean: p.Mean, Sigma: h.SigmaA}, nil
	case "cir":
		return models.CoxIngersollRoss{R0: s0, Speed: p.Speed, Mean: p.Mean, Sigma: h.SigmaA}, nil
	case "merton":
		return models.MertonJumpDiffusion{
			S0: s0, Mu: h.Mu, Sigma: h.SigmaA,
			Lambda: p.Lambda, Jump: p.JumpMean, Delta: p.JumpVol,
		}, nil
	case "kou":
		return models.KouJumpDiffusion{
			S0: s0, Mu: h.Mu, Sigma: h.SigmaA,
			Lambda: p.Lambda, P: p.JumpProb, Eta1: p.Eta1, Eta2: p.Eta2,
		}, nil
	case "heston":
		return models.HestonModel{
			S0: s0, Mu: h.Mu, V0: p.V0,
			Kappa: p.Kappa, Theta: p.Theta, Xi: p.Xi, Rho: p.Rho,
		}, nil
	}
	return nil, errors.Wrapf(ErrUnknownModel, "%q", c.Model)
}

// Simulator wires the option, the hedge and the chosen model together.
func (c RunConfig) Simulator() (*hedging.Simulator, error) {
	process, err := c.Process()
	if err != nil {
		return nil, err
	}
	return hedging.NewSimulator(c.Spec, c.Hedge()).WithModel(process), nil
}
