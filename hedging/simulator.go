package hedging

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/positions"
)

// Simulator hedges an option along freshly drawn real-world paths.
type Simulator struct {
	Spec   positions.OptionSpec
	Config HedgeConfig

	// Model draws the real-world path. Nil means GBM(S0, Mu, SigmaA).
	Model models.Process
}

func NewSimulator(spec positions.OptionSpec, cfg HedgeConfig) *Simulator {
	return &Simulator{Spec: spec, Config: cfg}
}

// WithModel swaps the real-world process, e.g. a jump diffusion to study
// hedging under model risk.
func (s *Simulator) WithModel(model models.Process) *Simulator {
	s.Model = model
	return s
}

func (s *Simulator) Validate() error {
	if err := s.Spec.Validate(); err != nil {
		return err
	}
	if err := s.Config.validateSimulation(); err != nil {
		return err
	}
	if s.Config.Dt > s.Spec.T {
		return errors.Wrapf(positions.ErrInvalidParameter, "time step %v exceeds maturity %v", s.Config.Dt, s.Spec.T)
	}
	return nil
}

func (s *Simulator) process() models.Process {
	if s.Model != nil {
		return s.Model
	}
	return models.GeometricBrownianMotion{S0: s.Spec.S0, Mu: s.Config.Mu, Sigma: s.Config.SigmaA}
}

// DrawPath samples one real-world path on the configured grid.
func (s *Simulator) DrawPath(rng *rand.Rand) models.Path {
	return s.process().Simulate(s.Spec.T, s.Config.Dt, rng)
}

func (s *Simulator) RunLedger(rng *rand.Rand) (Ledger, error) {
	if err := s.Validate(); err != nil {
		return Ledger{}, err
	}
	return Replicate(s.Spec, s.Config, s.DrawPath(rng))
}

// Run draws one path and returns its terminal replication PnL.
func (s *Simulator) Run(rng *rand.Rand) (float64, error) {
	ledger, err := s.RunLedger(rng)
	if err != nil {
		return 0, err
	}
	return ledger.PnL(), nil
}

// RunPath draws one path and returns its cumulative PnL.
func (s *Simulator) RunPath(rng *rand.Rand) (PnLPath, error) {
	ledger, err := s.RunLedger(rng)
	if err != nil {
		return nil, err
	}
	return ledger.Path(), nil
}
