package probability

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/bcdannyboy/dhedge/hedging"
	"github.com/bcdannyboy/dhedge/models"
	"github.com/bcdannyboy/dhedge/positions"
)

const (
	confidenceLevel = 0.95
	zScore95        = 1.959963984540054
	jobBatchSize    = 1000
)

var ErrInvalidSimulations = errors.New("number of simulations must be at least 1")

type MonteCarloResult struct {
	Simulations       int       `json:"simulations"`
	Seed              uint64    `json:"seed"`
	Mean              float64   `json:"mean"`
	StdDev            float64   `json:"std_dev"`
	StdErr            float64   `json:"std_err"`
	ConfidenceLow     float64   `json:"confidence_low"`  // 95% interval for the mean
	ConfidenceHigh    float64   `json:"confidence_high"` // 95% interval for the mean
	VaR95             float64   `json:"var_95"`
	ExpectedShortfall float64   `json:"expected_shortfall_95"`
	PnLs              []float64 `json:"pnls,omitempty"`
}

// ContainsZero reports whether zero lies inside the 95% interval of the mean.
func (r MonteCarloResult) ContainsZero() bool {
	return r.ConfidenceLow <= 0 && 0 <= r.ConfidenceHigh
}

type options struct {
	seed         uint64
	seeded       bool
	workers      int
	fixedPath    models.Path
	distribution bool
	progress     func()
}

type Option func(*options)

// WithSeed fixes the root seed; per-trial streams are split from it.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithFixedPath hedges the same caller-supplied path in every trial.
func WithFixedPath(path models.Path) Option {
	return func(o *options) {
		o.fixedPath = path
	}
}

// KeepDistribution retains every terminal PnL in the result.
func KeepDistribution() Option {
	return func(o *options) {
		o.distribution = true
	}
}

// WithProgress is called once per finished trial, from worker goroutines.
func WithProgress(fn func()) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// SplitSeeds derives n independent stream seeds from a root seed.
func SplitSeeds(root uint64, n int) []uint64 {
	rng := rand.New(rand.NewSource(root))
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}
	return seeds
}

// MonteCarloPnL runs nsim independent hedging trials and reduces their
// terminal PnLs to a plain arithmetic mean. Trial i always uses the i-th
// split seed, so the result does not depend on the number of workers.
func MonteCarloPnL(sim *hedging.Simulator, nsim int, opts ...Option) (MonteCarloResult, error) {
	if nsim < 1 {
		return MonteCarloResult{}, errors.Wrapf(ErrInvalidSimulations, "got %d", nsim)
	}

	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = uint64(time.Now().UnixNano())
	}
	if o.workers < 1 {
		o.workers = 1
	}

	if o.fixedPath == nil {
		if err := sim.Validate(); err != nil {
			return MonteCarloResult{}, err
		}
	}

	pnls, err := runTrials(sim, nsim, o)
	if err != nil {
		return MonteCarloResult{}, err
	}

	result := summarize(pnls)
	result.Seed = o.seed
	if o.distribution {
		result.PnLs = pnls
	}
	return result, nil
}

// MeanPnL is the expected hedging PnL of spec hedged under cfg.
func MeanPnL(spec positions.OptionSpec, cfg hedging.HedgeConfig, nsim int, opts ...Option) (float64, error) {
	result, err := MonteCarloPnL(hedging.NewSimulator(spec, cfg), nsim, opts...)
	if err != nil {
		return 0, err
	}
	return result.Mean, nil
}

func runTrials(sim *hedging.Simulator, nsim int, o options) ([]float64, error) {
	seeds := SplitSeeds(o.seed, nsim)
	pnls := make([]float64, nsim)

	var g errgroup.Group
	jobs := make(chan int, jobBatchSize)
	for w := 0; w < o.workers; w++ {
		g.Go(func() error {
			// keep draining after a failure so the feeder never blocks
			var firstErr error
			for i := range jobs {
				pnl, err := runTrial(sim, seeds[i], o.fixedPath)
				if err != nil && firstErr == nil {
					firstErr = errors.Wrapf(err, "trial %d", i)
				}
				pnls[i] = pnl
				if o.progress != nil {
					o.progress()
				}
			}
			return firstErr
		})
	}

	for i := 0; i < nsim; i++ {
		jobs <- i
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pnls, nil
}

func runTrial(sim *hedging.Simulator, seed uint64, fixedPath models.Path) (float64, error) {
	if fixedPath != nil {
		return hedging.DeltaHedge(sim.Spec, sim.Config, fixedPath)
	}
	return sim.Run(rand.New(rand.NewSource(seed)))
}

func summarize(pnls []float64) MonteCarloResult {
	n := float64(len(pnls))
	result := MonteCarloResult{
		Simulations: len(pnls),
		Mean:        stat.Mean(pnls, nil),
	}

	if len(pnls) > 1 {
		result.StdDev = stat.StdDev(pnls, nil)
		result.StdErr = stat.StdErr(result.StdDev, n)
	}
	half := zScore95 * result.StdErr
	result.ConfidenceLow = result.Mean - half
	result.ConfidenceHigh = result.Mean + half

	result.VaR95 = CalculateVaR(pnls, confidenceLevel)
	result.ExpectedShortfall = CalculateExpectedShortfall(pnls, confidenceLevel)
	return result
}
