package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/jdahm/lattice/internal/integrate"
	"github.com/jdahm/lattice/internal/logging"
	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/scenario"
)

// Result holds the timing statistics of one backend over all repetitions,
// plus the numerical cross-check against the baseline backend.
type Result struct {
	Backend string        `json:"backend" yaml:"backend"`
	Reps    int           `json:"reps" yaml:"reps"`
	Mean    time.Duration `json:"mean" yaml:"mean"`
	StdDev  time.Duration `json:"stddev" yaml:"stddev"`
	Min     time.Duration `json:"min" yaml:"min"`
	Max     time.Duration `json:"max" yaml:"max"`

	// MLUPS is million lattice-point updates per second, counting
	// interior points times steps over the mean run time.
	MLUPS float64 `json:"mlups" yaml:"mlups"`

	// Checksum is the interior sum of the final field.
	Checksum float64 `json:"checksum" yaml:"checksum"`

	// MaxDiff is the largest absolute point difference between this
	// backend's final field and the baseline's. Zero for the baseline.
	MaxDiff float64 `json:"max_diff" yaml:"max_diff"`
}

// Report is the outcome of one benchmark run.
type Report struct {
	Scenario string   `json:"scenario" yaml:"scenario"`
	Points   int      `json:"points" yaml:"points"`
	Steps    int      `json:"steps" yaml:"steps"`
	Baseline string   `json:"baseline" yaml:"baseline"`
	Results  []Result `json:"results" yaml:"results"`
}

// Option configures a benchmark run.
type Option func(*config)

type config struct {
	backends []string
	reps     int
	warmup   int
	registry *backend.Registry
	logger   *slog.Logger
}

// WithBackends selects which backends to time, in order. The first one
// is the baseline for the numerical cross-check. Defaults to every
// backend in the registry.
func WithBackends(names ...string) Option {
	return func(c *config) { c.backends = names }
}

// WithReps sets the number of timed repetitions per backend.
// Values below one are raised to one.
func WithReps(n int) Option {
	return func(c *config) { c.reps = n }
}

// WithWarmup sets the number of untimed runs preceding the timed ones.
func WithWarmup(n int) Option {
	return func(c *config) { c.warmup = n }
}

// WithRegistry resolves backends from a custom registry instead of the
// built-in one.
func WithRegistry(reg *backend.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithLogger sets a structured logger for progress reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// Run times sc on each selected backend. Every repetition integrates a
// freshly initialized pair of buffers, so backends never see each
// other's output; allocation and initialization stay outside the timed
// region.
func Run(ctx context.Context, sc *scenario.Scenario, opts ...Option) (*Report, error) {
	cfg := config{
		reps:     5,
		warmup:   1,
		registry: backend.Default(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.reps < 1 {
		cfg.reps = 1
	}
	if cfg.warmup < 0 {
		cfg.warmup = 0
	}
	if len(cfg.backends) == 0 {
		cfg.backends = cfg.registry.Names()
	}

	if err := sc.Validate(nil); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	points := sc.Grid.NX * sc.Grid.NY * sc.Grid.NZ
	report := &Report{
		Scenario: sc.Name,
		Points:   points,
		Steps:    sc.Steps,
		Baseline: cfg.backends[0],
		Results:  make([]Result, 0, len(cfg.backends)),
	}

	var baseline *grid.Field
	for _, name := range cfg.backends {
		kernel, err := cfg.registry.New(name)
		if err != nil {
			return nil, err
		}

		cfg.logger.Debug("benchmarking backend",
			"backend", name, "reps", cfg.reps, "warmup", cfg.warmup)

		var final *grid.Field
		seconds := make([]float64, 0, cfg.reps)
		for rep := 0; rep < cfg.warmup+cfg.reps; rep++ {
			in, out, err := sc.Build()
			if err != nil {
				return nil, err
			}

			start := time.Now()
			res, err := integrate.Run(ctx, kernel, in, out, sc.Params, sc.Steps)
			if err != nil {
				return nil, fmt.Errorf("backend %q: %w", name, err)
			}
			if rep >= cfg.warmup {
				seconds = append(seconds, time.Since(start).Seconds())
			}
			final = res
		}

		mean := stat.Mean(seconds, nil)
		stddev := 0.0
		if len(seconds) > 1 {
			stddev = stat.StdDev(seconds, nil)
		}

		result := Result{
			Backend:  name,
			Reps:     cfg.reps,
			Mean:     floatSeconds(mean),
			StdDev:   floatSeconds(stddev),
			Min:      floatSeconds(floats.Min(seconds)),
			Max:      floatSeconds(floats.Max(seconds)),
			Checksum: final.Sum(),
		}
		if mean > 0 {
			result.MLUPS = float64(points) * float64(sc.Steps) / mean / 1e6
		}

		if baseline == nil {
			baseline = final.Clone()
		} else {
			diff, err := grid.MaxAbsDiff(baseline, final)
			if err != nil {
				return nil, err
			}
			result.MaxDiff = diff
		}

		cfg.logger.Info("backend timed",
			"backend", name, "mean", result.Mean, "mlups", result.MLUPS)

		report.Results = append(report.Results, result)
	}

	return report, nil
}

func floatSeconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
