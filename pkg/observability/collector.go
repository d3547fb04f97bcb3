package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/scenario"
)

// Collector owns the solver's Prometheus instruments. Create one per
// registry; registering the same metrics twice panics inside promauto.
type Collector struct {
	steps       *prometheus.CounterVec
	stepSeconds *prometheus.HistogramVec
	runs        *prometheus.CounterVec
	runSeconds  *prometheus.HistogramVec
}

// NewCollector registers the solver metrics on reg. A nil reg falls
// back to the default registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_steps_total",
			Help: "Completed integration steps per backend.",
		}, []string{"backend"}),
		stepSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lattice_step_duration_seconds",
			Help:    "Wall time of single integration steps.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 2, 18),
		}, []string{"backend"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_runs_total",
			Help: "Completed scenario runs per backend and outcome.",
		}, []string{"backend", "status"}),
		runSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lattice_run_duration_seconds",
			Help:    "Wall time of whole scenario runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),
	}
}

// Hooks returns driver hooks that record each step under the given
// backend label.
func (c *Collector) Hooks(backend string) ports.Hooks {
	steps := c.steps.WithLabelValues(backend)
	durations := c.stepSeconds.WithLabelValues(backend)

	return ports.Hooks{
		OnStepDone: func(_ int, elapsed time.Duration) {
			steps.Inc()
			durations.Observe(elapsed.Seconds())
		},
	}
}

// ObserveRun records the outcome and duration of one scenario run.
func (c *Collector) ObserveRun(backend string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.runs.WithLabelValues(backend, status).Inc()
	if err == nil {
		c.runSeconds.WithLabelValues(backend).Observe(elapsed.Seconds())
	}
}

// WrapRunner returns a runner that records every RunScenario call on c.
func WrapRunner(inner ports.Runner, c *Collector) ports.Runner {
	return &observedRunner{inner: inner, collector: c}
}

type observedRunner struct {
	inner     ports.Runner
	collector *Collector
}

func (o *observedRunner) RunScenario(ctx context.Context, sc *scenario.Scenario) (ports.RunRecord, *grid.Field, error) {
	start := time.Now()
	rec, res, err := o.inner.RunScenario(ctx, sc)

	label := rec.Backend
	if label == "" && sc != nil {
		label = sc.Backend
	}
	o.collector.ObserveRun(label, time.Since(start), err)

	return rec, res, err
}
