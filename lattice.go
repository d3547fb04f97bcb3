package lattice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jdahm/lattice/internal/integrate"
	"github.com/jdahm/lattice/internal/logging"
	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/scenario"
	"github.com/jdahm/lattice/pkg/stencil"
)

// Solver is the high-level entry point for the lattice library.
// It binds a kernel backend, an optional run store and step hooks
// behind one facade so CLIs and servers share the same orchestration.
type Solver struct {
	registry    *backend.Registry
	kernel      ports.Kernel
	injected    bool
	backendName string
	store       ports.RunStore
	hooks       ports.Hooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Solver.
type Option func(*Solver)

// WithBackend selects the kernel by registry name. The default is the
// vector backend.
func WithBackend(name string) Option {
	return func(s *Solver) {
		s.backendName = name
	}
}

// WithKernel injects a custom kernel, bypassing the registry. A kernel
// set this way also overrides the backend named by scenarios.
func WithKernel(k ports.Kernel) Option {
	return func(s *Solver) {
		s.kernel = k
		s.injected = true
	}
}

// WithRegistry resolves backend names from a custom registry instead of
// the built-in one.
func WithRegistry(reg *backend.Registry) Option {
	return func(s *Solver) {
		s.registry = reg
	}
}

// WithStore persists a run record after every completed scenario run.
func WithStore(store ports.RunStore) Option {
	return func(s *Solver) {
		s.store = store
	}
}

// WithHooks registers step observers passed to every run.
func WithHooks(hooks ports.Hooks) Option {
	return func(s *Solver) {
		s.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the solver.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// New initializes a new Solver. Unless a kernel is injected, the
// default backend is resolved from the registry up front so a bad name
// fails here rather than mid-run.
func New(opts ...Option) (*Solver, error) {
	s := &Solver{
		registry:    backend.Default(),
		backendName: backend.Vector,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	if s.kernel == nil {
		kernel, err := s.registry.New(s.backendName)
		if err != nil {
			return nil, err
		}
		s.kernel = kernel
	}

	return s, nil
}

// Kernel returns the solver's default kernel.
func (s *Solver) Kernel() ports.Kernel {
	return s.kernel
}

// Store returns the configured run store, or nil.
func (s *Solver) Store() ports.RunStore {
	return s.store
}

// Backends lists the backend names the solver can resolve.
func (s *Solver) Backends() []string {
	return s.registry.Names()
}

// Run integrates steps updates of in and out with the solver's default
// kernel. It exposes the raw double-buffer contract: the returned field
// is in for an even step count, out for odd.
func (s *Solver) Run(ctx context.Context, in, out *grid.Field, p stencil.Params, steps int) (*grid.Field, error) {
	return integrate.Run(ctx, s.kernel, in, out, p, steps,
		integrate.WithLogger(s.logger),
		integrate.WithHooks(s.hooks),
	)
}

// RunScenario validates sc, allocates its buffers, applies the initial
// condition, integrates, and returns the run record together with the
// final field. The scenario's backend field picks the kernel unless one
// was injected with WithKernel.
//
// When a store is configured the record is saved before returning; if
// that save fails, the returned record and field are still valid and
// the error reports the storage failure.
func (s *Solver) RunScenario(ctx context.Context, sc *scenario.Scenario) (ports.RunRecord, *grid.Field, error) {
	if sc == nil {
		return ports.RunRecord{}, nil, fmt.Errorf("scenario is required")
	}
	if err := sc.Validate(nil); err != nil {
		return ports.RunRecord{}, nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	kernel := s.kernel
	if !s.injected && sc.Backend != "" {
		resolved, err := s.registry.New(sc.Backend)
		if err != nil {
			return ports.RunRecord{}, nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		kernel = resolved
	}

	in, out, err := sc.Build()
	if err != nil {
		return ports.RunRecord{}, nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	started := time.Now()
	s.logger.Info("scenario starting",
		"scenario", sc.Name,
		"backend", kernel.Name(),
		"grid", fmt.Sprintf("%dx%dx%d", sc.Grid.NX, sc.Grid.NY, sc.Grid.NZ),
		"steps", sc.Steps,
	)

	res, err := integrate.Run(ctx, kernel, in, out, sc.Params, sc.Steps,
		integrate.WithLogger(s.logger),
		integrate.WithHooks(s.hooks),
	)
	if err != nil {
		return ports.RunRecord{}, nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}

	rec := ports.RunRecord{
		ID:        uuid.NewString(),
		Scenario:  sc.Name,
		Backend:   kernel.Name(),
		NX:        sc.Grid.NX,
		NY:        sc.Grid.NY,
		NZ:        sc.Grid.NZ,
		Halo:      sc.Grid.Halo,
		Params:    sc.Params,
		Steps:     sc.Steps,
		Checksum:  res.Sum(),
		MaxValue:  res.Max(),
		Elapsed:   time.Since(started),
		StartedAt: started,
	}

	s.logger.Info("scenario finished",
		"run_id", rec.ID,
		"elapsed", rec.Elapsed,
		"checksum", rec.Checksum,
		"max", rec.MaxValue,
	)

	if s.store != nil {
		if err := s.store.Save(ctx, rec); err != nil {
			return rec, res, fmt.Errorf("save run record %s: %w", rec.ID, err)
		}
	}

	return rec, res, nil
}
