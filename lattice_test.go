package lattice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdahm/lattice"
	"github.com/jdahm/lattice/internal/testutils"
	"github.com/jdahm/lattice/pkg/adapters/memory"
	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/scenario"
	"github.com/jdahm/lattice/pkg/stencil"
)

var _ ports.Runner = (*lattice.Solver)(nil)

// copyKernel writes src through unchanged, so runs are easy to predict.
type copyKernel struct{}

func (copyKernel) Name() string { return "copy" }

func (copyKernel) Apply(_ context.Context, src, dst *grid.Field, _ stencil.Params, dom grid.Extent) error {
	for k := dom.K0; k < dom.K1; k++ {
		for j := dom.J0; j < dom.J1; j++ {
			for i := dom.I0; i < dom.I1; i++ {
				dst.Set(i, j, k, src.At(i, j, k))
			}
		}
	}
	return nil
}

// failStore rejects every save.
type failStore struct{ memory.Store }

func (*failStore) Save(context.Context, ports.RunRecord) error {
	return errors.New("disk on fire")
}

func smallScenario(t *testing.T) *scenario.Scenario {
	t.Helper()

	sc, err := scenario.NewBuilder("unit").
		Grid(16, 16, 4).
		Steps(3).
		Box(6, 6, 1, 0).
		Backend(backend.Debug).
		Build()
	require.NoError(t, err)
	return sc
}

func TestNew_Defaults(t *testing.T) {
	solver, err := lattice.New()
	require.NoError(t, err)

	assert.Equal(t, backend.Vector, solver.Kernel().Name())
	assert.Equal(t, []string{"debug", "parallel", "vector"}, solver.Backends())
	assert.Nil(t, solver.Store())
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := lattice.New(lattice.WithBackend("warp"))
	assert.ErrorIs(t, err, backend.ErrUnknownBackend)
}

func TestSolver_Run_SwapsBuffers(t *testing.T) {
	solver, err := lattice.New()
	require.NoError(t, err)

	in := testutils.NewField(t, 12, 12, 2, 2)
	out := testutils.NewField(t, 12, 12, 2, 2)
	require.NoError(t, grid.FillBox(in, 4, 4, 1, 0))

	p := stencil.Params{DX: 1, DT: 1, Alpha: -0.02}
	res, err := solver.Run(context.Background(), in, out, p, 2)
	require.NoError(t, err)
	assert.Same(t, in, res)
}

func TestRunScenario_SavesRecord(t *testing.T) {
	store := memory.NewStore()
	solver, err := lattice.New(lattice.WithStore(store))
	require.NoError(t, err)

	sc := smallScenario(t)
	started := time.Now()
	rec, res, err := solver.RunScenario(context.Background(), sc)
	require.NoError(t, err)
	require.NotNil(t, res)

	_, err = uuid.Parse(rec.ID)
	assert.NoError(t, err, "run ID should be a UUID")
	assert.Equal(t, "unit", rec.Scenario)
	assert.Equal(t, backend.Debug, rec.Backend)
	assert.Equal(t, 16, rec.NX)
	assert.Equal(t, 4, rec.NZ)
	assert.Equal(t, 2, rec.Halo)
	assert.Equal(t, 3, rec.Steps)
	assert.Equal(t, res.Sum(), rec.Checksum)
	assert.Equal(t, res.Max(), rec.MaxValue)
	assert.Less(t, rec.MaxValue, 1.0)
	assert.WithinDuration(t, started, rec.StartedAt, 5*time.Second)

	saved, err := store.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, saved)
}

func TestRunScenario_InjectedKernelWins(t *testing.T) {
	solver, err := lattice.New(lattice.WithKernel(copyKernel{}))
	require.NoError(t, err)

	sc := smallScenario(t)
	sc.Backend = backend.Vector

	rec, res, err := solver.RunScenario(context.Background(), sc)
	require.NoError(t, err)
	assert.Equal(t, "copy", rec.Backend)

	// Copying back and forth leaves the box untouched.
	assert.Equal(t, 1.0, res.Max())
	assert.Equal(t, float64(6*6*4), res.Sum())
}

func TestRunScenario_Errors(t *testing.T) {
	solver, err := lattice.New()
	require.NoError(t, err)

	t.Run("nil scenario", func(t *testing.T) {
		_, _, err := solver.RunScenario(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("invalid scenario", func(t *testing.T) {
		sc := smallScenario(t)
		sc.Grid.NX = 0
		_, _, err := solver.RunScenario(context.Background(), sc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unit")
	})

	t.Run("unknown backend", func(t *testing.T) {
		sc := smallScenario(t)
		sc.Backend = "native-gpu"
		_, _, err := solver.RunScenario(context.Background(), sc)
		assert.ErrorIs(t, err, backend.ErrUnknownBackend)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := solver.RunScenario(ctx, smallScenario(t))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunScenario_StoreFailureKeepsResult(t *testing.T) {
	solver, err := lattice.New(lattice.WithStore(&failStore{}))
	require.NoError(t, err)

	rec, res, err := solver.RunScenario(context.Background(), smallScenario(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")

	// The computation itself succeeded.
	assert.NotEmpty(t, rec.ID)
	assert.NotNil(t, res)
}
