package bench_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/bench"
	"github.com/jdahm/lattice/pkg/scenario"
)

func benchScenario(t *testing.T) *scenario.Scenario {
	t.Helper()

	sc, err := scenario.NewBuilder("bench-test").
		Grid(12, 10, 3).
		Steps(2).
		Box(4, 4, 1, 0).
		Build()
	require.NoError(t, err)
	return sc
}

func TestRun_ComparesBackends(t *testing.T) {
	sc := benchScenario(t)

	report, err := bench.Run(context.Background(), sc,
		bench.WithBackends(backend.Debug, backend.Vector, backend.Parallel),
		bench.WithReps(2),
		bench.WithWarmup(0),
	)
	require.NoError(t, err)

	assert.Equal(t, "bench-test", report.Scenario)
	assert.Equal(t, 12*10*3, report.Points)
	assert.Equal(t, 2, report.Steps)
	assert.Equal(t, backend.Debug, report.Baseline)
	require.Len(t, report.Results, 3)

	for i, name := range []string{backend.Debug, backend.Vector, backend.Parallel} {
		res := report.Results[i]
		assert.Equal(t, name, res.Backend)
		assert.Equal(t, 2, res.Reps)
		assert.Greater(t, res.Mean.Nanoseconds(), int64(0))
		assert.LessOrEqual(t, res.Min, res.Max)
		assert.Greater(t, res.MLUPS, 0.0)
		assert.InDelta(t, report.Results[0].Checksum, res.Checksum, 1e-10)
		assert.LessOrEqual(t, res.MaxDiff, 1e-12)
	}
	assert.Zero(t, report.Results[0].MaxDiff)
}

func TestRun_DefaultsToRegistry(t *testing.T) {
	sc := benchScenario(t)

	report, err := bench.Run(context.Background(), sc,
		bench.WithReps(1), bench.WithWarmup(0))
	require.NoError(t, err)

	names := make([]string, 0, len(report.Results))
	for _, res := range report.Results {
		names = append(names, res.Backend)
	}
	assert.Equal(t, backend.Names(), names)
}

func TestRun_UnknownBackend(t *testing.T) {
	sc := benchScenario(t)

	_, err := bench.Run(context.Background(), sc, bench.WithBackends("native-gpu"))
	assert.ErrorIs(t, err, backend.ErrUnknownBackend)
}

func TestRun_InvalidScenario(t *testing.T) {
	sc := benchScenario(t)
	sc.Grid.Halo = 0

	_, err := bench.Run(context.Background(), sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bench-test")
}

func TestRun_Canceled(t *testing.T) {
	sc := benchScenario(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bench.Run(ctx, sc)
	assert.ErrorIs(t, err, context.Canceled)
}
