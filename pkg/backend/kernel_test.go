package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdahm/lattice/internal/testutils"
	"github.com/jdahm/lattice/pkg/backend"
	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/stencil"
)

func mustKernel(t *testing.T, name string) ports.Kernel {
	t.Helper()
	k, err := backend.New(name)
	require.NoError(t, err)
	return k
}

// A unit impulse exposes every weight of the expanded stencil. With
// dx=dt=alpha=1 the update writes the raw weights around the spike.
func TestKernels_ImpulseWeights(t *testing.T) {
	p := stencil.Params{DX: 1, DT: 1, Alpha: 1}

	for _, name := range backend.Names() {
		t.Run(name, func(t *testing.T) {
			src := testutils.NewField(t, 9, 9, 2, 2)
			dst := testutils.NewField(t, 9, 9, 2, 2)
			src.Set(4, 4, 0, 1)

			k := mustKernel(t, name)
			require.NoError(t, k.Apply(context.Background(), src, dst, p, src.Interior()))

			want := map[[3]int]float64{
				{4, 4, 0}: 1 + 20,
				{3, 4, 0}: -8, {5, 4, 0}: -8, {4, 3, 0}: -8, {4, 5, 0}: -8,
				{3, 3, 0}: 2, {5, 3, 0}: 2, {3, 5, 0}: 2, {5, 5, 0}: 2,
				{2, 4, 0}: 1, {6, 4, 0}: 1, {4, 2, 0}: 1, {4, 6, 0}: 1,
			}
			nx, ny, nz := dst.Dims()
			for z := 0; z < nz; z++ {
				for j := 0; j < ny; j++ {
					for i := 0; i < nx; i++ {
						assert.InDeltaf(t, want[[3]int{i, j, z}], dst.At(i, j, z), 1e-13,
							"point (%d,%d,%d)", i, j, z)
					}
				}
			}

			// Zero-sum weights conserve the total, and the update
			// must not couple distinct k levels.
			assert.InDelta(t, src.Sum(), dst.Sum(), 1e-13)
		})
	}
}

func TestKernels_ArgChecks(t *testing.T) {
	p := stencil.Params{DX: 1, DT: 1, Alpha: -0.02}
	src := testutils.NewField(t, 8, 8, 2, 2)
	narrow := testutils.NewField(t, 8, 8, 2, 1)
	narrowDst := testutils.NewField(t, 8, 8, 2, 1)
	other := testutils.NewField(t, 6, 8, 2, 2)

	for _, name := range backend.Names() {
		t.Run(name, func(t *testing.T) {
			k := mustKernel(t, name)
			ctx := context.Background()
			dom := src.Interior()

			err := k.Apply(ctx, src, nil, p, dom)
			assert.ErrorIs(t, err, grid.ErrShapeMismatch)

			err = k.Apply(ctx, src, other, p, dom)
			assert.ErrorIs(t, err, grid.ErrShapeMismatch)

			err = k.Apply(ctx, src, src, p, dom)
			assert.ErrorIs(t, err, grid.ErrAliasedBuffers)

			err = k.Apply(ctx, narrow, narrowDst, p, narrow.Interior())
			assert.ErrorIs(t, err, grid.ErrHaloTooNarrow)

			err = k.Apply(ctx, src, src.Clone(), stencil.Params{DT: 1}, dom)
			assert.ErrorIs(t, err, stencil.ErrZeroSpacing)

			wide := dom
			wide.I1++
			err = k.Apply(ctx, src, src.Clone(), p, wide)
			assert.ErrorIs(t, err, grid.ErrBadShape)
		})
	}
}

// All backends must agree on arbitrary data, spacing included, up to
// floating-point rounding between the composed and fused forms.
func TestKernels_Equivalence(t *testing.T) {
	p := stencil.Params{DX: 0.5, DT: 0.25, Alpha: -0.013}

	src := testutils.NewField(t, 16, 12, 5, 2)
	testutils.FillRandom(src, 42)

	ref := testutils.NewField(t, 16, 12, 5, 2)
	require.NoError(t, mustKernel(t, backend.Debug).
		Apply(context.Background(), src, ref, p, src.Interior()))

	for _, name := range []string{backend.Vector, backend.Parallel} {
		t.Run(name, func(t *testing.T) {
			dst := testutils.NewField(t, 16, 12, 5, 2)
			require.NoError(t, mustKernel(t, name).
				Apply(context.Background(), src, dst, p, src.Interior()))

			diff, err := grid.MaxAbsDiff(ref, dst)
			require.NoError(t, err)
			assert.LessOrEqual(t, diff, 1e-12)
		})
	}
}

// The parallel backend partitions by k slab with disjoint writes, so it
// must match the vector backend bit for bit on any worker count.
func TestParallel_BitwiseDeterministic(t *testing.T) {
	p := stencil.Params{DX: 1.5, DT: 0.5, Alpha: -0.02}

	src := testutils.NewField(t, 12, 10, 7, 2)
	testutils.FillRandom(src, 7)

	ref := testutils.NewField(t, 12, 10, 7, 2)
	require.NoError(t, mustKernel(t, backend.Vector).
		Apply(context.Background(), src, ref, p, src.Interior()))

	for _, workers := range []int{0, 1, 3, 64} {
		k := backend.NewParallel(backend.WithWorkers(workers))
		for rep := 0; rep < 3; rep++ {
			dst := testutils.NewField(t, 12, 10, 7, 2)
			require.NoError(t, k.Apply(context.Background(), src, dst, p, src.Interior()))

			diff, err := grid.MaxAbsDiff(ref, dst)
			require.NoError(t, err)
			assert.Zerof(t, diff, "workers=%d rep=%d", workers, rep)
		}
	}
}

func TestKernels_HaloLeftAlone(t *testing.T) {
	const poison = 12345.5
	p := stencil.Params{DX: 1, DT: 1, Alpha: -0.02}

	for _, name := range backend.Names() {
		t.Run(name, func(t *testing.T) {
			src := testutils.NewField(t, 8, 6, 3, 2)
			testutils.FillRandom(src, 11)

			dst := testutils.NewField(t, 8, 6, 3, 2)
			dst.Fill(poison)

			k := mustKernel(t, name)
			require.NoError(t, k.Apply(context.Background(), src, dst, p, src.Interior()))
			testutils.RequireHalo(t, dst, poison)
		})
	}
}
