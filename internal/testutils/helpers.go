package testutils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jdahm/lattice/pkg/grid"
)

// NewField allocates a zeroed field and fails the test on a bad shape.
func NewField(t *testing.T, nx, ny, nz, halo int) *grid.Field {
	t.Helper()

	f, err := grid.NewField(nx, ny, nz, halo)
	require.NoError(t, err, "failed to allocate %dx%dx%d halo %d field", nx, ny, nz, halo)
	return f
}

// FillRandom fills every cell of f, halo included, with values in
// [-1, 1) from a fixed-seed generator so runs are reproducible.
func FillRandom(f *grid.Field, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	data := f.Data()
	for i := range data {
		data[i] = 2*rng.Float64() - 1
	}
}

// RequireHalo asserts that every halo cell of f holds exactly want.
// Kernels and the driver write interior points only, so a poisoned or
// zeroed halo must survive a run bit for bit.
func RequireHalo(t *testing.T, f *grid.Field, want float64) {
	t.Helper()

	nx, ny, nz := f.Dims()
	h := f.Halo()
	for k := 0; k < nz; k++ {
		for j := -h; j < ny+h; j++ {
			for i := -h; i < nx+h; i++ {
				if i >= 0 && i < nx && j >= 0 && j < ny {
					continue
				}
				require.Equalf(t, want, f.At(i, j, k), "halo cell (%d,%d,%d)", i, j, k)
			}
		}
	}
}
