package stencil

import "github.com/jdahm/lattice/pkg/grid"

// Laplacian evaluates the five-point horizontal Laplacian of f at
// interior coordinate (i, j, k):
//
//	(f[i-1,j] + f[i+1,j] + f[i,j-1] + f[i,j+1] - 4*f[i,j]) / dx^2
//
// The caller must guarantee that (i, j) lies within reach of the halo.
func Laplacian(f *grid.Field, i, j, k int, dx float64) float64 {
	return (f.At(i-1, j, k) + f.At(i+1, j, k) +
		f.At(i, j-1, k) + f.At(i, j+1, k) -
		4*f.At(i, j, k)) / (dx * dx)
}
