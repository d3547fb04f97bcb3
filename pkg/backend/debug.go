package backend

import (
	"context"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/stencil"
)

// debugKernel composes the update literally as written on paper: the
// Laplacian of the Laplacian, recomputed point by point through the
// field accessors. It keeps no scratch state. Slow, and the reference
// the fused backends are checked against.
type debugKernel struct{}

// NewDebug returns the straightforward composed-Laplacian kernel.
func NewDebug() ports.Kernel { return debugKernel{} }

func (debugKernel) Name() string { return Debug }

func (debugKernel) Apply(_ context.Context, src, dst *grid.Field, p stencil.Params, dom grid.Extent) error {
	if err := checkArgs(src, dst, p, dom); err != nil {
		return err
	}

	dx2 := p.DX * p.DX
	for k := dom.K0; k < dom.K1; k++ {
		for j := dom.J0; j < dom.J1; j++ {
			for i := dom.I0; i < dom.I1; i++ {
				lapC := stencil.Laplacian(src, i, j, k, p.DX)
				lapW := stencil.Laplacian(src, i-1, j, k, p.DX)
				lapE := stencil.Laplacian(src, i+1, j, k, p.DX)
				lapS := stencil.Laplacian(src, i, j-1, k, p.DX)
				lapN := stencil.Laplacian(src, i, j+1, k, p.DX)

				lap2 := (lapW + lapE + lapS + lapN - 4*lapC) / dx2
				dst.Set(i, j, k, src.At(i, j, k)+p.DT*p.Alpha*lap2)
			}
		}
	}
	return nil
}
