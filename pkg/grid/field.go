package grid

import (
	"fmt"
	"math"
)

// Field is a scalar field over an (nx, ny, nz) interior, padded with a
// halo of fixed width in the two horizontal directions. Storage is a
// single flat slice, i fastest, k slowest, so each k level is
// contiguous. Interior coordinates run from 0; halo cells are addressed
// with negative offsets or offsets beyond the interior dimension.
type Field struct {
	nx, ny, nz int
	halo       int

	// Padded horizontal dimensions (nx+2*halo, ny+2*halo).
	xdim, ydim int

	data []float64
}

// NewField allocates a zeroed field with the given interior shape and
// halo width. All dimensions must be at least 1 and halo must be
// non-negative.
func NewField(nx, ny, nz, halo int) (*Field, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("%w: interior %dx%dx%d", ErrBadShape, nx, ny, nz)
	}
	if halo < 0 {
		return nil, fmt.Errorf("%w: halo %d", ErrBadShape, halo)
	}
	xdim := nx + 2*halo
	ydim := ny + 2*halo
	return &Field{
		nx: nx, ny: ny, nz: nz,
		halo: halo,
		xdim: xdim, ydim: ydim,
		data: make([]float64, xdim*ydim*nz),
	}, nil
}

// Dims returns the interior shape.
func (f *Field) Dims() (nx, ny, nz int) {
	return f.nx, f.ny, f.nz
}

// Halo returns the horizontal halo width.
func (f *Field) Halo() int {
	return f.halo
}

// Strides returns the flat-index strides for the i, j and k directions.
func (f *Field) Strides() (si, sj, sk int) {
	return 1, f.xdim, f.xdim * f.ydim
}

// Index returns the flat index of interior coordinate (i, j, k).
// Halo cells are reachable with i or j outside [0, n).
func (f *Field) Index(i, j, k int) int {
	return (k*f.ydim+(j+f.halo))*f.xdim + (i + f.halo)
}

// At returns the value at interior coordinate (i, j, k).
func (f *Field) At(i, j, k int) float64 {
	return f.data[f.Index(i, j, k)]
}

// Set stores v at interior coordinate (i, j, k).
func (f *Field) Set(i, j, k int, v float64) {
	f.data[f.Index(i, j, k)] = v
}

// Data exposes the flat backing slice. Kernels that sweep contiguously
// use it together with Strides and Index.
func (f *Field) Data() []float64 {
	return f.data
}

// Interior returns the extent covering exactly the interior points.
func (f *Field) Interior() Extent {
	return Extent{I1: f.nx, J1: f.ny, K1: f.nz}
}

// SameShape reports whether two fields share interior shape and halo.
func (f *Field) SameShape(other *Field) bool {
	return other != nil &&
		f.nx == other.nx && f.ny == other.ny && f.nz == other.nz &&
		f.halo == other.halo
}

// Aliases reports whether two fields share backing storage.
func (f *Field) Aliases(other *Field) bool {
	if other == nil || len(f.data) == 0 || len(other.data) == 0 {
		return false
	}
	return &f.data[0] == &other.data[0]
}

// Clone returns a deep copy of the field, halo included.
func (f *Field) Clone() *Field {
	c := *f
	c.data = make([]float64, len(f.data))
	copy(c.data, f.data)
	return &c
}

// Fill sets every cell, halo included, to v.
func (f *Field) Fill(v float64) {
	for n := range f.data {
		f.data[n] = v
	}
}

// CopyFrom copies all cells from src. The fields must share a layout.
func (f *Field) CopyFrom(src *Field) error {
	if !f.SameShape(src) {
		return ErrShapeMismatch
	}
	copy(f.data, src.data)
	return nil
}

// Sum returns the total over the interior. Halo cells are excluded so
// the value tracks the conserved integral of the diffusion update.
func (f *Field) Sum() float64 {
	var total float64
	for k := 0; k < f.nz; k++ {
		for j := 0; j < f.ny; j++ {
			row := f.Index(0, j, k)
			for i := 0; i < f.nx; i++ {
				total += f.data[row+i]
			}
		}
	}
	return total
}

// Max returns the largest interior value.
func (f *Field) Max() float64 {
	max := math.Inf(-1)
	for k := 0; k < f.nz; k++ {
		for j := 0; j < f.ny; j++ {
			row := f.Index(0, j, k)
			for i := 0; i < f.nx; i++ {
				if f.data[row+i] > max {
					max = f.data[row+i]
				}
			}
		}
	}
	return max
}

// MaxAbsDiff returns the largest absolute interior difference between
// two fields of identical layout.
func MaxAbsDiff(a, b *Field) (float64, error) {
	if a == nil || b == nil || !a.SameShape(b) {
		return 0, ErrShapeMismatch
	}
	var max float64
	for k := 0; k < a.nz; k++ {
		for j := 0; j < a.ny; j++ {
			rowA := a.Index(0, j, k)
			rowB := b.Index(0, j, k)
			for i := 0; i < a.nx; i++ {
				d := math.Abs(a.data[rowA+i] - b.data[rowB+i])
				if d > max {
					max = d
				}
			}
		}
	}
	return max, nil
}
