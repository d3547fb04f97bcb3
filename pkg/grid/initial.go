package grid

import (
	"fmt"
	"math"
)

// FillBox sets every interior cell to outside, then a centered
// width x height box in the horizontal plane to inside, repeated on
// every k level. Halo cells are left untouched.
func FillBox(f *Field, width, height int, inside, outside float64) error {
	if width < 1 || width > f.nx || height < 1 || height > f.ny {
		return fmt.Errorf("%w: box %dx%d on interior %dx%d", ErrBadShape, width, height, f.nx, f.ny)
	}
	i0 := (f.nx - width) / 2
	j0 := (f.ny - height) / 2
	for k := 0; k < f.nz; k++ {
		for j := 0; j < f.ny; j++ {
			row := f.Index(0, j, k)
			boxRow := j >= j0 && j < j0+height
			for i := 0; i < f.nx; i++ {
				v := outside
				if boxRow && i >= i0 && i < i0+width {
					v = inside
				}
				f.data[row+i] = v
			}
		}
	}
	return nil
}

// FillGaussian sets every interior cell to a horizontally centered
// Gaussian bump of the given amplitude and width, identical on every k
// level. Halo cells are left untouched.
func FillGaussian(f *Field, amplitude, sigma float64) error {
	if sigma <= 0 {
		return fmt.Errorf("%w: sigma %g", ErrBadShape, sigma)
	}
	ci := float64(f.nx-1) / 2
	cj := float64(f.ny-1) / 2
	inv := 1 / (2 * sigma * sigma)
	for k := 0; k < f.nz; k++ {
		for j := 0; j < f.ny; j++ {
			dj := float64(j) - cj
			row := f.Index(0, j, k)
			for i := 0; i < f.nx; i++ {
				di := float64(i) - ci
				f.data[row+i] = amplitude * math.Exp(-(di*di+dj*dj)*inv)
			}
		}
	}
	return nil
}

// FillUniform sets every interior cell to v. Halo cells are left
// untouched.
func FillUniform(f *Field, v float64) {
	for k := 0; k < f.nz; k++ {
		for j := 0; j < f.ny; j++ {
			row := f.Index(0, j, k)
			for i := 0; i < f.nx; i++ {
				f.data[row+i] = v
			}
		}
	}
}
