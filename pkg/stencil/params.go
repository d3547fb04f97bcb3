package stencil

import (
	"errors"
	"fmt"
)

// ErrZeroSpacing is returned when the grid spacing is zero, which would
// divide by zero inside the Laplacian.
var ErrZeroSpacing = errors.New("grid spacing must be nonzero")

// Params carries the scalar coefficients of one hyperdiffusion update.
type Params struct {
	// DX is the uniform horizontal grid spacing.
	DX float64 `yaml:"dx" json:"dx"`

	// DT is the forward-Euler step size.
	DT float64 `yaml:"dt" json:"dt"`

	// Alpha is the diffusion coefficient. A negative value produces
	// decay; the documented demo convention passes e.g. -0.02.
	Alpha float64 `yaml:"alpha" json:"alpha"`
}

// Validate checks the parameters against the kernel preconditions.
func (p Params) Validate() error {
	if p.DX == 0 {
		return ErrZeroSpacing
	}
	return nil
}

// String renders the parameters for logs and reports.
func (p Params) String() string {
	return fmt.Sprintf("dx=%g dt=%g alpha=%g", p.DX, p.DT, p.Alpha)
}
