package stencil_test

import (
	"errors"
	"math"
	"testing"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/stencil"
)

func TestParams_Validate(t *testing.T) {
	cases := []struct {
		name string
		p    stencil.Params
		want error
	}{
		{"valid", stencil.Params{DX: 1, DT: 1, Alpha: -0.02}, nil},
		{"negative dx allowed", stencil.Params{DX: -0.5, DT: 1, Alpha: 1}, nil},
		{"zero dx", stencil.Params{DX: 0, DT: 1, Alpha: 1}, stencil.ErrZeroSpacing},
		{"zero dt allowed", stencil.Params{DX: 1}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLaplacian(t *testing.T) {
	f, _ := grid.NewField(3, 3, 1, 1)

	// A single unit spike at the center.
	f.Set(1, 1, 0, 1)

	if got := stencil.Laplacian(f, 1, 1, 0, 1); got != -4 {
		t.Errorf("Laplacian at spike = %g, want -4", got)
	}
	if got := stencil.Laplacian(f, 0, 1, 0, 1); got != 1 {
		t.Errorf("Laplacian beside spike = %g, want 1", got)
	}

	// Spacing scales quadratically.
	if got := stencil.Laplacian(f, 1, 1, 0, 2); got != -1 {
		t.Errorf("Laplacian with dx=2 = %g, want -1", got)
	}

	// A linear ramp has zero curvature.
	for j := -1; j <= 3; j++ {
		for i := -1; i <= 3; i++ {
			f.Set(i, j, 0, float64(i))
		}
	}
	if got := stencil.Laplacian(f, 1, 1, 0, 1); math.Abs(got) > 1e-15 {
		t.Errorf("Laplacian of linear ramp = %g, want 0", got)
	}
}
