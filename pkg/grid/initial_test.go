package grid_test

import (
	"errors"
	"math"
	"testing"

	"github.com/jdahm/lattice/pkg/grid"
)

func TestFillBox(t *testing.T) {
	f, _ := grid.NewField(8, 8, 3, 2)
	if err := grid.FillBox(f, 4, 4, 1, 0); err != nil {
		t.Fatalf("FillBox failed: %v", err)
	}

	// Box is centered: interior 8, box 4 -> offset 2 on each side.
	for k := 0; k < 3; k++ {
		if f.At(2, 2, k) != 1 || f.At(5, 5, k) != 1 {
			t.Errorf("k=%d: box corners not set", k)
		}
		if f.At(1, 2, k) != 0 || f.At(6, 5, k) != 0 || f.At(0, 0, k) != 0 {
			t.Errorf("k=%d: outside cells not zero", k)
		}
	}

	if got, want := f.Sum(), float64(4*4*3); got != want {
		t.Errorf("Sum = %g, want %g", got, want)
	}

	// Halo must stay exactly as allocated.
	if f.At(-1, 0, 0) != 0 || f.At(8, 8, 0) != 0 {
		t.Error("halo cells modified by FillBox")
	}
}

func TestFillBox_TooLarge(t *testing.T) {
	f, _ := grid.NewField(4, 4, 1, 2)
	if err := grid.FillBox(f, 5, 2, 1, 0); !errors.Is(err, grid.ErrBadShape) {
		t.Errorf("expected ErrBadShape for oversized box, got %v", err)
	}
	if err := grid.FillBox(f, 2, 0, 1, 0); !errors.Is(err, grid.ErrBadShape) {
		t.Errorf("expected ErrBadShape for empty box, got %v", err)
	}
}

func TestFillGaussian(t *testing.T) {
	f, _ := grid.NewField(9, 9, 2, 2)
	if err := grid.FillGaussian(f, 2, 1.5); err != nil {
		t.Fatalf("FillGaussian failed: %v", err)
	}

	// Peak sits at the center and equals the amplitude.
	if got := f.At(4, 4, 0); math.Abs(got-2) > 1e-12 {
		t.Errorf("center = %g, want 2", got)
	}
	if f.Max() > 2 {
		t.Errorf("max %g exceeds amplitude", f.Max())
	}

	// Symmetric about the center in both directions and across levels.
	if f.At(2, 4, 0) != f.At(6, 4, 0) || f.At(4, 1, 0) != f.At(4, 7, 0) {
		t.Error("bump not symmetric")
	}
	if f.At(3, 5, 0) != f.At(3, 5, 1) {
		t.Error("levels differ")
	}

	if err := grid.FillGaussian(f, 1, 0); !errors.Is(err, grid.ErrBadShape) {
		t.Errorf("expected ErrBadShape for sigma 0, got %v", err)
	}
}

func TestFillUniform(t *testing.T) {
	f, _ := grid.NewField(3, 2, 2, 1)
	grid.FillUniform(f, 0.5)
	if got, want := f.Sum(), 0.5*3*2*2; got != want {
		t.Errorf("Sum = %g, want %g", got, want)
	}
	if f.At(-1, 0, 0) != 0 {
		t.Error("halo modified by FillUniform")
	}
}
