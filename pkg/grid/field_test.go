package grid_test

import (
	"errors"
	"testing"

	"github.com/jdahm/lattice/pkg/grid"
)

func TestNewField_Validation(t *testing.T) {
	cases := []struct {
		name          string
		nx, ny, nz, h int
		wantErr       bool
	}{
		{"valid", 4, 5, 6, 2, false},
		{"valid no halo", 1, 1, 1, 0, false},
		{"zero nx", 0, 5, 6, 2, true},
		{"zero ny", 4, 0, 6, 2, true},
		{"zero nz", 4, 5, 0, 2, true},
		{"negative halo", 4, 5, 6, -1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := grid.NewField(tc.nx, tc.ny, tc.nz, tc.h)
			if tc.wantErr {
				if !errors.Is(err, grid.ErrBadShape) {
					t.Fatalf("expected ErrBadShape, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			nx, ny, nz := f.Dims()
			if nx != tc.nx || ny != tc.ny || nz != tc.nz {
				t.Errorf("dims = %dx%dx%d, want %dx%dx%d", nx, ny, nz, tc.nx, tc.ny, tc.nz)
			}
			if f.Halo() != tc.h {
				t.Errorf("halo = %d, want %d", f.Halo(), tc.h)
			}
		})
	}
}

func TestField_Layout(t *testing.T) {
	f, err := grid.NewField(3, 4, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	si, sj, sk := f.Strides()
	xdim, ydim := 3+4, 4+4
	if si != 1 || sj != xdim || sk != xdim*ydim {
		t.Fatalf("strides = (%d, %d, %d), want (1, %d, %d)", si, sj, sk, xdim, xdim*ydim)
	}
	if len(f.Data()) != xdim*ydim*2 {
		t.Fatalf("backing size = %d, want %d", len(f.Data()), xdim*ydim*2)
	}

	// Index must agree with the strides, halo offsets included.
	if got, want := f.Index(0, 0, 0), 2*sj+2; got != want {
		t.Errorf("Index(0,0,0) = %d, want %d", got, want)
	}
	if got, want := f.Index(-2, -2, 0), 0; got != want {
		t.Errorf("Index(-2,-2,0) = %d, want %d", got, want)
	}
	if got, want := f.Index(1, 2, 1), sk+(2+2)*sj+(1+2); got != want {
		t.Errorf("Index(1,2,1) = %d, want %d", got, want)
	}

	f.Set(1, 2, 1, 3.5)
	if f.At(1, 2, 1) != 3.5 {
		t.Errorf("At after Set = %g, want 3.5", f.At(1, 2, 1))
	}
	if f.Data()[f.Index(1, 2, 1)] != 3.5 {
		t.Error("Set did not land at the flat index")
	}

	// Halo cells are addressable with out-of-interior offsets.
	f.Set(-1, 0, 0, 7)
	if f.At(-1, 0, 0) != 7 {
		t.Errorf("halo cell At = %g, want 7", f.At(-1, 0, 0))
	}
}

func TestField_InteriorExtent(t *testing.T) {
	f, _ := grid.NewField(5, 6, 7, 2)
	want := grid.Extent{I1: 5, J1: 6, K1: 7}
	if f.Interior() != want {
		t.Fatalf("Interior() = %+v, want %+v", f.Interior(), want)
	}
	if f.Interior().Size() != 5*6*7 {
		t.Errorf("interior size = %d, want %d", f.Interior().Size(), 5*6*7)
	}
}

func TestField_CloneIsolation(t *testing.T) {
	f, _ := grid.NewField(3, 3, 1, 1)
	f.Set(1, 1, 0, 2.5)

	c := f.Clone()
	if !f.SameShape(c) {
		t.Fatal("clone shape differs")
	}
	if f.Aliases(c) {
		t.Fatal("clone shares storage with original")
	}
	c.Set(1, 1, 0, -1)
	if f.At(1, 1, 0) != 2.5 {
		t.Error("mutating clone affected original")
	}
}

func TestField_SumMaxExcludeHalo(t *testing.T) {
	f, _ := grid.NewField(2, 2, 2, 1)
	f.Fill(100) // pollute halo
	grid.FillUniform(f, 1)
	f.Set(1, 1, 1, 3)

	if got, want := f.Sum(), float64(2*2*2-1)+3; got != want {
		t.Errorf("Sum = %g, want %g", got, want)
	}
	if got := f.Max(); got != 3 {
		t.Errorf("Max = %g, want 3", got)
	}
}

func TestField_CopyFrom(t *testing.T) {
	a, _ := grid.NewField(3, 3, 2, 2)
	b, _ := grid.NewField(3, 3, 2, 2)
	a.Set(0, 0, 0, 9)
	a.Set(-2, -2, 0, 4) // halo travels with the copy

	if err := b.CopyFrom(a); err != nil {
		t.Fatalf("CopyFrom failed: %v", err)
	}
	if b.At(0, 0, 0) != 9 || b.At(-2, -2, 0) != 4 {
		t.Error("copy did not carry all cells")
	}

	c, _ := grid.NewField(3, 3, 2, 1)
	if err := c.CopyFrom(a); !errors.Is(err, grid.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch for halo change, got %v", err)
	}
}

func TestMaxAbsDiff(t *testing.T) {
	a, _ := grid.NewField(4, 4, 3, 2)
	b, _ := grid.NewField(4, 4, 3, 2)
	grid.FillUniform(a, 1)
	grid.FillUniform(b, 1)
	b.Set(2, 3, 1, 1.25)

	d, err := grid.MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff failed: %v", err)
	}
	if d != 0.25 {
		t.Errorf("MaxAbsDiff = %g, want 0.25", d)
	}

	// Halo differences are ignored.
	b.Set(-1, -1, 0, 50)
	d, _ = grid.MaxAbsDiff(a, b)
	if d != 0.25 {
		t.Errorf("halo cell leaked into MaxAbsDiff: %g", d)
	}

	c, _ := grid.NewField(4, 4, 2, 2)
	if _, err := grid.MaxAbsDiff(a, c); !errors.Is(err, grid.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestExtent(t *testing.T) {
	e := grid.Extent{I0: 1, I1: 3, J0: 0, J1: 2, K0: 0, K1: 4}
	if e.Size() != 2*2*4 {
		t.Errorf("Size = %d, want %d", e.Size(), 2*2*4)
	}
	if e.Empty() {
		t.Error("extent should not be empty")
	}

	var zero grid.Extent
	if !zero.Empty() || zero.Size() != 0 {
		t.Error("zero extent should be empty with size 0")
	}

	outer := grid.Extent{I1: 4, J1: 4, K1: 4}
	if !e.In(outer) {
		t.Error("extent should fit in outer")
	}
	if (grid.Extent{I0: -1, I1: 2, J1: 2, K1: 2}).In(outer) {
		t.Error("extent reaching past outer must not fit")
	}
	if !zero.In(outer) {
		t.Error("empty extent fits anywhere")
	}
}
