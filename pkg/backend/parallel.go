package backend

import (
	"context"
	"runtime"
	"sync"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/ports"
	"github.com/jdahm/lattice/pkg/stencil"
)

// parallelKernel splits the domain into contiguous k slabs and runs the
// fused sweep on each slab in its own goroutine. Slabs are disjoint in
// storage, so the result is bitwise identical to the vector backend no
// matter how the scheduler interleaves them.
type parallelKernel struct {
	workers int
}

// ParallelOption configures the parallel backend.
type ParallelOption func(*parallelKernel)

// WithWorkers caps the number of worker goroutines. Values below one
// fall back to runtime.GOMAXPROCS.
func WithWorkers(n int) ParallelOption {
	return func(k *parallelKernel) {
		k.workers = n
	}
}

// NewParallel returns the k-slab parallel kernel.
func NewParallel(opts ...ParallelOption) ports.Kernel {
	k := &parallelKernel{}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (*parallelKernel) Name() string { return Parallel }

func (k *parallelKernel) Apply(_ context.Context, src, dst *grid.Field, p stencil.Params, dom grid.Extent) error {
	if err := checkArgs(src, dst, p, dom); err != nil {
		return err
	}

	workers := k.workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if nz := dom.K1 - dom.K0; workers > nz {
		workers = nz
	}
	if workers <= 1 {
		sweep(src, dst, p, dom)
		return nil
	}

	chunk := (dom.K1 - dom.K0 + workers - 1) / workers
	var wg sync.WaitGroup
	for k0 := dom.K0; k0 < dom.K1; k0 += chunk {
		slab := dom
		slab.K0 = k0
		slab.K1 = min(k0+chunk, dom.K1)

		wg.Add(1)
		go func() {
			defer wg.Done()
			sweep(src, dst, p, slab)
		}()
	}
	wg.Wait()
	return nil
}
