package ports

import (
	"context"
	"time"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/stencil"
)

// Kernel computes one hyperdiffusion update. The driver treats each
// Apply call as a single blocking operation with no partial results.
//
// Implementations must read only src, write only dst, touch only the
// points of dom, and keep no state between calls. For each point of dom
// the value written is
//
//	src + dt * alpha * Lap(Lap(src, dx), dx)
//
// with Lap the five-point horizontal Laplacian. Halo cells of dst are
// never modified.
type Kernel interface {
	// Name identifies the backend in logs, metrics and reports.
	Name() string

	// Apply writes the update of src into dst over dom.
	Apply(ctx context.Context, src, dst *grid.Field, p stencil.Params, dom grid.Extent) error
}

// Hooks observe driver progress. Nil members are skipped. Hooks run on
// the driver goroutine, so they must be cheap.
type Hooks struct {
	// OnStepStart fires before the kernel call of each step.
	OnStepStart func(step int)

	// OnStepDone fires after each completed step with its duration.
	OnStepDone func(step int, elapsed time.Duration)
}
