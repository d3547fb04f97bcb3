package backend

import (
	"fmt"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/stencil"
)

// radius is how far the composed stencil reaches from a point. Fields
// need at least this much halo.
const radius = 2

// checkArgs enforces the shared kernel preconditions: distinct buffers
// of identical layout, a halo wide enough for the stencil reach, valid
// parameters, and a domain inside the interior.
func checkArgs(src, dst *grid.Field, p stencil.Params, dom grid.Extent) error {
	if src == nil || dst == nil {
		return fmt.Errorf("%w: nil field", grid.ErrShapeMismatch)
	}
	if !src.SameShape(dst) {
		return grid.ErrShapeMismatch
	}
	if src.Aliases(dst) {
		return grid.ErrAliasedBuffers
	}
	if src.Halo() < radius {
		return fmt.Errorf("%w: have %d, need %d", grid.ErrHaloTooNarrow, src.Halo(), radius)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if !dom.In(src.Interior()) {
		return fmt.Errorf("%w: domain %+v exceeds interior", grid.ErrBadShape, dom)
	}
	return nil
}
