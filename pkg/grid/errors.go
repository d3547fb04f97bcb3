package grid

import "errors"

// ErrBadShape is returned when a field is constructed with non-positive
// dimensions or a negative halo.
var ErrBadShape = errors.New("invalid field shape")

// ErrShapeMismatch is returned when two fields that must share a layout
// differ in dimensions or halo width.
var ErrShapeMismatch = errors.New("field shape mismatch")

// ErrHaloTooNarrow is returned when a field's halo cannot cover a
// stencil's neighbor reach.
var ErrHaloTooNarrow = errors.New("halo narrower than stencil reach")

// ErrAliasedBuffers is returned when source and destination resolve to
// the same storage.
var ErrAliasedBuffers = errors.New("source and destination buffers alias")
