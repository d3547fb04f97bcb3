/*
Package grid contains the core data model for lattice: halo-padded scalar
fields over a three-dimensional logical domain.

A Field owns a single flat backing slice covering the (nx, ny, nz)
interior plus a fixed-width halo in the two horizontal directions. The
halo lets stencil kernels read neighbor values without bounds checks;
kernels never write it. This package is kept pure and free of external
dependencies, so every consumer (backends, driver, benchmarks) shares
one storage layout.

# Key Entities

  - Field: the padded 3-D array with interior accessors and reductions.
  - Extent: a half-open index box describing an iteration domain.
  - Fill helpers: initial-condition constructors (box, Gaussian, uniform).
*/
package grid
