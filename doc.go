/*
Package lattice is a finite-difference stencil engine for horizontal
hyperdiffusion on halo-padded 3D grids, built around interchangeable
compute backends.

It separates the numerical scheme (what one update step computes) from
its execution strategy (how the sweep runs), so the same scenario can be
checked on a simple reference backend and then run on the fast ones.

# Concept

A field lives on an (nx, ny, nz) interior padded by a horizontal halo.
Each step applies a fourth-order damping operator, the Laplacian of the
Laplacian, to every interior point and writes into a second buffer; the
buffers then swap roles. Backends implement exactly that one step and
nothing else, which keeps them freely interchangeable: debug composes
the operator point by point, vector fuses it into a single sweep, and
parallel distributes the sweep over k slabs.

# Key Features

  - Interchangeable Backends: All backends agree to floating-point
    rounding; pick by name at run time.
  - Double Buffering: The integration loop allocates nothing and swaps
    two preallocated fields.
  - Scenario Files: Grid, parameters, steps and initial condition load
    from YAML and validate before any allocation.
  - Persistence and Serving: Run records store in memory, on disk or in
    Redis, and the solver serves over HTTP and MCP.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/jdahm/lattice"
		"github.com/jdahm/lattice/pkg/scenario"
	)

	func main() {
		solver, err := lattice.New(lattice.WithBackend("vector"))
		if err != nil {
			log.Fatal(err)
		}

		rec, _, err := solver.RunScenario(context.Background(), scenario.Default())
		if err != nil {
			log.Fatal(err)
		}

		log.Printf("run %s: max=%g checksum=%g", rec.ID, rec.MaxValue, rec.Checksum)
	}
*/
package lattice
