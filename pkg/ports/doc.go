/*
Package ports defines the driven ports (interfaces) for the lattice
driver and its surrounding tooling.

These interfaces decouple the time-integration loop from the stencil
implementations and the run bookkeeping from its storage backends.

# Key Interfaces

  - Kernel: one hyperdiffusion update over a domain, the capability the
    driver invokes each step.
  - RunStore: persistence for completed run records (memory, file and
    Redis implementations live under pkg/adapters).
  - Runner: scenario-level execution, implemented by lattice.Solver and
    consumed by the HTTP and MCP adapters.
*/
package ports
