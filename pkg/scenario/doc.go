/*
Package scenario describes complete integration runs as data: grid
shape, stencil parameters, step count, backend choice and initial
condition.

Scenarios load from YAML files, arrive as JSON request bodies, or are
assembled in code through the fluent Builder. Validate aggregates every
field failure instead of stopping at the first, and Build allocates the
two field buffers with the initial condition applied.
*/
package scenario
