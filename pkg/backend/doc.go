// Package backend provides the built-in hyperdiffusion kernels and the
// registry that resolves them by name. All backends implement the same
// update and agree to floating-point rounding, so they are freely
// interchangeable; they differ only in how the sweep is executed.
package backend
