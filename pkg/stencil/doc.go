/*
Package stencil defines the scalar parameters and discrete operators of
the hyperdiffusion update.

The update applied by every backend is forward Euler on a fourth-order
horizontal diffusion term:

	out = in + dt * alpha * Lap(Lap(in, dx), dx)

where Lap is the five-point horizontal Laplacian. Alpha keeps the sign
convention of the documented scheme: callers pass a negative value to
obtain decay. The package does not flip or second-guess it.
*/
package stencil
