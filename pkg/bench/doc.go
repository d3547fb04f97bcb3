// Package bench times the same scenario across kernel backends and
// reports per-backend statistics plus cross-checks against a baseline.
// It exists to answer two questions at once: how fast is each backend,
// and do they still agree on the numbers.
package bench
