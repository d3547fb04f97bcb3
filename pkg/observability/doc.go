/*
Package observability wires solver progress into Prometheus metrics.

It provides a Collector holding the step and run instruments, a hook
adapter that feeds per-step timings from the integration loop, and a
run-level observer for recording outcomes. The metrics surface through
whatever registry the caller passes in, typically exposed over HTTP via
promhttp.
*/
package observability
