package lattice

// Version is the library version, overridable at link time via
// -ldflags "-X github.com/jdahm/lattice.Version=...".
var Version = "0.3.0"
