package backend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jdahm/lattice/pkg/ports"
)

// Built-in backend names.
const (
	Debug    = "debug"
	Vector   = "vector"
	Parallel = "parallel"
)

// ErrUnknownBackend is returned when a name resolves to no registered
// backend.
var ErrUnknownBackend = errors.New("unknown backend")

// Factory builds a fresh kernel instance.
type Factory func() ports.Kernel

// Registry manages the available backends.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a backend to the registry.
// If a backend with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// New looks up a backend by name and builds a kernel from it.
// Unknown names are rejected rather than silently defaulted.
func (r *Registry) New(name string) (ports.Kernel, error) {
	r.mu.RLock()
	fn, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)",
			ErrUnknownBackend, name, strings.Join(r.Names(), ", "))
	}

	return fn(), nil
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register(Debug, NewDebug)
	r.Register(Vector, NewVector)
	r.Register(Parallel, func() ports.Kernel { return NewParallel() })
	return r
}()

// Default returns the registry holding the built-in backends.
func Default() *Registry { return defaultRegistry }

// New builds a kernel from the default registry.
func New(name string) (ports.Kernel, error) { return defaultRegistry.New(name) }

// Names lists the default registry's backends in sorted order.
func Names() []string { return defaultRegistry.Names() }
