package ports

import (
	"context"
	"errors"
	"time"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/scenario"
	"github.com/jdahm/lattice/pkg/stencil"
)

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// RunRecord captures the outcome of one completed integration run.
type RunRecord struct {
	ID       string `json:"id" yaml:"id"`
	Scenario string `json:"scenario" yaml:"scenario"`
	Backend  string `json:"backend" yaml:"backend"`

	NX   int `json:"nx" yaml:"nx"`
	NY   int `json:"ny" yaml:"ny"`
	NZ   int `json:"nz" yaml:"nz"`
	Halo int `json:"halo" yaml:"halo"`

	Params stencil.Params `json:"params" yaml:"params"`
	Steps  int            `json:"steps" yaml:"steps"`

	// Checksum is the interior sum of the final field; MaxValue its
	// largest interior value. Both make cheap regression anchors.
	Checksum float64 `json:"checksum" yaml:"checksum"`
	MaxValue float64 `json:"max_value" yaml:"max_value"`

	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
}

// RunStore defines the interface for persisting run records.
type RunStore interface {
	// Save persists the record, overwriting any record with the same ID.
	Save(ctx context.Context, rec RunRecord) error

	// Get retrieves a record by ID.
	// Returns ErrRunNotFound if no such record exists.
	Get(ctx context.Context, id string) (RunRecord, error)

	// List returns all records ordered by start time, oldest first.
	List(ctx context.Context) ([]RunRecord, error)

	// Delete removes a record. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}

// Runner executes a scenario end to end: allocate buffers, apply the
// initial condition, integrate, and report the outcome. The returned
// field is the buffer holding the final result.
type Runner interface {
	RunScenario(ctx context.Context, sc *scenario.Scenario) (RunRecord, *grid.Field, error)
}
