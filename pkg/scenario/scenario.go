package scenario

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jdahm/lattice/pkg/grid"
	"github.com/jdahm/lattice/pkg/stencil"
)

// GridSpec is the interior shape and halo width of the run's fields.
type GridSpec struct {
	NX   int `yaml:"nx" json:"nx"`
	NY   int `yaml:"ny" json:"ny"`
	NZ   int `yaml:"nz" json:"nz"`
	Halo int `yaml:"halo" json:"halo"`
}

// Scenario describes one complete integration run.
type Scenario struct {
	Name    string         `yaml:"name" json:"name"`
	Grid    GridSpec       `yaml:"grid" json:"grid"`
	Params  stencil.Params `yaml:"params" json:"params"`
	Steps   int            `yaml:"steps" json:"steps"`
	Backend string         `yaml:"backend,omitempty" json:"backend,omitempty"`
	Initial Initial        `yaml:"initial" json:"initial"`
}

// Default returns the reference scenario: a 128x128x64 interior with a
// centered 40x40 unit box, smoothed for 100 steps.
func Default() *Scenario {
	return &Scenario{
		Name:    "hyperdiffusion-box",
		Grid:    GridSpec{NX: 128, NY: 128, NZ: 64, Halo: 2},
		Params:  stencil.Params{DX: 1, DT: 1, Alpha: -0.02},
		Steps:   100,
		Backend: "vector",
		Initial: Initial{
			Kind: KindBox,
			Options: map[string]any{
				"width":  40,
				"height": 40,
				"inside": 1.0,
			},
		},
	}
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a YAML scenario document. Unknown top-level keys are
// rejected so typos surface at load time instead of as silent defaults.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks the scenario semantically and aggregates every
// failure found. backends lists the recognized backend names; pass nil
// to skip the backend check.
func (s *Scenario) Validate(backends []string) error {
	var errs []error

	if s.Grid.NX < 1 || s.Grid.NY < 1 || s.Grid.NZ < 1 {
		errs = append(errs, &ValidationError{
			Key:    "grid",
			Reason: "interior dimensions must be at least 1",
			Value:  fmt.Sprintf("%dx%dx%d", s.Grid.NX, s.Grid.NY, s.Grid.NZ),
		})
	}
	if s.Grid.Halo < 2 {
		errs = append(errs, &ValidationError{
			Key:    "grid.halo",
			Reason: "halo must cover the stencil reach of 2",
			Value:  s.Grid.Halo,
		})
	}
	if s.Steps < 0 {
		errs = append(errs, &ValidationError{
			Key:    "steps",
			Reason: "must be non-negative",
			Value:  s.Steps,
		})
	}
	if err := s.Params.Validate(); err != nil {
		errs = append(errs, &ValidationError{
			Key:    "params.dx",
			Reason: err.Error(),
			Value:  s.Params.DX,
		})
	}
	if s.Backend != "" && backends != nil && !slices.Contains(backends, s.Backend) {
		errs = append(errs, &ValidationError{
			Key:    "backend",
			Reason: fmt.Sprintf("unknown backend (known: %v)", backends),
			Value:  s.Backend,
		})
	}
	if err := s.Initial.validate(s.Grid); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Build allocates the two integration buffers and applies the initial
// condition to the first. Halo cells of both buffers stay zero.
func (s *Scenario) Build() (in, out *grid.Field, err error) {
	in, err = grid.NewField(s.Grid.NX, s.Grid.NY, s.Grid.NZ, s.Grid.Halo)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to allocate input buffer: %w", err)
	}
	out, err = grid.NewField(s.Grid.NX, s.Grid.NY, s.Grid.NZ, s.Grid.Halo)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to allocate output buffer: %w", err)
	}
	if err := s.Initial.ApplyTo(in); err != nil {
		return nil, nil, fmt.Errorf("failed to apply initial condition: %w", err)
	}
	return in, out, nil
}
