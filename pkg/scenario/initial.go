package scenario

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/jdahm/lattice/pkg/grid"
)

// Recognized initial-condition kinds.
const (
	KindZero     = "zero"
	KindUniform  = "uniform"
	KindBox      = "box"
	KindGaussian = "gaussian"
)

// Initial selects and parameterizes the initial condition. Options is a
// loosely typed bag decoded per kind, so scenario files stay flat and
// new kinds do not grow the struct.
type Initial struct {
	Kind    string         `yaml:"kind" json:"kind"`
	Options map[string]any `yaml:"options,omitempty" json:"options,omitempty"`
}

// BoxOptions parameterize the centered horizontal box.
type BoxOptions struct {
	Width   int     `mapstructure:"width"`
	Height  int     `mapstructure:"height"`
	Inside  float64 `mapstructure:"inside"`
	Outside float64 `mapstructure:"outside"`
}

// GaussianOptions parameterize the centered horizontal bump.
type GaussianOptions struct {
	Amplitude float64 `mapstructure:"amplitude"`
	Sigma     float64 `mapstructure:"sigma"`
}

// UniformOptions parameterize the constant fill.
type UniformOptions struct {
	Value float64 `mapstructure:"value"`
}

// ApplyTo writes the initial condition into the interior of f.
func (in Initial) ApplyTo(f *grid.Field) error {
	switch in.Kind {
	case KindZero, "":
		return nil
	case KindUniform:
		var opts UniformOptions
		if err := in.decode(&opts); err != nil {
			return err
		}
		grid.FillUniform(f, opts.Value)
		return nil
	case KindBox:
		var opts BoxOptions
		if err := in.decode(&opts); err != nil {
			return err
		}
		return grid.FillBox(f, opts.Width, opts.Height, opts.Inside, opts.Outside)
	case KindGaussian:
		var opts GaussianOptions
		if err := in.decode(&opts); err != nil {
			return err
		}
		return grid.FillGaussian(f, opts.Amplitude, opts.Sigma)
	default:
		return &ValidationError{Key: "initial.kind", Reason: "unknown kind", Value: in.Kind}
	}
}

// decode maps Options into the kind-specific struct. Weak typing lets
// YAML integers land in float fields; unused keys are rejected so typos
// do not silently fall back to zero values.
func (in Initial) decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to build option decoder: %w", err)
	}
	if err := dec.Decode(in.Options); err != nil {
		return &ValidationError{Key: "initial.options", Reason: err.Error(), Value: in.Kind}
	}
	return nil
}

// validate checks the initial condition against the grid without
// touching any field data.
func (in Initial) validate(g GridSpec) error {
	switch in.Kind {
	case KindZero, "", KindUniform:
		return nil
	case KindBox:
		var opts BoxOptions
		if err := in.decode(&opts); err != nil {
			return err
		}
		if opts.Width < 1 || opts.Width > g.NX || opts.Height < 1 || opts.Height > g.NY {
			return &ValidationError{
				Key:    "initial.options",
				Reason: fmt.Sprintf("box %dx%d does not fit interior %dx%d", opts.Width, opts.Height, g.NX, g.NY),
			}
		}
		return nil
	case KindGaussian:
		var opts GaussianOptions
		if err := in.decode(&opts); err != nil {
			return err
		}
		if opts.Sigma <= 0 {
			return &ValidationError{Key: "initial.options.sigma", Reason: "must be positive", Value: opts.Sigma}
		}
		return nil
	default:
		return &ValidationError{Key: "initial.kind", Reason: "unknown kind", Value: in.Kind}
	}
}
