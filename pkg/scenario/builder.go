package scenario

// Builder assembles a Scenario fluently, for tests and embedded use
// where a YAML file would be ceremony.
type Builder struct {
	sc Scenario
}

// NewBuilder starts a scenario with the given name and the reference
// defaults for everything else (halo 2, dx/dt 1, alpha -0.02, vector
// backend, zero initial condition).
func NewBuilder(name string) *Builder {
	d := Default()
	d.Name = name
	d.Initial = Initial{Kind: KindZero}
	return &Builder{sc: *d}
}

// Grid sets the interior shape.
func (b *Builder) Grid(nx, ny, nz int) *Builder {
	b.sc.Grid.NX, b.sc.Grid.NY, b.sc.Grid.NZ = nx, ny, nz
	return b
}

// Halo sets the horizontal halo width.
func (b *Builder) Halo(h int) *Builder {
	b.sc.Grid.Halo = h
	return b
}

// Spacing sets the horizontal grid spacing dx.
func (b *Builder) Spacing(dx float64) *Builder {
	b.sc.Params.DX = dx
	return b
}

// TimeStep sets the forward-Euler step size dt.
func (b *Builder) TimeStep(dt float64) *Builder {
	b.sc.Params.DT = dt
	return b
}

// Alpha sets the diffusion coefficient (negative for decay).
func (b *Builder) Alpha(a float64) *Builder {
	b.sc.Params.Alpha = a
	return b
}

// Steps sets the iteration count.
func (b *Builder) Steps(n int) *Builder {
	b.sc.Steps = n
	return b
}

// Backend selects the kernel by registry name.
func (b *Builder) Backend(name string) *Builder {
	b.sc.Backend = name
	return b
}

// Box selects a centered box initial condition.
func (b *Builder) Box(width, height int, inside, outside float64) *Builder {
	b.sc.Initial = Initial{
		Kind: KindBox,
		Options: map[string]any{
			"width":   width,
			"height":  height,
			"inside":  inside,
			"outside": outside,
		},
	}
	return b
}

// Gaussian selects a centered Gaussian bump initial condition.
func (b *Builder) Gaussian(amplitude, sigma float64) *Builder {
	b.sc.Initial = Initial{
		Kind: KindGaussian,
		Options: map[string]any{
			"amplitude": amplitude,
			"sigma":     sigma,
		},
	}
	return b
}

// Uniform selects a constant initial condition.
func (b *Builder) Uniform(value float64) *Builder {
	b.sc.Initial = Initial{
		Kind:    KindUniform,
		Options: map[string]any{"value": value},
	}
	return b
}

// Build validates the assembled scenario (backend check skipped; the
// registry is not known here) and returns a copy.
func (b *Builder) Build() (*Scenario, error) {
	sc := b.sc
	if err := sc.Validate(nil); err != nil {
		return nil, err
	}
	return &sc, nil
}
