package param

// Builder provides a fluent API for declaring parameters.
type Builder struct {
	p *Param
}

// New starts a continuous [0,1] linear parameter.
func New(name string) *Builder {
	return &Builder{p: &Param{Name: name, Label: name, Min: 0, Max: 1}}
}

// Label sets the display label.
func (b *Builder) Label(label string) *Builder {
	b.p.Label = label
	return b
}

// Range sets the plain bounds.
func (b *Builder) Range(min, max float64) *Builder {
	b.p.Min = min
	b.p.Max = max
	return b
}

// Default sets the plain default.
func (b *Builder) Default(value float64) *Builder {
	b.p.Default = value
	return b
}

// Unit sets the display unit.
func (b *Builder) Unit(unit string) *Builder {
	b.p.Unit = unit
	return b
}

// Curve sets the normalized-to-plain mapping.
func (b *Builder) Curve(c Curve) *Builder {
	b.p.Curve = c
	return b
}

// Build returns the parameter initialised to its default.
func (b *Builder) Build() *Param {
	b.p.Reset()
	return b.p
}

// Bool declares an on/off parameter.
func Bool(name string, def bool) *Param {
	p := &Param{Name: name, Label: name, Min: 0, Max: 1, Kind: Boolean, Default: boolValue(def)}
	p.Reset()

	return p
}

// Bypass declares the standard bypass switch, off by default.
func Bypass() *Param {
	p := Bool(BypassName, false)
	p.Label = "Bypass"
	p.bypass = true

	return p
}
