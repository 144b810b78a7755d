package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Kind distinguishes continuous from on/off parameters.
type Kind int

const (
	// Continuous parameters take any value in [Min, Max].
	Continuous Kind = iota
	// Boolean parameters are 0 or 1; normalized values ≥ 0.5 read as on.
	Boolean
)

// BypassName is the conventional name of the bypass switch.
const BypassName = "bypass"

// Param is a single pedal control. Build one with New, Bool or Bypass.
type Param struct {
	Name    string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Default float64 // plain
	Curve   Curve
	Kind    Kind
	bypass  bool

	value atomic.Uint64 // normalized, as float64 bits
}

// IsBypass reports whether the parameter is the processor's bypass switch.
func (p *Param) IsBypass() bool { return p.bypass }

// Normalized returns the current value in [0,1].
func (p *Param) Normalized() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetNormalized stores n clamped to [0,1]. Boolean parameters snap to 0 or 1.
// NaN is ignored.
func (p *Param) SetNormalized(n float64) {
	if math.IsNaN(n) {
		return
	}

	n = clamp01(n)
	if p.Kind == Boolean {
		n = boolValue(n >= 0.5)
	}

	p.value.Store(math.Float64bits(n))
}

// Plain returns the current value in physical units.
func (p *Param) Plain() float64 {
	return p.Denormalize(p.Normalized())
}

// SetPlain stores a physical value. Non-finite values are ignored.
func (p *Param) SetPlain(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}

	p.SetNormalized(p.Normalize(v))
}

// On reports whether a Boolean parameter is set.
func (p *Param) On() bool {
	return p.Normalized() >= 0.5
}

// SetOn sets a Boolean parameter.
func (p *Param) SetOn(on bool) {
	p.SetNormalized(boolValue(on))
}

// Reset restores the default.
func (p *Param) Reset() {
	p.SetPlain(p.Default)
}

// Normalize converts a plain value to [0,1].
func (p *Param) Normalize(plain float64) float64 {
	if p.Kind == Boolean {
		return boolValue(plain >= 0.5)
	}

	return p.Curve.Normalize(plain, p.Min, p.Max)
}

// Denormalize converts n in [0,1] to a plain value.
func (p *Param) Denormalize(n float64) float64 {
	if p.Kind == Boolean {
		return boolValue(n >= 0.5)
	}

	return p.Curve.Denormalize(n, p.Min, p.Max)
}

// Format renders the current plain value for display.
func (p *Param) Format() string {
	if p.Kind == Boolean {
		if p.On() {
			return "on"
		}

		return "off"
	}

	s := strconv.FormatFloat(p.Plain(), 'f', 2, 64)
	if p.Unit != "" {
		s += " " + p.Unit
	}

	return s
}

// String implements fmt.Stringer.
func (p *Param) String() string {
	return fmt.Sprintf("%s=%s", p.Name, p.Format())
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
