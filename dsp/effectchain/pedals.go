package effectchain

import (
	"github.com/cwbudde/algo-pedals/dsp/effects"
	"github.com/cwbudde/algo-pedals/dsp/effects/modulation"
	"github.com/cwbudde/algo-pedals/dsp/effects/pitch"
	"github.com/cwbudde/algo-pedals/dsp/effects/tuner"
	"github.com/cwbudde/algo-pedals/dsp/fx"
)

// Pedal names one built-in pedal type and how to build it.
type Pedal struct {
	Type string
	New  func() (fx.Processor, error)
}

var pedals = []Pedal{
	{Type: "rat", New: func() (fx.Processor, error) {
		return effects.NewDistortion(), nil
	}},
	{Type: "bigmuff", New: func() (fx.Processor, error) {
		return effects.NewFuzz(), nil
	}},
	{Type: "analog-delay", New: func() (fx.Processor, error) {
		return asProcessor(effects.NewDelay())
	}},
	{Type: "ce2", New: func() (fx.Processor, error) {
		return asProcessor(modulation.NewChorus())
	}},
	{Type: "phase90", New: func() (fx.Processor, error) {
		return asProcessor(modulation.NewPhaser())
	}},
	{Type: "octaver", New: func() (fx.Processor, error) {
		return asProcessor(pitch.NewOctaveShifter())
	}},
	{Type: "microamp", New: func() (fx.Processor, error) {
		return asProcessor(effects.NewBoost())
	}},
	{Type: "tuner", New: func() (fx.Processor, error) {
		return asProcessor(tuner.NewTuner())
	}},
}

// asProcessor keeps a failed constructor from producing a typed nil.
func asProcessor[P fx.Processor](p P, err error) (fx.Processor, error) {
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Pedals returns the built-in pedal types in catalogue order.
func Pedals() []Pedal {
	out := make([]Pedal, len(pedals))
	copy(out, pedals)

	return out
}

// ProcessorFactory turns a processor constructor into a registry Factory.
func ProcessorFactory(newProc func() (fx.Processor, error)) Factory {
	return func(_ Context) (Runtime, error) {
		proc, err := newProc()
		if err != nil {
			return nil, err
		}

		return NewProcessorRuntime(proc), nil
	}
}

// DefaultRegistry returns a Registry pre-populated with every built-in pedal.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for _, p := range pedals {
		r.MustRegister(p.Type, ProcessorFactory(p.New))
	}

	return r
}
