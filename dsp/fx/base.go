package fx

import (
	"sync/atomic"

	"github.com/cwbudde/algo-pedals/dsp/core"
	"github.com/cwbudde/algo-pedals/dsp/param"
)

// Base implements the parameter, state and lifecycle parts of Processor.
// Pedals embed it and add Prepare, ProcessBlock and ProcessSample.
type Base struct {
	info   Info
	params *param.Set

	cfg   core.HostConfig
	stage atomic.Int32
}

// Init sets the description and parameters. HasBypass is derived from
// params. Call it once from the pedal constructor.
func (b *Base) Init(info Info, params *param.Set) {
	info.HasBypass = params.Bypass() != nil

	b.info = info
	b.params = params
	b.cfg = core.DefaultHostConfig()
	b.stage.Store(int32(Uninitialized))
}

// Info implements Processor.
func (b *Base) Info() Info { return b.info }

// Params implements Parameterized.
func (b *Base) Params() *param.Set { return b.params }

// Parameter implements Processor.
func (b *Base) Parameter(name string) (float64, bool) {
	return b.params.Normalized(name)
}

// SetParameter implements Processor.
func (b *Base) SetParameter(name string, normalized float64) bool {
	return b.params.SetNormalized(name, normalized)
}

// MarshalState implements Processor.
func (b *Base) MarshalState() []byte {
	return b.params.MarshalState()
}

// UnmarshalState implements Processor.
func (b *Base) UnmarshalState(data []byte) {
	b.params.UnmarshalState(data)
}

// Bypassed reports whether the bypass switch is on.
func (b *Base) Bypassed() bool {
	p := b.params.Bypass()
	return p != nil && p.On()
}

// PrepareBase records the host configuration and moves to Prepared. It
// returns the effective sample rate; unusable rates become
// core.DefaultSampleRate.
func (b *Base) PrepareBase(sampleRate float64, maxBlockSize int) float64 {
	b.cfg = core.NewHostConfig(sampleRate, maxBlockSize)
	b.stage.Store(int32(Prepared))

	return b.cfg.SampleRate
}

// SampleRate returns the prepared sample rate.
func (b *Base) SampleRate() float64 { return b.cfg.SampleRate }

// MaxBlockSize returns the prepared block size.
func (b *Base) MaxBlockSize() int { return b.cfg.MaxBlockSize }

// Stage returns the lifecycle state.
func (b *Base) Stage() Stage { return Stage(b.stage.Load()) }

// Ready reports whether Prepare has run, and marks the processor as
// Processing. Process methods call it once per block or sample.
func (b *Base) Ready() bool {
	switch Stage(b.stage.Load()) {
	case Processing:
		return true
	case Prepared:
		b.stage.Store(int32(Processing))
		return true
	default:
		return false
	}
}
