package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-vecmath"
)

// MXR Micro Amp gain network: 1 + (R4 + R5)/R6 with R5 the gain pot.
const (
	microAmpR4    = 56000.0
	microAmpR5Max = 500000.0
	microAmpR6    = 2700.0
	microAmpMax   = 20.0

	defaultBoostRampSeconds = 0.05
)

// circuitGain is the non-inverting stage gain for a pot position in [0,1],
// capped at the op-amp ceiling.
func circuitGain(knob float64) float64 {
	r5 := core.Clamp01(knob) * microAmpR5Max
	return math.Min(1+(microAmpR4+r5)/microAmpR6, microAmpMax)
}

// BoostCeilingDB is the largest boost in dB the circuit can produce.
var BoostCeilingDB = core.LinearToDB(circuitGain(1))

// BoostOption configures a Boost at construction.
type BoostOption func(*boostConfig) error

type boostConfig struct {
	rampSeconds float64
}

// WithBoostRamp sets how long gain changes take to settle.
func WithBoostRamp(seconds float64) BoostOption {
	return func(cfg *boostConfig) error {
		if !(seconds >= 0) || math.IsInf(seconds, 0) {
			return fmt.Errorf("boost ramp must be a finite value >= 0: %f", seconds)
		}

		cfg.rampSeconds = seconds

		return nil
	}
}

// Boost is an MXR Micro Amp style clean boost. The gain knob sweeps the
// circuit's range linearly in dB, changes are ramped, and both channels are
// limited with tanh.
type Boost struct {
	fx.Base

	gain *param.Param

	rampSeconds float64
	smoother    param.Smoother
	ramp        []float64
}

// NewBoost returns an unprepared stereo boost.
func NewBoost(opts ...BoostOption) (*Boost, error) {
	cfg := boostConfig{rampSeconds: defaultBoostRampSeconds}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	b := &Boost{
		gain:        param.New("gain").Label("Gain").Default(0.5).Build(),
		rampSeconds: cfg.rampSeconds,
	}
	b.Init(fx.Info{Name: "Micro Amp", Layout: fx.Stereo}, param.MustSet(b.gain, param.Bypass()))

	return b, nil
}

// Prepare implements fx.Processor.
func (b *Boost) Prepare(sampleRate float64, maxBlockSize int) {
	fs := b.PrepareBase(sampleRate, maxBlockSize)

	b.ramp = core.EnsureLen(b.ramp, b.MaxBlockSize())
	b.smoother.Reset(fs, b.rampSeconds)
	b.smoother.SetCurrentAndTarget(b.Gain())
}

// Gain returns the target linear gain for the current knob position.
func (b *Boost) Gain() float64 {
	return math.Min(dbGain(param.AffineDB(b.gain.Plain(), BoostCeilingDB, 0)), microAmpMax)
}

// CurrentGain returns the smoothed gain applied to the last sample.
func (b *Boost) CurrentGain() float64 { return b.smoother.Current() }

// ProcessSample implements fx.Processor.
func (b *Boost) ProcessSample(x float64) float64 {
	if !b.Ready() || b.Bypassed() {
		return x
	}

	b.smoother.SetTarget(b.Gain())

	return math.Tanh(x * b.smoother.Next())
}

// ProcessBlock implements fx.Processor. Both channels share one gain ramp.
func (b *Boost) ProcessBlock(block [][]float64) {
	channels := fx.ActiveChannels(block, fx.Stereo)
	if channels == 0 || !b.Ready() || b.Bypassed() {
		return
	}

	n := len(block[0])
	for ch := 1; ch < channels; ch++ {
		n = min(n, len(block[ch]))
	}

	b.smoother.SetTarget(b.Gain())

	for start := 0; start < n; start += len(b.ramp) {
		end := min(start+len(b.ramp), n)
		ramp := b.ramp[:end-start]
		b.smoother.Fill(ramp)

		for ch := range channels {
			seg := block[ch][start:end]
			vecmath.MulBlockInPlace(seg, ramp)

			for i, v := range seg {
				seg[i] = math.Tanh(v)
			}
		}
	}
}
