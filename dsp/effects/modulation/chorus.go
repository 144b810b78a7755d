package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-pedals/dsp/delay"
	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/interp"
	mod "github.com/cwbudde/algo-pedals/dsp/modulation"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-pedals/dsp/shaper"
)

const (
	defaultChorusRateHz = 0.5477

	chorusBaseDelayMs = 10.0
	chorusMaxModMs    = 6.5
	chorusMaxDelayMs  = 30.0
	chorusMargin      = 4
	chorusWetScale    = 0.6
	chorusLimiter     = 4.0
)

// ChorusOption mutates chorus construction parameters.
type ChorusOption func(*chorusConfig) error

type chorusConfig struct {
	mode interp.Mode
}

// WithChorusInterpolation selects the modulated read kernel. The default
// is interp.Linear.
func WithChorusInterpolation(mode interp.Mode) ChorusOption {
	return func(cfg *chorusConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("chorus interpolation mode is invalid: %v", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// Chorus is a Boss CE-2 style chorus: one delay tap swept around 10 ms by
// a sine LFO. Depth widens the sweep and raises the wet level together.
type Chorus struct {
	fx.Base

	rate  *param.Param
	depth *param.Param

	lfo  mod.LFO
	line *delay.Line
}

// NewChorus returns an unprepared chorus.
func NewChorus(opts ...ChorusOption) (*Chorus, error) {
	cfg := chorusConfig{mode: interp.Linear}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	line, err := delay.New(1, delay.WithMode(cfg.mode))
	if err != nil {
		return nil, err
	}

	c := &Chorus{
		rate: param.New("rate").Label("Rate").Unit("Hz").
			Range(MinRateHz, MaxRateHz).Curve(param.Exponential).
			Default(defaultChorusRateHz).Build(),
		depth: param.New("depth").Label("Depth").Default(0.5).Build(),
		line:  line,
	}
	c.Init(fx.Info{Name: "CE-2", Layout: fx.Mono}, param.MustSet(c.rate, c.depth, param.Bypass()))

	return c, nil
}

// Prepare implements fx.Processor.
func (c *Chorus) Prepare(sampleRate float64, maxBlockSize int) {
	fs := c.PrepareBase(sampleRate, maxBlockSize)

	// SamplesFor never returns less than the margin, so Resize cannot fail.
	_ = c.line.Resize(delay.SamplesFor(chorusMaxDelayMs, fs, chorusMargin))

	c.lfo.SetRate(c.rate.Plain())
	c.lfo.Prepare(fs)
}

// Rate returns the LFO rate in Hz.
func (c *Chorus) Rate() float64 { return c.rate.Plain() }

// DelayMs returns the tap delay in milliseconds for an LFO value in [-1,1].
func (c *Chorus) DelayMs(lfo float64) float64 {
	return chorusDelayMs(lfo, c.depth.Plain())
}

func chorusDelayMs(lfo, depth float64) float64 {
	return chorusBaseDelayMs + 0.5*lfo*depth*chorusMaxModMs
}

// ProcessSample implements fx.Processor.
func (c *Chorus) ProcessSample(x float64) float64 {
	if !c.Ready() || c.Bypassed() {
		return x
	}

	return c.process(x)
}

// ProcessBlock implements fx.Processor.
func (c *Chorus) ProcessBlock(block [][]float64) {
	if len(block) == 0 || !c.Ready() || c.Bypassed() {
		return
	}

	buf := block[0]
	for i, x := range buf {
		buf[i] = c.process(x)
	}
}

func (c *Chorus) process(x float64) float64 {
	depth := c.depth.Plain()

	c.lfo.SetRate(c.rate.Plain())
	delaySamples := chorusDelayMs(c.lfo.Next(), depth) * c.SampleRate() / 1000

	// The tap is read after the write, so the newest sample sits at delay 1.
	c.line.Write(x)
	wet := c.line.ReadFractional(delaySamples + 1)

	wetLevel := chorusWetScale * depth
	out := (1-wetLevel)*x + wetLevel*wet

	return shaper.LimitScaled(out, chorusLimiter, 1/chorusLimiter)
}
