package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedals/dsp/delay"
	"github.com/cwbudde/algo-pedals/dsp/filter/onepole"
	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/interp"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-pedals/dsp/shaper"
)

const (
	// MinDelayMs and MaxDelayMs bound the delay knob.
	MinDelayMs = 20.0
	MaxDelayMs = 650.0

	delayMarginSamples = 4

	delayRegenScale    = 0.33
	delayFeedbackMaxHz = 6000.0
	delayFeedbackMinHz = 800.0
	delayFeedbackAtten = 0.95
	delaySaturation    = 3.0
	delayLimiterDrive  = 10.0
	delayTailSeconds   = MaxDelayMs / 1000
)

// DelayOption configures an analog delay at construction.
type DelayOption func(*delayConfig) error

type delayConfig struct {
	mode interp.Mode
}

// WithDelayInterpolation selects the fractional read kernel. The default
// is interp.Linear.
func WithDelayInterpolation(mode interp.Mode) DelayOption {
	return func(cfg *delayConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation mode is invalid: %v", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// Delay is a bucket-brigade style analog delay. The repeats pass through a
// one-pole lowpass that darkens as regeneration rises, and every write is
// soft-saturated.
type Delay struct {
	fx.Base

	delay *param.Param
	mix   *param.Param
	regen *param.Param

	line     *delay.Line
	feedback onepole.Lowpass
}

// NewDelay returns an unprepared analog delay.
func NewDelay(opts ...DelayOption) (*Delay, error) {
	cfg := delayConfig{mode: interp.Linear}

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

	d := &Delay{
		delay: param.New("delay").Label("Delay").Default(0.5).Build(),
		mix:   param.New("mix").Label("Mix").Default(0.5).Build(),
		regen: param.New("regen").Label("Regen").Default(0.5).Build(),
		line:  line,
	}
	d.Init(fx.Info{Name: "Analog Delay", Layout: fx.Mono, TailSeconds: delayTailSeconds},
		param.MustSet(d.delay, d.mix, d.regen, param.Bypass()))

	return d, nil
}

// Prepare implements fx.Processor. The line is sized for MaxDelayMs.
func (d *Delay) Prepare(sampleRate float64, maxBlockSize int) {
	fs := d.PrepareBase(sampleRate, maxBlockSize)

	// SamplesFor never returns less than the margin, so Resize cannot fail.
	_ = d.line.Resize(delay.SamplesFor(MaxDelayMs, fs, delayMarginSamples))

	d.feedback.Prepare(fs)
	d.feedback.SetCutoff(d.FeedbackCutoff())
}

// Time returns the delay time in milliseconds.
func (d *Delay) Time() float64 {
	return param.ExpMap(d.delay.Plain(), MinDelayMs, MaxDelayMs)
}

// FeedbackCutoff returns the repeat filter cutoff in Hz.
func (d *Delay) FeedbackCutoff() float64 {
	r := d.regen.Plain() * delayRegenScale
	return delayFeedbackMaxHz*(1-r) + delayFeedbackMinHz*r
}

// ProcessSample implements fx.Processor.
func (d *Delay) ProcessSample(x float64) float64 {
	if !d.Ready() || d.Bypassed() {
		return x
	}

	return d.process(x)
}

// ProcessBlock implements fx.Processor.
func (d *Delay) ProcessBlock(block [][]float64) {
	if len(block) == 0 || !d.Ready() || d.Bypassed() {
		return
	}

	buf := block[0]
	for i, x := range buf {
		buf[i] = d.process(x)
	}
}

func (d *Delay) process(x float64) float64 {
	delaySamples := d.Time() * d.SampleRate() / 1000
	delayed := d.line.ReadFractional(delaySamples)

	regen := d.regen.Plain() * delayRegenScale
	d.feedback.SetCutoff(d.FeedbackCutoff())
	fb := d.feedback.Process(delayed * regen)

	d.line.Write(math.Tanh(delaySaturation * (x + delayFeedbackAtten*fb)))

	mix := d.mix.Plain()

	return shaper.Limit((1-mix)*x+mix*delayed, delayLimiterDrive)
}
