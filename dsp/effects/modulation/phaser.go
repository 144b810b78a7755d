package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
	"github.com/cwbudde/algo-pedals/dsp/filter/allpass"
	"github.com/cwbudde/algo-pedals/dsp/filter/onepole"
	"github.com/cwbudde/algo-pedals/dsp/fx"
	mod "github.com/cwbudde/algo-pedals/dsp/modulation"
	"github.com/cwbudde/algo-pedals/dsp/param"
)

const (
	// MinRateHz and MaxRateHz bound the rate knobs of the chorus and phaser.
	MinRateHz = 0.05
	MaxRateHz = 6.0

	defaultPhaserRateHz = 0.6
	defaultPhaserDepth  = 0.85
	defaultPhaserDCHz   = 20.0
	maxPhaserStages     = 12
)

// DefaultPhaserStages are the allpass base frequencies of the Phase 90.
var DefaultPhaserStages = []float64{700, 1000, 1300, 1700}

// PhaserOption mutates phaser construction parameters.
type PhaserOption func(*phaserConfig) error

type phaserConfig struct {
	stages []float64
	depth  float64
	dcHz   float64
}

// WithPhaserStages sets the base frequency of each allpass stage, one to
// twelve stages.
func WithPhaserStages(freqsHz ...float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if len(freqsHz) < 1 || len(freqsHz) > maxPhaserStages {
			return fmt.Errorf("phaser stages must be in [1, %d]: %d", maxPhaserStages, len(freqsHz))
		}

		for _, f := range freqsHz {
			if !(f > 0) || math.IsInf(f, 0) {
				return fmt.Errorf("phaser stage frequency must be > 0 and finite: %f", f)
			}
		}

		cfg.stages = append([]float64(nil), freqsHz...)

		return nil
	}
}

// WithPhaserDepth sets how far the LFO sweeps each stage, in [0, 1].
func WithPhaserDepth(depth float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if depth < 0 || depth > 1 || math.IsNaN(depth) {
			return fmt.Errorf("phaser depth must be in [0, 1]: %f", depth)
		}

		cfg.depth = depth

		return nil
	}
}

// WithPhaserDCCutoff sets the input DC blocker cutoff in Hz.
func WithPhaserDCCutoff(hz float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if !(hz > 0) || math.IsInf(hz, 0) {
			return fmt.Errorf("phaser DC cutoff must be > 0 and finite: %f", hz)
		}

		cfg.dcHz = hz

		return nil
	}
}

// Phaser is an MXR Phase 90 style phaser: a DC blocker followed by a
// cascade of first-order allpass stages swept by a sine LFO.
//
// The output is always the allpass path. The bypass parameter is kept for
// hosts and indicators but never changes the audio.
type Phaser struct {
	fx.Base

	rate *param.Param

	stages []float64
	depth  float64
	dcHz   float64

	lfo     mod.LFO
	dc      onepole.DCBlocker
	cascade *allpass.Cascade
	coefs   []float64
}

// NewPhaser returns an unprepared phaser.
func NewPhaser(opts ...PhaserOption) (*Phaser, error) {
	cfg := phaserConfig{
		stages: DefaultPhaserStages,
		depth:  defaultPhaserDepth,
		dcHz:   defaultPhaserDCHz,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	p := &Phaser{
		rate: param.New("rate").Label("Speed").Unit("Hz").
			Range(MinRateHz, MaxRateHz).Curve(param.Exponential).
			Default(defaultPhaserRateHz).Build(),
		stages:  append([]float64(nil), cfg.stages...),
		depth:   cfg.depth,
		dcHz:    cfg.dcHz,
		cascade: allpass.NewCascade(len(cfg.stages)),
		coefs:   make([]float64, len(cfg.stages)),
	}
	p.Init(fx.Info{Name: "Phase 90", Layout: fx.Mono}, param.MustSet(p.rate, param.Bypass()))

	return p, nil
}

// Prepare implements fx.Processor.
func (p *Phaser) Prepare(sampleRate float64, maxBlockSize int) {
	fs := p.PrepareBase(sampleRate, maxBlockSize)

	p.lfo.SetRate(p.rate.Plain())
	p.lfo.Prepare(fs)
	p.dc.Prepare(fs, p.dcHz)
	p.cascade.Reset()
}

// Rate returns the LFO rate in Hz.
func (p *Phaser) Rate() float64 { return p.rate.Plain() }

// Stages returns a copy of the stage base frequencies.
func (p *Phaser) Stages() []float64 { return append([]float64(nil), p.stages...) }

// ProcessSample implements fx.Processor.
func (p *Phaser) ProcessSample(x float64) float64 {
	if !p.Ready() {
		return x
	}

	return p.process(x)
}

// ProcessBlock implements fx.Processor.
func (p *Phaser) ProcessBlock(block [][]float64) {
	if len(block) == 0 || !p.Ready() {
		return
	}

	buf := block[0]
	for i, x := range buf {
		buf[i] = p.process(x)
	}
}

func (p *Phaser) process(x float64) float64 {
	p.lfo.SetRate(p.rate.Plain())
	sweep := 1 + p.depth*p.lfo.Next()

	fs := p.SampleRate()
	for i, base := range p.stages {
		p.coefs[i] = allpass.Coefficient(base*sweep, fs)
	}

	y := p.cascade.Process(p.dc.Process(x), p.coefs)

	return core.Clamp(y, -1, 1)
}
