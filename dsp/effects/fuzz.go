package effects

import (
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
	"github.com/cwbudde/algo-pedals/dsp/filter/onepole"
	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-pedals/dsp/shaper"
)

const (
	muffSustainScaleDB  = 56.0
	muffSustainOffsetDB = -10.0

	muffStage1Threshold = 0.75
	muffStage1Knee      = 0.20
	muffCoupling        = 0.88

	muffStage2BaseGain = 2.0
	muffStage2Sustain  = 3.0
	muffStage2Thresh   = 0.6
	muffStage2Knee     = 0.16
	muffStage2Mix      = 0.9

	muffToneMinHz     = 250.0
	muffToneMaxHz     = 3500.0
	muffLowRatio      = 0.45
	muffHighRatio     = 0.9
	muffMaxMidCut     = 0.85
	muffToneSmoothing = 0.6

	muffLimiterDrive = 8.0
)

// Fuzz is a Big Muff style two-stage fuzz followed by the passive tone
// stack with its characteristic mid scoop.
type Fuzz struct {
	fx.Base

	sustain *param.Param
	tone    *param.Param
	volume  *param.Param

	low  onepole.Lowpass
	high onepole.Highpass

	prevTone float64
}

// NewFuzz returns an unprepared Big Muff fuzz with default knobs.
func NewFuzz() *Fuzz {
	f := &Fuzz{
		sustain: param.New("sustain").Label("Sustain").Default(0.6).Build(),
		tone:    param.New("tone").Label("Tone").Default(0.5).Build(),
		volume:  param.New("volume").Label("Volume").Default(0.8).Build(),
	}
	f.Init(fx.Info{Name: "Big Muff", Layout: fx.Mono},
		param.MustSet(f.sustain, f.tone, f.volume, param.Bypass()))

	return f
}

// Prepare implements fx.Processor.
func (f *Fuzz) Prepare(sampleRate float64, maxBlockSize int) {
	fs := f.PrepareBase(sampleRate, maxBlockSize)

	f.low.Prepare(fs)
	f.high.Prepare(fs)
	f.prevTone = 0
	f.updateTone(f.tone.Plain())
}

// ToneCenter returns the tone stack center frequency in Hz.
func (f *Fuzz) ToneCenter() float64 {
	return param.ExpMap(f.tone.Plain(), muffToneMinHz, muffToneMaxHz)
}

// ProcessSample implements fx.Processor.
func (f *Fuzz) ProcessSample(x float64) float64 {
	if !f.Ready() || f.Bypassed() {
		return x
	}

	return f.process(x)
}

// ProcessBlock implements fx.Processor.
func (f *Fuzz) ProcessBlock(block [][]float64) {
	if len(block) == 0 || !f.Ready() || f.Bypassed() {
		return
	}

	buf := block[0]
	for i, x := range buf {
		buf[i] = f.process(x)
	}
}

func (f *Fuzz) updateTone(tone float64) {
	center := param.ExpMap(tone, muffToneMinHz, muffToneMaxHz)
	f.low.SetCutoff(muffLowRatio * center)
	f.high.SetCutoff(muffHighRatio * center)
}

func (f *Fuzz) process(x float64) float64 {
	sustain := f.sustain.Plain()
	tone := f.tone.Plain()

	x *= dbGain(param.AffineDB(sustain, muffSustainScaleDB, muffSustainOffsetDB))

	x = shaper.SoftClip(x, muffStage1Threshold, muffStage1Knee)
	x *= muffCoupling

	x = math.Tanh((muffStage2BaseGain + muffStage2Sustain*sustain) * x)
	x = shaper.Blend(x, shaper.SoftClip(x, muffStage2Thresh, muffStage2Knee), muffStage2Mix)

	f.updateTone(tone)

	low := f.low.Process(x)
	high := f.high.Process(x)
	mid := x - low - high

	scoop := core.Clamp01(1 - 4*math.Abs(tone-0.5))
	toneOut := low*(1-tone) + high*tone + mid*(1-muffMaxMidCut*scoop)

	y := muffToneSmoothing*toneOut + (1-muffToneSmoothing)*f.prevTone
	f.prevTone = core.FlushDenormals(toneOut)

	y *= dbGain(param.AffineDB(f.volume.Plain(), volumeScaleDB, volumeOffsetDB))

	return shaper.Limit(y, muffLimiterDrive)
}
