package effects

import (
	"math"

	"github.com/cwbudde/algo-pedals/dsp/filter/onepole"
	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-pedals/dsp/shaper"
)

const (
	ratDriveScaleDB  = 36.0
	ratDriveOffsetDB = -6.0
	ratOpAmpDrive    = 2.0

	ratDiodeThreshold = 0.6
	ratDiodeKnee      = 0.2
	ratDiodeMix       = 0.85

	ratFilterMinHz = 475.0
	ratFilterMaxHz = 32000.0

	volumeScaleDB  = 66.0
	volumeOffsetDB = -60.0

	ratLimiterDrive = 10.0
)

// Distortion is a ProCo RAT style op-amp distortion: pre-gain, op-amp
// saturation, a soft diode clamp to ground, a one-pole tone filter and an
// output stage with a tanh limiter.
type Distortion struct {
	fx.Base

	drive  *param.Param
	filter *param.Param
	volume *param.Param

	lp onepole.Lowpass
}

// NewDistortion returns an unprepared RAT distortion with default knobs.
func NewDistortion() *Distortion {
	d := &Distortion{
		drive:  param.New("drive").Label("Distortion").Default(0.5).Build(),
		filter: param.New("filter").Label("Filter").Default(0.5).Build(),
		volume: param.New("volume").Label("Volume").Default(0.8).Build(),
	}
	d.Init(fx.Info{Name: "RAT", Layout: fx.Mono},
		param.MustSet(d.drive, d.filter, d.volume, param.Bypass()))

	return d
}

// Prepare implements fx.Processor.
func (d *Distortion) Prepare(sampleRate float64, maxBlockSize int) {
	fs := d.PrepareBase(sampleRate, maxBlockSize)
	d.lp.Prepare(fs)
	d.lp.SetCutoff(d.Cutoff())
}

// Cutoff returns the tone filter cutoff in Hz for the current filter knob.
func (d *Distortion) Cutoff() float64 {
	return param.ExpMap(d.filter.Plain(), ratFilterMinHz, ratFilterMaxHz)
}

// ProcessSample implements fx.Processor.
func (d *Distortion) ProcessSample(x float64) float64 {
	if !d.Ready() || d.Bypassed() {
		return x
	}

	return d.process(x)
}

// ProcessBlock implements fx.Processor.
func (d *Distortion) ProcessBlock(block [][]float64) {
	if len(block) == 0 || !d.Ready() || d.Bypassed() {
		return
	}

	buf := block[0]
	for i, x := range buf {
		buf[i] = d.process(x)
	}
}

func (d *Distortion) process(x float64) float64 {
	x *= dbGain(param.AffineDB(d.drive.Plain(), ratDriveScaleDB, ratDriveOffsetDB))
	x = math.Tanh(ratOpAmpDrive * x)

	clipped := shaper.SoftClip(x, ratDiodeThreshold, ratDiodeKnee)
	x = shaper.Blend(x, clipped, ratDiodeMix)

	d.lp.SetCutoff(d.Cutoff())
	y := d.lp.Process(x)

	y *= dbGain(param.AffineDB(d.volume.Plain(), volumeScaleDB, volumeOffsetDB))

	return shaper.Limit(y, ratLimiterDrive)
}
