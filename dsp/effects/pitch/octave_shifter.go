package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedals/dsp/delay"
	"github.com/cwbudde/algo-pedals/dsp/filter/onepole"
	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-pedals/dsp/shaper"
)

const (
	defaultRingSize     = 4096
	defaultSafetyOffset = 64
	minRingSize         = 256

	wetLowpassHz  = 8000.0
	wetDCCutoffHz = 60.0

	octaveLimiterDrive = 5.0
	octaveOutputScale  = 0.999
)

// Octave voices in declaration order.
var octaveVoices = [...]struct {
	name      string
	label     string
	semitones float64
}{
	{"up2", "+2 Oct", 24},
	{"up1", "+1 Oct", 12},
	{"down1", "-1 Oct", -12},
	{"down2", "-2 Oct", -24},
}

// OctaveOption mutates octave shifter construction parameters.
type OctaveOption func(*octaveConfig) error

type octaveConfig struct {
	ringSize int
	safety   int
}

// WithRingSize sets the ring buffer length in samples.
func WithRingSize(n int) OctaveOption {
	return func(cfg *octaveConfig) error {
		if n < minRingSize {
			return fmt.Errorf("octave ring size must be >= %d: %d", minRingSize, n)
		}

		cfg.ringSize = n

		return nil
	}
}

// WithSafetyOffset sets how many samples the read voices stay behind the
// write cursor.
func WithSafetyOffset(n int) OctaveOption {
	return func(cfg *octaveConfig) error {
		if n < 1 {
			return fmt.Errorf("octave safety offset must be >= 1: %d", n)
		}

		cfg.safety = n

		return nil
	}
}

// Ratio returns the playback step for a shift in semitones.
func Ratio(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

type octaveVoice struct {
	enabled *param.Param
	cursor  delay.Voice
	active  bool
}

// OctaveShifter mixes up to four octave voices read from one ring buffer
// at 4×, 2×, ½× and ¼× speed. The averaged wet signal is smoothed and
// DC-blocked before the dry/wet blend.
type OctaveShifter struct {
	fx.Base

	blend  *param.Param
	voices [len(octaveVoices)]octaveVoice

	safety int
	ring   *delay.Line
	lp     onepole.Lowpass
	dc     onepole.DCBlocker
}

// NewOctaveShifter returns an unprepared octave shifter with every voice off.
func NewOctaveShifter(opts ...OctaveOption) (*OctaveShifter, error) {
	cfg := octaveConfig{ringSize: defaultRingSize, safety: defaultSafetyOffset}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if 4*cfg.safety > cfg.ringSize {
		return nil, fmt.Errorf("octave safety offset %d too large for ring of %d", cfg.safety, cfg.ringSize)
	}

	ring, err := delay.New(cfg.ringSize)
	if err != nil {
		return nil, err
	}

	s := &OctaveShifter{
		blend:  param.New("blend").Label("Blend").Default(0.5).Build(),
		safety: cfg.safety,
		ring:   ring,
	}

	params := []*param.Param{s.blend}

	for i, v := range octaveVoices {
		p := param.Bool(v.name, false)
		p.Label = v.label

		s.voices[i] = octaveVoice{enabled: p, cursor: delay.NewVoice(Ratio(v.semitones))}
		params = append(params, p)
	}

	s.Init(fx.Info{Name: "Octaver", Layout: fx.Mono}, param.MustSet(append(params, param.Bypass())...))

	return s, nil
}

// Prepare implements fx.Processor.
func (s *OctaveShifter) Prepare(sampleRate float64, maxBlockSize int) {
	fs := s.PrepareBase(sampleRate, maxBlockSize)

	s.ring.Reset()

	for i := range s.voices {
		s.voices[i].cursor.Resync(s.ring, s.safety)
		s.voices[i].active = false
	}

	s.lp.Prepare(fs)
	s.lp.SetCutoff(wetLowpassHz)
	s.dc.Prepare(fs, wetDCCutoffHz)
}

// RingSize returns the ring buffer length.
func (s *OctaveShifter) RingSize() int { return s.ring.Len() }

// SafetyOffset returns the minimum read lag in samples.
func (s *OctaveShifter) SafetyOffset() int { return s.safety }

// ProcessSample implements fx.Processor.
func (s *OctaveShifter) ProcessSample(x float64) float64 {
	if !s.Ready() || s.Bypassed() {
		return x
	}

	return s.process(x)
}

// ProcessBlock implements fx.Processor.
func (s *OctaveShifter) ProcessBlock(block [][]float64) {
	if len(block) == 0 || !s.Ready() || s.Bypassed() {
		return
	}

	buf := block[0]
	for i, x := range buf {
		buf[i] = s.process(x)
	}
}

func (s *OctaveShifter) process(x float64) float64 {
	s.ring.Write(x)

	var sum float64

	count := 0

	for i := range s.voices {
		v := &s.voices[i]

		on := v.enabled.On()
		if on && !v.active {
			v.cursor.Resync(s.ring, s.safety)
		}

		v.active = on
		if !on {
			continue
		}

		sum += v.cursor.Next(s.ring, s.safety)
		count++
	}

	var wet float64
	if count > 0 {
		wet = sum / float64(count)
	}

	wet = s.dc.Process(s.lp.Process(wet))

	blend := s.blend.Plain()

	return shaper.LimitScaled((1-blend)*x+blend*wet, octaveLimiterDrive, octaveOutputScale)
}
