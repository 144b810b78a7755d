// Package tuner provides the chromatic tuner pedal. Audio passes through
// unchanged while an autocorrelation detector tracks the input pitch; the
// latest reading is published lock-free for a display goroutine to poll.
package tuner

import (
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-pedals/dsp/pitch"
)

// DefaultHop is how many samples ProcessSample accumulates between
// detections.
const DefaultHop = 512

// Option mutates tuner construction parameters.
type Option func(*config) error

type config struct {
	hop      int
	detector []pitch.Option
}

// WithHop sets the ProcessSample detection interval in samples.
func WithHop(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("tuner hop must be >= 1: %d", n)
		}

		cfg.hop = n

		return nil
	}
}

// WithDetector appends options for the underlying pitch.Detector. The
// tuner starts from pitch.WithMethod(pitch.FFT).
func WithDetector(opts ...pitch.Option) Option {
	return func(cfg *config) error {
		cfg.detector = append(cfg.detector, opts...)
		return nil
	}
}

// Tuner is a chromatic tuner. It has no bypass: the audio path is always
// transparent.
type Tuner struct {
	fx.Base

	useFlats *param.Param

	detector *pitch.Detector
	hop      int
	pending  int

	reading    reading
	detections atomic.Uint64
}

// NewTuner returns an unprepared tuner.
func NewTuner(opts ...Option) (*Tuner, error) {
	cfg := config{
		hop:      DefaultHop,
		detector: []pitch.Option{pitch.WithMethod(pitch.FFT)},
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	det, err := pitch.NewDetector(0, cfg.detector...)
	if err != nil {
		return nil, fmt.Errorf("tuner detector: %w", err)
	}

	t := &Tuner{
		useFlats: param.Bool("useFlats", false),
		detector: det,
		hop:      cfg.hop,
	}
	t.useFlats.Label = "Use Flats"
	t.Init(fx.Info{Name: "Tuner", Layout: fx.Mono}, param.MustSet(t.useFlats))

	return t, nil
}

// Prepare implements fx.Processor. It clears the published reading.
func (t *Tuner) Prepare(sampleRate float64, maxBlockSize int) {
	fs := t.PrepareBase(sampleRate, maxBlockSize)

	t.detector.Prepare(fs)
	t.pending = 0
	t.reading.store(pitch.Estimate{})
}

// ProcessSample implements fx.Processor. A detection runs every hop
// samples.
func (t *Tuner) ProcessSample(x float64) float64 {
	if !t.Ready() {
		return x
	}

	t.detector.WriteSample(x)

	t.pending++
	if t.pending >= t.hop {
		t.detect()
	}

	return x
}

// ProcessBlock implements fx.Processor. Channel 0 is analysed once per
// block and left untouched.
func (t *Tuner) ProcessBlock(block [][]float64) {
	if len(block) == 0 || len(block[0]) == 0 || !t.Ready() {
		return
	}

	t.detector.Write(block[0])
	t.detect()
}

func (t *Tuner) detect() {
	t.pending = 0
	t.reading.store(t.detector.Detect())
	t.detections.Add(1)
}

// Estimate returns the latest published reading. It is safe to call from
// any goroutine.
func (t *Tuner) Estimate() pitch.Estimate { return t.reading.load() }

// UseFlats reports whether notes are spelled with flats.
func (t *Tuner) UseFlats() bool { return t.useFlats.On() }

// Note spells the latest reading, or returns "" when no pitch is present.
func (t *Tuner) Note() string { return t.Estimate().Name(t.UseFlats()) }

// Detections returns how many readings have been published since
// construction.
func (t *Tuner) Detections() uint64 { return t.detections.Load() }

// reading is a single-writer sequence lock around an Estimate. The writer
// never blocks; readers retry while a store is in flight.
type reading struct {
	seq         atomic.Uint64
	frequency   atomic.Uint64
	period      atomic.Uint64
	midi        atomic.Uint64
	note        atomic.Int64
	cents       atomic.Uint64
	correlation atomic.Uint64
}

func (r *reading) store(e pitch.Estimate) {
	r.seq.Add(1)
	r.frequency.Store(math.Float64bits(e.Frequency))
	r.period.Store(math.Float64bits(e.Period))
	r.midi.Store(math.Float64bits(e.MIDI))
	r.note.Store(int64(e.Note))
	r.cents.Store(math.Float64bits(e.Cents))
	r.correlation.Store(math.Float64bits(e.Correlation))
	r.seq.Add(1)
}

func (r *reading) load() pitch.Estimate {
	for {
		before := r.seq.Load()
		if before&1 != 0 {
			runtime.Gosched()
			continue
		}

		e := pitch.Estimate{
			Frequency:   math.Float64frombits(r.frequency.Load()),
			Period:      math.Float64frombits(r.period.Load()),
			MIDI:        math.Float64frombits(r.midi.Load()),
			Note:        int(r.note.Load()),
			Cents:       math.Float64frombits(r.cents.Load()),
			Correlation: math.Float64frombits(r.correlation.Load()),
		}

		if r.seq.Load() == before {
			return e
		}
	}
}
