package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultBufferSize is the analysis window in samples.
	DefaultBufferSize = 8192
	// DefaultMinFrequency and DefaultMaxFrequency bound the lag search.
	DefaultMinFrequency = 60.0
	DefaultMaxFrequency = 1200.0
	// DefaultSilenceThreshold is the RMS below which no pitch is reported.
	DefaultSilenceThreshold = 0.01
	// DefaultOctaveRatio is the fraction of the best correlation a shorter
	// lag must reach to be preferred by the octave guard.
	DefaultOctaveRatio = 0.9

	// MinValidFrequency and MaxValidFrequency bound reported pitches.
	MinValidFrequency = 20.0
	MaxValidFrequency = 5000.0

	minBufferSize = 64
)

// Method selects the correlation implementation.
type Method int

const (
	// Direct evaluates each lag separately.
	Direct Method = iota
	// FFT computes all lags with one forward/inverse transform pair.
	FFT
)

// Option mutates detector construction parameters.
type Option func(*config) error

type config struct {
	bufferSize  int
	minFreq     float64
	maxFreq     float64
	silence     float64
	method      Method
	octaveRatio float64
	interpolate bool
}

func defaultConfig() config {
	return config{
		bufferSize:  DefaultBufferSize,
		minFreq:     DefaultMinFrequency,
		maxFreq:     DefaultMaxFrequency,
		silence:     DefaultSilenceThreshold,
		method:      Direct,
		octaveRatio: DefaultOctaveRatio,
		interpolate: true,
	}
}

// WithBufferSize sets the analysis window length.
func WithBufferSize(n int) Option {
	return func(cfg *config) error {
		if n < minBufferSize {
			return fmt.Errorf("pitch buffer size must be >= %d: %d", minBufferSize, n)
		}

		cfg.bufferSize = n

		return nil
	}
}

// WithFrequencyRange sets the search range in Hz.
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(cfg *config) error {
		if !(minHz > 0) || !core.IsFinite(minHz) {
			return fmt.Errorf("pitch min frequency must be > 0 and finite: %f", minHz)
		}

		if !(maxHz > minHz) || !core.IsFinite(maxHz) {
			return fmt.Errorf("pitch max frequency must be > min frequency and finite: min=%f max=%f", minHz, maxHz)
		}

		cfg.minFreq = minHz
		cfg.maxFreq = maxHz

		return nil
	}
}

// WithSilenceThreshold sets the RMS gate.
func WithSilenceThreshold(rms float64) Option {
	return func(cfg *config) error {
		if rms < 0 || !core.IsFinite(rms) {
			return fmt.Errorf("pitch silence threshold must be >= 0 and finite: %f", rms)
		}

		cfg.silence = rms

		return nil
	}
}

// WithMethod selects the correlator.
func WithMethod(m Method) Option {
	return func(cfg *config) error {
		if m != Direct && m != FFT {
			return fmt.Errorf("pitch method is invalid: %d", m)
		}

		cfg.method = m

		return nil
	}
}

// WithOctaveGuard sets the octave guard ratio in (0, 1]. A ratio of 1
// disables the guard and keeps the strongest lag.
func WithOctaveGuard(ratio float64) Option {
	return func(cfg *config) error {
		if !(ratio > 0 && ratio <= 1) {
			return fmt.Errorf("pitch octave ratio must be in (0, 1]: %f", ratio)
		}

		cfg.octaveRatio = ratio

		return nil
	}
}

// WithInterpolation toggles parabolic peak interpolation.
func WithInterpolation(enabled bool) Option {
	return func(cfg *config) error {
		cfg.interpolate = enabled
		return nil
	}
}

// Detector is an autocorrelation pitch detector over a ring buffer.
// Write and Detect must be called from the same goroutine.
type Detector struct {
	cfg        config
	sampleRate float64

	ring     []float64
	writePos int

	linear  []float64
	scratch []float64
	corr    []float64

	correlator Correlator
}

// NewDetector builds a detector. An unusable sample rate falls back to
// core.DefaultSampleRate.
func NewDetector(sampleRate float64, opts ...Option) (*Detector, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	n := cfg.bufferSize
	d := &Detector{
		cfg:     cfg,
		ring:    make([]float64, n),
		linear:  make([]float64, n),
		scratch: make([]float64, n),
		corr:    make([]float64, n/2),
	}

	switch cfg.method {
	case FFT:
		c, err := NewFFTCorrelator(n)
		if err != nil {
			return nil, err
		}

		d.correlator = c
	default:
		d.correlator = NewDirectCorrelator(n)
	}

	d.Prepare(sampleRate)

	return d, nil
}

// Prepare sets the sample rate and clears the ring buffer.
func (d *Detector) Prepare(sampleRate float64) {
	d.sampleRate = core.SafeSampleRate(sampleRate)
	d.Reset()
}

// Reset clears the ring buffer.
func (d *Detector) Reset() {
	clear(d.ring)
	d.writePos = 0
}

// SampleRate returns the analysis sample rate.
func (d *Detector) SampleRate() float64 { return d.sampleRate }

// BufferSize returns the analysis window length.
func (d *Detector) BufferSize() int { return len(d.ring) }

// LagRange returns the searched lags: [fs/maxFreq, fs/minFreq] limited to
// below N/2.
func (d *Detector) LagRange() (int, int) {
	minLag := max(int(d.sampleRate/d.cfg.maxFreq), 1)
	maxLag := min(int(d.sampleRate/d.cfg.minFreq), len(d.ring)/2-1)

	return minLag, maxLag
}

// WriteSample appends one sample to the ring.
func (d *Detector) WriteSample(x float64) {
	d.ring[d.writePos] = x

	d.writePos++
	if d.writePos == len(d.ring) {
		d.writePos = 0
	}
}

// Write appends samples to the ring.
func (d *Detector) Write(samples []float64) {
	for _, x := range samples {
		d.WriteSample(x)
	}
}

// Detect analyses the current window. It does not allocate.
func (d *Detector) Detect() Estimate {
	// Oldest sample first.
	n := copy(d.linear, d.ring[d.writePos:])
	copy(d.linear[n:], d.ring[:d.writePos])

	return d.analyze(d.linear)
}

// RMS returns the root mean square of the current window.
func (d *Detector) RMS() float64 {
	return rms(d.scratch, d.ring)
}

func (d *Detector) analyze(frame []float64) Estimate {
	if rms(d.scratch, frame) < d.cfg.silence {
		return Estimate{}
	}

	minLag, maxLag := d.LagRange()
	if maxLag < minLag {
		return Estimate{}
	}

	if err := d.correlator.Correlate(d.corr, frame, minLag, maxLag); err != nil {
		return Estimate{}
	}

	period, peak, ok := selectPeriod(d.corr, minLag, maxLag, d.cfg.octaveRatio, d.cfg.interpolate)
	if !ok {
		return Estimate{}
	}

	est := FromFrequency(d.sampleRate / period)
	if !est.Valid() {
		return Estimate{}
	}

	est.Period = period
	est.Correlation = peak

	return est
}

// selectPeriod picks the lag of the strongest positive correlation in
// corr[minLag..maxLag]. With ratio < 1 the shortest interior local maximum
// reaching ratio·best wins instead, which suppresses sub-octave errors when
// several periods fit in the window.
func selectPeriod(corr []float64, minLag, maxLag int, ratio float64, interpolate bool) (float64, float64, bool) {
	best, bestLag := 0.0, 0

	for lag := minLag; lag <= maxLag; lag++ {
		if corr[lag] > best {
			best, bestLag = corr[lag], lag
		}
	}

	if bestLag == 0 {
		return 0, 0, false
	}

	if ratio < 1 {
		for lag := minLag + 1; lag < bestLag; lag++ {
			c := corr[lag]
			if c >= ratio*best && c >= corr[lag-1] && c >= corr[lag+1] {
				bestLag = lag
				break
			}
		}
	}

	period := float64(bestLag)

	if interpolate && bestLag > minLag && bestLag < maxLag {
		l, c, r := corr[bestLag-1], corr[bestLag], corr[bestLag+1]

		denom := l - 2*c + r
		if denom < 0 {
			delta := 0.5 * (l - r) / denom
			if math.Abs(delta) < 1 {
				period += delta
			}
		}
	}

	return period, corr[bestLag], true
}

func rms(scratch, x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	scratch = scratch[:len(x)]
	vecmath.MulBlock(scratch, x, x)

	return math.Sqrt(sum(scratch) / float64(len(x)))
}
