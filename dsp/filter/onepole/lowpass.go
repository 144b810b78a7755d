package onepole

import "github.com/cwbudde/algo-pedals/dsp/core"

// Lowpass is a one-pole smoothing lowpass y = α·x + (1−α)·y₋₁.
// The zero value holds zero state and α = 0.
type Lowpass struct {
	gate  Gate
	alpha float64
	y1    float64
}

// Prepare sets the sample rate and clears the state register.
func (l *Lowpass) Prepare(sampleRate float64) {
	l.gate.SetSampleRate(sampleRate)
	l.Reset()
}

// SetCutoff updates α through the coefficient gate.
func (l *Lowpass) SetCutoff(cutoffHz float64) {
	l.alpha = l.gate.Coefficient(cutoffHz)
}

// SetAlpha sets the smoothing factor directly, clamped to [0,1].
func (l *Lowpass) SetAlpha(alpha float64) {
	l.alpha = core.Clamp01(alpha)
}

// Alpha returns the current smoothing factor.
func (l *Lowpass) Alpha() float64 { return l.alpha }

// Gate exposes the coefficient cache.
func (l *Lowpass) Gate() *Gate { return &l.gate }

// Process filters one sample.
func (l *Lowpass) Process(x float64) float64 {
	y := l.alpha*x + (1-l.alpha)*l.y1
	l.y1 = core.FlushDenormals(y)

	return y
}

// Reset clears the state register.
func (l *Lowpass) Reset() { l.y1 = 0 }

// State returns the last output.
func (l *Lowpass) State() float64 { return l.y1 }

// Highpass is the complement x − lowpass(x).
type Highpass struct {
	lp Lowpass
}

// Prepare sets the sample rate and clears state.
func (h *Highpass) Prepare(sampleRate float64) { h.lp.Prepare(sampleRate) }

// SetCutoff updates the cutoff of the underlying lowpass.
func (h *Highpass) SetCutoff(cutoffHz float64) { h.lp.SetCutoff(cutoffHz) }

// Alpha returns the smoothing factor of the underlying lowpass.
func (h *Highpass) Alpha() float64 { return h.lp.alpha }

// Process filters one sample.
func (h *Highpass) Process(x float64) float64 {
	return x - h.lp.Process(x)
}

// Reset clears state.
func (h *Highpass) Reset() { h.lp.Reset() }
