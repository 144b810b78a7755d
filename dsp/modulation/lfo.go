// Package modulation provides the low-frequency oscillator shared by the
// chorus and phaser pedals.
package modulation

import (
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
)

const twoPi = 2 * math.Pi

// LFO is a sine phase accumulator. Next returns sin(phase) and then advances
// the phase by 2π·rate/fs, wrapped into [0, 2π).
type LFO struct {
	sampleRate float64
	rateHz     float64
	phase      float64
	inc        float64
}

// Prepare sets the sample rate, keeps the rate and restarts at phase 0.
func (l *LFO) Prepare(sampleRate float64) {
	l.sampleRate = core.SafeSampleRate(sampleRate)
	l.phase = 0
	l.updateIncrement()
}

// SetRate sets the oscillator frequency in Hz. Negative and NaN rates stop
// the oscillator.
func (l *LFO) SetRate(rateHz float64) {
	if !(rateHz > 0) {
		rateHz = 0
	}

	if rateHz == l.rateHz {
		return
	}

	l.rateHz = rateHz
	l.updateIncrement()
}

// Rate returns the frequency in Hz.
func (l *LFO) Rate() float64 { return l.rateHz }

// Phase returns the current phase in radians.
func (l *LFO) Phase() float64 { return l.phase }

// SetPhase sets the phase, wrapping it into [0, 2π).
func (l *LFO) SetPhase(phase float64) {
	if !core.IsFinite(phase) {
		phase = 0
	}

	phase = math.Mod(phase, twoPi)
	if phase < 0 {
		phase += twoPi
	}

	l.phase = phase
}

// Reset returns to phase 0.
func (l *LFO) Reset() { l.phase = 0 }

// Next returns the current sine value and advances the phase.
func (l *LFO) Next() float64 {
	v := math.Sin(l.phase)

	l.phase += l.inc
	if l.phase >= twoPi {
		l.phase -= twoPi
	}

	return v
}

func (l *LFO) updateIncrement() {
	sr := core.SafeSampleRate(l.sampleRate)

	// A step below one full cycle keeps the single-subtraction wrap valid.
	l.inc = twoPi * l.rateHz / sr
	if l.inc >= twoPi {
		l.inc = math.Nextafter(twoPi, 0)
	}
}
