// Package allpass provides modulated first-order allpass sections for
// phaser-style effects.
package allpass

import (
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
)

const (
	// MinFrequency is the lowest centre frequency Coefficient accepts.
	MinFrequency = 5.0
	// NyquistSafetyRatio limits centre frequencies to this fraction of fs.
	NyquistSafetyRatio = 0.49

	minTan = 1e-8
	maxTan = 1e8
)

// Coefficient returns a = (1 − t)/(1 + t) with t = tan(π·f/fs). The
// frequency is clamped to [MinFrequency, 0.49·fs] and t to [1e-8, 1e8], so
// the result is always strictly inside (−1, 1).
func Coefficient(freqHz, sampleRate float64) float64 {
	sampleRate = core.SafeSampleRate(sampleRate)

	if math.IsNaN(freqHz) {
		freqHz = MinFrequency
	}

	freqHz = core.Clamp(freqHz, MinFrequency, NyquistSafetyRatio*sampleRate)

	t := core.Clamp(math.Tan(math.Pi*freqHz/sampleRate), minTan, maxTan)

	return (1 - t) / (1 + t)
}

// Section is one first-order allpass y = −a·x + x₋₁ + a·y₋₁.
type Section struct {
	x1 float64
	y1 float64
}

// Process filters one sample with coefficient a.
func (s *Section) Process(x, a float64) float64 {
	y := -a*x + s.x1 + a*s.y1
	s.x1 = x
	s.y1 = core.FlushDenormals(y)

	return y
}

// Reset clears state.
func (s *Section) Reset() {
	s.x1 = 0
	s.y1 = 0
}

// Cascade chains sections, feeding each output into the next input.
type Cascade struct {
	stages []Section
}

// NewCascade allocates n sections. n < 1 is treated as 1.
func NewCascade(n int) *Cascade {
	if n < 1 {
		n = 1
	}

	return &Cascade{stages: make([]Section, n)}
}

// Len returns the number of sections.
func (c *Cascade) Len() int { return len(c.stages) }

// Process runs x through every section; coefs[i] drives section i. Missing
// coefficients reuse the last one supplied.
func (c *Cascade) Process(x float64, coefs []float64) float64 {
	if len(coefs) == 0 {
		return x
	}

	y := x
	for i := range c.stages {
		a := coefs[min(i, len(coefs)-1)]
		y = c.stages[i].Process(y, a)
	}

	return y
}

// Reset clears every section.
func (c *Cascade) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}
