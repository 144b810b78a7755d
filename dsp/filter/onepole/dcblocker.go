package onepole

import "github.com/cwbudde/algo-pedals/dsp/core"

// DCBlocker implements y = c·(y₋₁ + x − x₋₁).
type DCBlocker struct {
	c  float64
	x1 float64
	y1 float64
}

// Prepare computes c for cutoffHz at sampleRate and clears state.
func (d *DCBlocker) Prepare(sampleRate, cutoffHz float64) {
	d.c = DCBlockerCoefficient(cutoffHz, sampleRate)
	d.Reset()
}

// Coefficient returns c.
func (d *DCBlocker) Coefficient() float64 { return d.c }

// Process filters one sample.
func (d *DCBlocker) Process(x float64) float64 {
	y := d.c * (d.y1 + x - d.x1)
	d.x1 = x
	d.y1 = core.FlushDenormals(y)

	return y
}

// Reset clears state.
func (d *DCBlocker) Reset() {
	d.x1 = 0
	d.y1 = 0
}
