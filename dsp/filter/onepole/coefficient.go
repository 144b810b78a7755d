package onepole

import (
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
)

// LowpassCoefficient returns the smoothing factor α = 1 − e^(−2π·fc/fs)
// clamped to [0,1]. Non-positive or NaN cutoffs yield 0 (the filter holds
// its state). Unusable sample rates fall back to core.DefaultSampleRate.
func LowpassCoefficient(cutoffHz, sampleRate float64) float64 {
	if !(cutoffHz > 0) {
		return 0
	}

	sampleRate = core.SafeSampleRate(sampleRate)
	alpha := 1 - mathExp(-2*math.Pi*cutoffHz/sampleRate)

	return core.Clamp01(alpha)
}

// DCBlockerCoefficient returns c = rc/(rc+dt) with rc = 1/(2π·fc) and
// dt = 1/fs, clamped to [0,1]. A non-positive cutoff blocks nothing (c = 1).
func DCBlockerCoefficient(cutoffHz, sampleRate float64) float64 {
	if math.IsNaN(cutoffHz) {
		return 1
	}

	if cutoffHz <= 0 {
		return 1
	}

	sampleRate = core.SafeSampleRate(sampleRate)
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1 / sampleRate

	return core.Clamp01(rc / (rc + dt))
}
