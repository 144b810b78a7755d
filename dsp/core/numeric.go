package core

import "math"

// DefaultSampleRate is substituted whenever a caller supplies a sample rate
// that is zero, negative or not finite.
const DefaultSampleRate = 44100.0

// denormalFloor is the magnitude below which recursive filter state is
// snapped to zero.
const denormalFloor = 1e-30

// Clamp limits value to [lo, hi]. The bounds may be given in either order.
// NaN passes through.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return min(max(value, lo), hi)
}

// Clamp01 limits a normalized knob value to [0, 1]. NaN maps to 0.
func Clamp01(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}

	return Clamp(value, 0, 1)
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// SafeSampleRate returns sampleRate, or DefaultSampleRate when it is unusable.
func SafeSampleRate(sampleRate float64) float64 {
	if sampleRate > 0 && IsFinite(sampleRate) {
		return sampleRate
	}

	return DefaultSampleRate
}

// FlushDenormals returns 0 for values closer to zero than denormalFloor.
// Filter registers fed with silence otherwise decay through the subnormal
// range, which is slow on most CPUs.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}

	return x
}

// LinearToDB converts an amplitude ratio to decibels. Zero gives -Inf and
// negative ratios give NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
