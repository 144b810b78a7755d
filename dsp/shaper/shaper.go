// Package shaper contains the memoryless nonlinearities used to model op-amp,
// diode and transistor clipping stages.
//
// Every function is a pure function of its arguments.
package shaper

import "math"

// SoftClip passes |v| ≤ threshold−knee unchanged and compresses the overshoot
// above it with knee·tanh(overshoot/knee). The sign is preserved and the
// magnitude approaches but never exceeds threshold. A knee ≤ 0 degenerates
// to a hard clip at threshold.
func SoftClip(v, threshold, knee float64) float64 {
	if threshold <= 0 {
		return 0
	}

	if knee <= 0 {
		return HardClip(v, threshold)
	}

	if knee > threshold {
		knee = threshold
	}

	linear := threshold - knee

	abs := math.Abs(v)
	if abs <= linear {
		return v
	}

	out := math.Min(linear+knee*math.Tanh((abs-linear)/knee), threshold)

	return math.Copysign(out, v)
}

// HardClip limits v to [-limit, limit].
func HardClip(v, limit float64) float64 {
	if v > limit {
		return limit
	}

	if v < -limit {
		return -limit
	}

	return v
}

// Blend mixes raw and shaped as (1−mix)·raw + mix·shaped.
func Blend(raw, shaped, mix float64) float64 {
	return (1-mix)*raw + mix*shaped
}

// Limit is the tanh(k·x) output limiter; k sets the headroom.
func Limit(x, k float64) float64 {
	return math.Tanh(k * x)
}

// LimitScaled returns scale·tanh(k·x).
func LimitScaled(x, k, scale float64) float64 {
	return scale * math.Tanh(k*x)
}
