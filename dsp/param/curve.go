package param

import (
	"fmt"
	"math"
)

// Curve maps a normalized value in [0,1] onto [min, max].
type Curve int

const (
	// Linear maps n to min + n·(max−min).
	Linear Curve = iota
	// Exponential maps n to min·(max/min)^n. Both bounds must be > 0.
	Exponential
)

// String implements fmt.Stringer.
func (c Curve) String() string {
	switch c {
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// Denormalize maps n in [0,1] to a plain value.
func (c Curve) Denormalize(n, min, max float64) float64 {
	n = clamp01(n)

	if c == Exponential && min > 0 && max > 0 {
		return min * math.Pow(max/min, n)
	}

	return min + n*(max-min)
}

// Normalize maps a plain value back to [0,1].
func (c Curve) Normalize(plain, min, max float64) float64 {
	if max == min || math.IsNaN(plain) {
		return 0
	}

	if c == Exponential && min > 0 && max > 0 {
		if plain <= min {
			return 0
		}

		return clamp01(math.Log(plain/min) / math.Log(max/min))
	}

	return clamp01((plain - min) / (max - min))
}

// ExpMap is the exponential mapping lo·(hi/lo)^n used for cutoff and time
// knobs.
func ExpMap(n, lo, hi float64) float64 {
	return Exponential.Denormalize(n, lo, hi)
}

// AffineDB maps n onto scale·n + offset decibels.
func AffineDB(n, scale, offset float64) float64 {
	return scale*clamp01(n) + offset
}

// AffineGain is AffineDB converted to linear amplitude.
func AffineGain(n, scale, offset float64) float64 {
	return math.Pow(10, AffineDB(n, scale, offset)/20)
}

func clamp01(n float64) float64 {
	if math.IsNaN(n) || n < 0 {
		return 0
	}

	if n > 1 {
		return 1
	}

	return n
}
