//go:build !fastmath

package onepole

import "math"

func mathExp(x float64) float64 {
	return math.Exp(x)
}
