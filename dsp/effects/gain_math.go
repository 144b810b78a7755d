//go:build !fastmath

package effects

import "math"

// dbGain converts decibels to linear amplitude.
func dbGain(db float64) float64 {
	return math.Pow(10, db/20)
}
