//go:build fastmath

package effects

import approx "github.com/meko-christian/algo-approx"

// ln(10)/20 turns decibels into a natural exponent.
const dbToExp = 0.11512925464970229

// dbGain converts decibels to linear amplitude with the fast exp
// approximation. The knob mappings evaluate it once per sample.
func dbGain(db float64) float64 {
	return approx.FastExp(db * dbToExp)
}
