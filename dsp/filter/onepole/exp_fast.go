//go:build fastmath

package onepole

import approx "github.com/meko-christian/algo-approx"

// mathExp uses the polynomial approximation from algo-approx. The gate keeps
// this off the per-sample path, so accuracy only matters at coefficient
// updates.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}
