package testutil

import (
	"fmt"
	"math"
	"testing"
)

// firstMismatch returns the first index where same reports false, or -1.
func firstMismatch(got, want []float64, same func(a, b float64) bool) int {
	for i := range got {
		if !same(got[i], want[i]) {
			return i
		}
	}

	return -1
}

func requireMatch(t *testing.T, got, want []float64, what string, same func(a, b float64) bool) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	if i := firstMismatch(got, want, same); i >= 0 {
		t.Fatalf("index %d: got %v, want %v (%s)", i, got[i], want[i], what)
	}
}

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair is within eps of each other.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	requireMatch(t, got, want, fmt.Sprintf("eps %g", eps), func(a, b float64) bool {
		return math.Abs(a-b) <= eps
	})
}

// RequireBitIdentical fails t unless got and want match bit for bit.
func RequireBitIdentical(t *testing.T, got, want []float64) {
	t.Helper()
	requireMatch(t, got, want, "bit identical", func(a, b float64) bool {
		return math.Float64bits(a) == math.Float64bits(b)
	})
}

// CheckBounded returns an error for the first sample that is not finite or
// whose magnitude exceeds limit.
func CheckBounded(data []float64, limit float64) error {
	for i, v := range data {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return fmt.Errorf("index %d: non-finite value %v", i, v)
		case math.Abs(v) > limit:
			return fmt.Errorf("index %d: |%v| > %v", i, v, limit)
		}
	}

	return nil
}

// RequireBounded fails t unless every sample is finite and within ±limit.
func RequireBounded(t *testing.T, data []float64, limit float64) {
	t.Helper()

	if err := CheckBounded(data, limit); err != nil {
		t.Fatal(err)
	}
}

// RequireFinite fails t on the first NaN or infinity.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	RequireBounded(t, data, math.MaxFloat64)
}

// MaxAbsDiff returns the largest absolute difference between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst := 0.0
	for i := range a {
		worst = max(worst, math.Abs(a[i]-b[i]))
	}

	return worst, nil
}

// Peak returns the index and signed value of the largest magnitude sample.
// The index is -1 for an empty slice.
func Peak(data []float64) (int, float64) {
	idx, peak := -1, 0.0

	for i, v := range data {
		if idx < 0 || math.Abs(v) > math.Abs(peak) {
			idx, peak = i, v
		}
	}

	return idx, peak
}
