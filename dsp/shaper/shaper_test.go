package shaper

import (
	"math"
	"testing"
)

func TestSoftClipRegions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{name: "zero", v: 0, want: 0},
		{name: "linear-positive", v: 0.3, want: 0.3},
		{name: "linear-edge", v: 0.4, want: 0.4},
		{name: "linear-negative", v: -0.25, want: -0.25},
		{name: "overshoot", v: 0.5, want: 0.4 + 0.2*math.Tanh(0.5)},
		{name: "overshoot-negative", v: -0.5, want: -(0.4 + 0.2*math.Tanh(0.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SoftClip(tt.v, 0.6, 0.2)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("SoftClip(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestSoftClipBoundedAndMonotonic(t *testing.T) {
	t.Parallel()

	for _, c := range []struct{ threshold, knee float64 }{
		{0.6, 0.2}, {0.75, 0.2}, {0.6, 0.16}, {1, 1}, {0.5, 2},
	} {
		prev := math.Inf(-1)

		for v := -100.0; v <= 100; v += 0.01 {
			y := SoftClip(v, c.threshold, c.knee)
			if math.Abs(y) > c.threshold {
				t.Fatalf("SoftClip(%v, %v, %v) = %v exceeds threshold", v, c.threshold, c.knee, y)
			}
			if y < prev {
				t.Fatalf("SoftClip not monotonic at %v: %v < %v", v, y, prev)
			}
			if math.Signbit(y) != math.Signbit(v) && y != 0 {
				t.Fatalf("sign flipped at %v: %v", v, y)
			}
			prev = y
		}
	}
}

func TestSoftClipDegenerate(t *testing.T) {
	if got := SoftClip(2, 0.6, 0); got != 0.6 {
		t.Fatalf("zero knee = %v, want hard clip at 0.6", got)
	}

	if got := SoftClip(2, 0, 0.2); got != 0 {
		t.Fatalf("zero threshold = %v, want 0", got)
	}

	if got := SoftClip(math.Inf(1), 0.6, 0.2); got != 0.6 {
		t.Fatalf("SoftClip(+Inf) = %v, want 0.6", got)
	}
}

func TestBlend(t *testing.T) {
	if got := Blend(1, 0, 0.85); math.Abs(got-0.15) > 1e-15 {
		t.Fatalf("Blend = %v, want 0.15", got)
	}
}

func TestLimiters(t *testing.T) {
	for _, x := range []float64{-1e6, -1, -0.1, 0, 0.1, 1, 1e6} {
		if y := Limit(x, 10); math.Abs(y) > 1 {
			t.Fatalf("Limit(%v) = %v", x, y)
		}
		if y := LimitScaled(x, 4, 0.25); math.Abs(y) > 0.25 {
			t.Fatalf("LimitScaled(%v) = %v", x, y)
		}
		if y := HardClip(x, 1); math.Abs(y) > 1 {
			t.Fatalf("HardClip(%v) = %v", x, y)
		}
	}
}

func BenchmarkSoftClip(b *testing.B) {
	x := 0.0
	for i := 0; i < b.N; i++ {
		x += SoftClip(float64(i%200)*0.01-1, 0.6, 0.2)
	}
	_ = x
}
