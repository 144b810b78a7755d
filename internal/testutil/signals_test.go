package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	t.Parallel()

	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	// 48 samples hold exactly one period: zero crossings at 0 and 24, peak at 12.
	if math.Abs(s[0]) > 1e-15 || math.Abs(s[24]) > 1e-12 || math.Abs(s[12]-0.5) > 1e-12 {
		t.Errorf("s[0], s[12], s[24] = %v, %v, %v", s[0], s[12], s[24])
	}

	RequireBounded(t, s, 0.5)
}

func TestDeterministicNoise(t *testing.T) {
	t.Parallel()

	a := DeterministicNoise(42, 0.25, 64)
	RequireBitIdentical(t, DeterministicNoise(42, 0.25, 64), a)
	RequireBounded(t, a, 0.25)

	if slices.Equal(a, DeterministicNoise(43, 0.25, 64)) {
		t.Error("different seeds produced identical noise")
	}
}

func TestShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  []float64
		want []float64
	}{
		{name: "impulse", got: Impulse(6, 2), want: []float64{0, 0, 1, 0, 0, 0}},
		{name: "impulse out of range", got: Impulse(3, 5), want: []float64{0, 0, 0}},
		{name: "step", got: Step(6, 4), want: []float64{0, 0, 0, 0, 1, 1}},
		{name: "step negative pos", got: Step(3, -2), want: []float64{1, 1, 1}},
		{name: "dc", got: DC(-0.5, 3), want: []float64{-0.5, -0.5, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			RequireBitIdentical(t, tt.got, tt.want)
		})
	}
}

func TestParamVectorsCorners(t *testing.T) {
	t.Parallel()

	vecs := ParamVectors(1, 3, 5)
	if len(vecs) != 5 {
		t.Fatalf("len = %d, want 5", len(vecs))
	}

	RequireBitIdentical(t, vecs[0], []float64{0, 0, 0})
	RequireBitIdentical(t, vecs[1], []float64{1, 1, 1})

	for _, v := range vecs[2:] {
		RequireBounded(t, v, 1)
		if slices.Min(v) < 0 {
			t.Errorf("value below 0 in %v", v)
		}
	}
}

func TestStressInputsBounded(t *testing.T) {
	t.Parallel()

	inputs := StressInputs(7, 48000, 256)
	if len(inputs) != 4 {
		t.Fatalf("got %d inputs, want 4", len(inputs))
	}

	for name, sig := range inputs {
		if len(sig) != 256 {
			t.Errorf("%s: len %d", name, len(sig))
		}

		if err := CheckBounded(sig, 1); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
