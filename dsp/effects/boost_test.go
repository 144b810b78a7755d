package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/fx/fxtest"
	"github.com/cwbudde/algo-pedals/internal/testutil"
)

func newBoost() fx.Processor {
	b, err := NewBoost()
	if err != nil {
		panic(err)
	}

	return b
}

func TestBoostConformance(t *testing.T) {
	t.Parallel()

	fxtest.CheckStability(t, newBoost, 44100, 1, 8)
	fxtest.CheckStateRoundTrip(t, newBoost, 44100)
	fxtest.CheckUnpreparedPassthrough(t, newBoost)
	fxtest.CheckBypass(t, newBoost, 44100)
	fxtest.CheckSilence(t, newBoost, 44100)
}

func TestBoostValidation(t *testing.T) {
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		if _, err := NewBoost(WithBoostRamp(v)); err == nil {
			t.Fatalf("expected error for ramp %v", v)
		}
	}
}

func TestBoostGainRange(t *testing.T) {
	b := newBoost().(*Boost)

	if b.Info().Layout != fx.Stereo {
		t.Fatalf("Layout = %v, want stereo", b.Info().Layout)
	}

	tests := []struct{ knob, want float64 }{
		{0, 1},
		{0.5, math.Sqrt(20)},
		{1, 20},
	}

	for _, tt := range tests {
		b.SetParameter("gain", tt.knob)

		if got := b.Gain(); math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("Gain(%v) = %v, want %v", tt.knob, got, tt.want)
		}
	}
}

func TestBoostRampsGainChanges(t *testing.T) {
	const fs = 44100.0

	b := newBoost().(*Boost)
	b.Prepare(fs, 256)

	start := b.Gain()
	b.SetParameter("gain", 1)

	silence := make([]float64, 256)
	fxtest.Render(b, silence)

	if got := b.CurrentGain(); !(got > start && got < 20) {
		t.Fatalf("gain after one block = %v, want between %v and 20", got, start)
	}

	fxtest.Render(b, make([]float64, int(0.05*fs)))

	if got, want := b.CurrentGain(), b.Gain(); got != want {
		t.Fatalf("gain after ramp = %v, want %v", got, want)
	}
}

func TestBoostWithoutRampJumps(t *testing.T) {
	b, err := NewBoost(WithBoostRamp(0))
	if err != nil {
		t.Fatal(err)
	}

	b.Prepare(44100, 64)
	b.SetParameter("gain", 0)
	b.ProcessSample(0)

	if got := b.CurrentGain(); got != 1 {
		t.Fatalf("gain = %v, want 1", got)
	}
}

func TestBoostStereoChannelsMatch(t *testing.T) {
	b := newBoost()
	b.Prepare(48000, 128)

	left := testutil.DeterministicNoise(8, 0.2, 1000)
	right := append([]float64(nil), left...)
	third := append([]float64(nil), left...)

	b.ProcessBlock([][]float64{left, right, third})

	testutil.RequireBitIdentical(t, right, left)

	// Channels past the layout pass through.
	testutil.RequireBitIdentical(t, third, testutil.DeterministicNoise(8, 0.2, 1000))

	if left[10] == third[10] {
		t.Fatal("boost left channel 0 untouched")
	}
}
