package onepole

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedals/internal/testutil"
)

func TestLowpassCoefficientClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		cutoff     float64
		sampleRate float64
	}{
		{name: "zero", cutoff: 0, sampleRate: 48000},
		{name: "near-zero", cutoff: 1e-9, sampleRate: 48000},
		{name: "negative", cutoff: -100, sampleRate: 48000},
		{name: "nyquist", cutoff: 24000, sampleRate: 48000},
		{name: "above-nyquist", cutoff: 96000, sampleRate: 48000},
		{name: "infinite", cutoff: math.Inf(1), sampleRate: 48000},
		{name: "nan", cutoff: math.NaN(), sampleRate: 48000},
		{name: "bad-rate", cutoff: 1000, sampleRate: 0},
		{name: "negative-rate", cutoff: 1000, sampleRate: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, fn := range []func(float64, float64) float64{LowpassCoefficient, DCBlockerCoefficient} {
				got := fn(tt.cutoff, tt.sampleRate)
				if math.IsNaN(got) || got < 0 || got > 1 {
					t.Fatalf("coefficient = %v, want within [0,1]", got)
				}
			}
		})
	}
}

func TestLowpassCoefficientValue(t *testing.T) {
	got := LowpassCoefficient(1000, 48000)
	want := 1 - math.Exp(-2*math.Pi*1000/48000)

	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("LowpassCoefficient = %v, want %v", got, want)
	}

	if got := LowpassCoefficient(1000, 0); math.Abs(got-LowpassCoefficient(1000, 44100)) > 1e-15 {
		t.Fatalf("invalid sample rate did not fall back to 44100: %v", got)
	}
}

func TestDCBlockerCoefficientValue(t *testing.T) {
	rc := 1 / (2 * math.Pi * 20)
	dt := 1 / 44100.0
	want := rc / (rc + dt)

	if got := DCBlockerCoefficient(20, 44100); math.Abs(got-want) > 1e-15 {
		t.Fatalf("DCBlockerCoefficient = %v, want %v", got, want)
	}
}

func TestSilenceInSilenceOut(t *testing.T) {
	var (
		lp Lowpass
		hp Highpass
		dc DCBlocker
	)

	lp.Prepare(48000)
	lp.SetCutoff(1000)
	hp.Prepare(48000)
	hp.SetCutoff(60)
	dc.Prepare(48000, 20)

	for i := 0; i < 10000; i++ {
		if y := lp.Process(0); y != 0 {
			t.Fatalf("lowpass sample %d = %v, want 0", i, y)
		}
		if y := hp.Process(0); y != 0 {
			t.Fatalf("highpass sample %d = %v, want 0", i, y)
		}
		if y := dc.Process(0); y != 0 {
			t.Fatalf("dc blocker sample %d = %v, want 0", i, y)
		}
	}
}

func TestLowpassConvergesToDC(t *testing.T) {
	var lp Lowpass

	lp.Prepare(48000)
	lp.SetCutoff(500)

	var y float64
	for _, x := range testutil.DC(0.5, 48000) {
		y = lp.Process(x)
	}

	if math.Abs(y-0.5) > 1e-9 {
		t.Fatalf("steady state = %v, want 0.5", y)
	}
}

func TestHighpassComplementsLowpass(t *testing.T) {
	var (
		lp Lowpass
		hp Highpass
	)

	lp.Prepare(44100)
	hp.Prepare(44100)
	lp.SetCutoff(800)
	hp.SetCutoff(800)

	for i, x := range testutil.DeterministicNoise(1, 0.8, 512) {
		if sum := lp.Process(x) + hp.Process(x); math.Abs(sum-x) > 1e-12 {
			t.Fatalf("sample %d: lp+hp = %v, want %v", i, sum, x)
		}
	}
}

func TestDCBlockerRemovesOffset(t *testing.T) {
	var dc DCBlocker

	dc.Prepare(44100, 20)

	var y float64
	for _, x := range testutil.DC(1, 44100) {
		y = dc.Process(x)
	}

	if math.Abs(y) > 1e-3 {
		t.Fatalf("residual offset = %v, want ~0", y)
	}
}

func TestGateSkipsSmallMoves(t *testing.T) {
	g := NewGate(KindLowpass, 0)
	g.SetSampleRate(48000)

	first := g.Coefficient(1000)
	if g.Updates() != 1 {
		t.Fatalf("updates = %d, want 1", g.Updates())
	}

	if got := g.Coefficient(1000.9); got != first {
		t.Fatalf("coefficient changed within threshold: %v != %v", got, first)
	}

	if g.Updates() != 1 {
		t.Fatalf("updates = %d, want 1", g.Updates())
	}

	if got := g.Coefficient(1002); got == first {
		t.Fatal("coefficient not recomputed beyond threshold")
	}

	if g.Updates() != 2 || g.Cutoff() != 1002 {
		t.Fatalf("updates = %d cutoff = %v, want 2 and 1002", g.Updates(), g.Cutoff())
	}

	g.SetSampleRate(96000)
	g.Coefficient(1002)

	if g.Updates() != 3 {
		t.Fatalf("sample rate change did not invalidate cache: updates = %d", g.Updates())
	}
}

func TestGateDCBlockerKind(t *testing.T) {
	g := NewGate(KindDCBlocker, 5)
	g.SetSampleRate(44100)

	if got, want := g.Coefficient(20), DCBlockerCoefficient(20, 44100); got != want {
		t.Fatalf("Coefficient = %v, want %v", got, want)
	}
}

func BenchmarkLowpassGated(b *testing.B) {
	var lp Lowpass

	lp.Prepare(48000)
	input := testutil.DeterministicNoise(3, 0.5, 1024)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for j, x := range input {
			lp.SetCutoff(2000 + float64(j%4)*0.1)
			input[j] = lp.Process(x)
		}
	}
}
