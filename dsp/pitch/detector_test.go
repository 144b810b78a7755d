package pitch

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedals/internal/testutil"
)

func TestDetectorRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		freq       float64
		sampleRate float64
		sharp      string
		flat       string
	}{
		{freq: 220, sampleRate: 44100, sharp: "A3", flat: "A3"},
		{freq: 220, sampleRate: 48000, sharp: "A3", flat: "A3"},
		{freq: 82.40689, sampleRate: 44100, sharp: "E2", flat: "E2"},
		{freq: 110, sampleRate: 48000, sharp: "A2", flat: "A2"},
		{freq: 277.1826, sampleRate: 44100, sharp: "C#4", flat: "Db4"},
		{freq: 440, sampleRate: 44100, sharp: "A4", flat: "A4"},
		{freq: 932.3275, sampleRate: 96000, sharp: "A#5", flat: "Bb5"},
	}

	for _, method := range []Method{Direct, FFT} {
		for _, tt := range tests {
			d, err := NewDetector(tt.sampleRate, WithMethod(method))
			if err != nil {
				t.Fatal(err)
			}

			d.Write(testutil.DeterministicSine(tt.freq, tt.sampleRate, 0.5, d.BufferSize()))
			est := d.Detect()

			if !est.Valid() {
				t.Fatalf("method %d, %v Hz: no pitch", method, tt.freq)
			}

			if rel := math.Abs(est.Frequency-tt.freq) / tt.freq; rel > 0.01 {
				t.Fatalf("method %d: frequency = %v, want %v ±1%%", method, est.Frequency, tt.freq)
			}

			if math.Abs(est.Cents) > 10 {
				t.Fatalf("method %d, %v Hz: cents = %v, want within ±10", method, tt.freq, est.Cents)
			}

			if got := est.Name(false); got != tt.sharp {
				t.Fatalf("method %d: sharp name = %q, want %q", method, got, tt.sharp)
			}

			if got := est.Name(true); got != tt.flat {
				t.Fatalf("method %d: flat name = %q, want %q", method, got, tt.flat)
			}
		}
	}
}

func TestDetectorA3ZeroCents(t *testing.T) {
	d, err := NewDetector(44100)
	if err != nil {
		t.Fatal(err)
	}

	d.Write(testutil.DeterministicSine(220, 44100, 0.8, DefaultBufferSize))
	est := d.Detect()

	if est.Note != 57 || est.Name(false) != "A3" {
		t.Fatalf("note = %d %q, want 57 A3", est.Note, est.Name(false))
	}

	if math.Abs(est.Cents) > 1 {
		t.Fatalf("cents = %v, want ~0", est.Cents)
	}
}

func TestDetectorSilence(t *testing.T) {
	d, err := NewDetector(48000)
	if err != nil {
		t.Fatal(err)
	}

	if est := d.Detect(); est.Valid() || est.Name(false) != "" {
		t.Fatalf("empty buffer produced %+v", est)
	}

	d.Write(testutil.DeterministicSine(220, 48000, 0.005, d.BufferSize()))

	if est := d.Detect(); est.Valid() {
		t.Fatalf("signal below gate produced %+v", est)
	}
}

func TestDetectorRingOrder(t *testing.T) {
	d, err := NewDetector(44100, WithBufferSize(2048), WithFrequencyRange(200, 2000))
	if err != nil {
		t.Fatal(err)
	}

	// Overfill so the ring wraps; Detect must still see one continuous sine.
	d.Write(testutil.DeterministicSine(441, 44100, 0.5, 5000))

	est := d.Detect()
	if math.Abs(est.Frequency-441)/441 > 0.01 {
		t.Fatalf("frequency = %v, want 441", est.Frequency)
	}
}

func TestCorrelatorsAgree(t *testing.T) {
	const n = 2048

	x := testutil.DeterministicNoise(11, 0.7, n)

	direct := make([]float64, n/2)
	fft := make([]float64, n/2)

	if err := NewDirectCorrelator(n).Correlate(direct, x, 10, n/2-1); err != nil {
		t.Fatal(err)
	}

	fc, err := NewFFTCorrelator(n)
	if err != nil {
		t.Fatal(err)
	}

	if err := fc.Correlate(fft, x, 10, n/2-1); err != nil {
		t.Fatal(err)
	}

	for lag := 10; lag < n/2; lag++ {
		if math.Abs(direct[lag]-fft[lag]) > 1e-8 {
			t.Fatalf("lag %d: direct %v fft %v", lag, direct[lag], fft[lag])
		}
	}

	if direct[0] != 0 || fft[9] != 0 {
		t.Fatal("entries outside the lag range were written")
	}
}

func TestCorrelatorLagValidation(t *testing.T) {
	x := make([]float64, 64)
	dst := make([]float64, 64)

	if err := NewDirectCorrelator(64).Correlate(dst, x, 5, 32); err == nil {
		t.Fatal("expected error for maxLag >= N/2")
	}

	fc, err := NewFFTCorrelator(64)
	if err != nil {
		t.Fatal(err)
	}

	if err := fc.Correlate(dst, x[:32], 1, 4); err == nil {
		t.Fatal("expected error for frame length mismatch")
	}

	if _, err := NewFFTCorrelator(1); err == nil {
		t.Fatal("expected error for size 1")
	}
}

func TestSelectPeriod(t *testing.T) {
	tests := []struct {
		name        string
		corr        []float64
		ratio       float64
		interpolate bool
		want        float64
		ok          bool
	}{
		{
			name:  "no-positive-correlation",
			corr:  []float64{0, -1, -2, -0.5, -3, -1},
			ratio: 0.9, want: 0, ok: false,
		},
		{
			name:  "strongest-lag",
			corr:  []float64{0, 0.1, 0.5, 0.2, 0.1, 0.9, 0.3},
			ratio: 1, want: 5, ok: true,
		},
		{
			name:  "octave-guard-prefers-shorter-peak",
			corr:  []float64{0, 0.1, 0.95, 0.2, 0.1, 1.0, 0.3},
			ratio: 0.9, want: 2, ok: true,
		},
		{
			name:  "octave-guard-ignores-weak-peak",
			corr:  []float64{0, 0.1, 0.5, 0.2, 0.1, 1.0, 0.3},
			ratio: 0.9, want: 5, ok: true,
		},
		{
			name:  "parabolic",
			corr:  []float64{0, 0.2, 0.8, 1.0, 0.6, 0.1},
			ratio: 1, interpolate: true, want: 3 + 0.5*(0.8-0.6)/(0.8-2+0.6), ok: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := selectPeriod(tt.corr, 1, len(tt.corr)-2, tt.ratio, tt.interpolate)
			if ok != tt.ok || math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("selectPeriod = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestOptionsValidation(t *testing.T) {
	bad := []Option{
		WithBufferSize(8),
		WithFrequencyRange(0, 100),
		WithFrequencyRange(100, 50),
		WithSilenceThreshold(-1),
		WithMethod(Method(5)),
		WithOctaveGuard(0),
		WithOctaveGuard(1.5),
	}

	for i, opt := range bad {
		if _, err := NewDetector(44100, opt); err == nil {
			t.Fatalf("option %d: expected error", i)
		}
	}
}

func TestDetectorInvalidSampleRate(t *testing.T) {
	d, err := NewDetector(-1)
	if err != nil {
		t.Fatal(err)
	}

	if d.SampleRate() != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", d.SampleRate())
	}

	minLag, maxLag := d.LagRange()
	if minLag != 36 || maxLag != 735 {
		t.Fatalf("LagRange = [%d, %d], want [36, 735]", minLag, maxLag)
	}
}

func BenchmarkDetectDirect(b *testing.B) {
	benchmarkDetect(b, Direct)
}

func BenchmarkDetectFFT(b *testing.B) {
	benchmarkDetect(b, FFT)
}

func benchmarkDetect(b *testing.B, m Method) {
	d, err := NewDetector(48000, WithMethod(m))
	if err != nil {
		b.Fatal(err)
	}

	d.Write(testutil.DeterministicSine(196, 48000, 0.5, d.BufferSize()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		d.Detect()
	}
}
