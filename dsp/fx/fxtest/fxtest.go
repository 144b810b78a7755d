// Package fxtest provides conformance checks shared by the pedal tests.
package fxtest

import (
	"testing"

	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/param"
	"github.com/cwbudde/algo-pedals/internal/testutil"
)

// Factory returns a fresh, unprepared processor.
type Factory func() fx.Processor

// BlockSize is the block length the helpers feed to ProcessBlock.
const BlockSize = 256

// Render runs in through channel 0 of p in BlockSize blocks and returns the
// output. Stereo processors receive a copy of in on channel 1.
func Render(p fx.Processor, in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	channels := p.Info().Channels()
	block := make([][]float64, channels)

	var spare []float64
	if channels > 1 {
		spare = make([]float64, BlockSize)
	}

	for start := 0; start < len(out); start += BlockSize {
		end := min(start+BlockSize, len(out))
		block[0] = out[start:end]

		for ch := 1; ch < channels; ch++ {
			block[ch] = spare[:end-start]
			copy(block[ch], out[start:end])
		}

		p.ProcessBlock(block)
	}

	return out
}

// ParamNames returns the parameter names of p in declaration order.
func ParamNames(t testing.TB, p fx.Processor) []string {
	t.Helper()

	pp, ok := p.(fx.Parameterized)
	if !ok {
		t.Fatalf("%s does not expose its parameters", p.Info().Name)
	}

	return pp.Params().Names()
}

// CheckStability fuzzes every parameter in [0,1] with impulse, step, noise
// and sine input and requires finite output bounded by limit.
func CheckStability(t *testing.T, newProc Factory, sampleRate, limit float64, vectors int) {
	t.Helper()

	names := ParamNames(t, newProc())
	inputs := testutil.StressInputs(1, sampleRate, int(sampleRate/4))

	for vi, vec := range testutil.ParamVectors(int64(len(names)), len(names), vectors) {
		for name, in := range inputs {
			p := newProc()
			p.Prepare(sampleRate, BlockSize)

			for i, n := range vec {
				p.SetParameter(names[i], n)
			}

			if err := testutil.CheckBounded(Render(p, in), limit); err != nil {
				t.Fatalf("%s vector %d %v, input %s: %v", p.Info().Name, vi, vec, name, err)
			}
		}
	}
}

// CheckStateRoundTrip sets random parameters, restores them into a fresh
// instance and requires identical parameters and bit-identical output.
// The source is first passed through its own state so both instances hold
// the float32-quantized values the state format stores.
func CheckStateRoundTrip(t *testing.T, newProc Factory, sampleRate float64) {
	t.Helper()

	src := newProc()
	names := ParamNames(t, src)

	for i, n := range testutil.ParamVectors(99, len(names), 3)[2] {
		src.SetParameter(names[i], n)
	}

	// Bypass would hide the comparison of audio output.
	src.SetParameter(param.BypassName, 0)
	src.UnmarshalState(src.MarshalState())

	dst := newProc()
	dst.UnmarshalState(src.MarshalState())

	for _, name := range names {
		a, _ := src.Parameter(name)
		b, _ := dst.Parameter(name)

		if a != b {
			t.Fatalf("%s: %s restored as %v, want %v", src.Info().Name, name, b, a)
		}
	}

	in := testutil.DeterministicNoise(5, 0.5, int(sampleRate/8))

	src.Prepare(sampleRate, BlockSize)
	dst.Prepare(sampleRate, BlockSize)

	testutil.RequireBitIdentical(t, Render(dst, in), Render(src, in))
}

// CheckUnpreparedPassthrough requires an unprepared processor to leave its
// input untouched.
func CheckUnpreparedPassthrough(t *testing.T, newProc Factory) {
	t.Helper()

	p := newProc()
	in := testutil.DeterministicNoise(3, 0.9, 3*BlockSize)

	testutil.RequireBitIdentical(t, Render(p, in), in)

	if got := p.ProcessSample(0.3); got != 0.3 {
		t.Fatalf("%s: unprepared ProcessSample = %v", p.Info().Name, got)
	}
}

// CheckBypass requires the bypass switch to make the processor transparent.
func CheckBypass(t *testing.T, newProc Factory, sampleRate float64) {
	t.Helper()

	p := newProc()
	if !p.Info().HasBypass {
		t.Fatalf("%s has no bypass", p.Info().Name)
	}

	p.Prepare(sampleRate, BlockSize)
	p.SetParameter(param.BypassName, 1)

	in := testutil.DeterministicNoise(4, 0.9, 2*BlockSize)
	testutil.RequireBitIdentical(t, Render(p, in), in)
}

// CheckSilence requires all-zero output for all-zero input at default
// parameters.
func CheckSilence(t *testing.T, newProc Factory, sampleRate float64) {
	t.Helper()

	p := newProc()
	p.Prepare(sampleRate, BlockSize)

	out := Render(p, make([]float64, int(sampleRate/2)))
	for i, v := range out {
		if v != 0 {
			t.Fatalf("%s: sample %d = %v, want 0", p.Info().Name, i, v)
		}
	}
}
