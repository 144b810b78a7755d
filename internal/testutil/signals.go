// Package testutil holds deterministic signal generators and assertions
// shared by the pedal tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Step generates zeros up to pos and ones from pos on.
func Step(length, pos int) []float64 {
	out := make([]float64, length)
	for i := max(pos, 0); i < length; i++ {
		out[i] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// StressInputs returns the named full-scale signals used by stability tests:
// impulse, step, white noise and a loud sine.
func StressInputs(seed int64, sampleRate float64, length int) map[string][]float64 {
	return map[string][]float64{
		"impulse": Impulse(length, 0),
		"step":    Step(length, length/8),
		"noise":   DeterministicNoise(seed, 1, length),
		"sine":    DeterministicSine(110, sampleRate, 1, length),
	}
}

// ParamVectors draws count vectors of n values in [0,1]. The first two
// vectors are all zeros and all ones so the corners are always covered.
func ParamVectors(seed int64, n, count int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, 0, count)

	for i := 0; i < count; i++ {
		v := make([]float64, n)
		for j := range v {
			switch i {
			case 0:
				v[j] = 0
			case 1:
				v[j] = 1
			default:
				v[j] = rng.Float64()
			}
		}
		out = append(out, v)
	}

	return out
}
