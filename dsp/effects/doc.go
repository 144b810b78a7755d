// Package effects provides the drive and time pedals of the collection.
//
// Subpackages:
//   - github.com/cwbudde/algo-pedals/dsp/effects/modulation
//   - github.com/cwbudde/algo-pedals/dsp/effects/pitch
//   - github.com/cwbudde/algo-pedals/dsp/effects/tuner
//
// Pedals in this package:
//   - Distortion: ProCo RAT style op-amp distortion with diode clamp and tone filter.
//   - Fuzz: Big Muff style two-stage fuzz with a mid-scooped tone stack.
//   - Delay: Bucket-brigade style delay with darkening, saturating repeats.
//   - Boost: MXR Micro Amp style stereo clean boost with ramped gain.
//
// Every pedal implements fx.Processor. Processing before Prepare and
// processing with bypass on leave the input untouched, and the hot paths
// neither allocate nor lock.
package effects
