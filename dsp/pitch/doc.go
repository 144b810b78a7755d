// Package pitch estimates the fundamental frequency of a monophonic signal
// by autocorrelation, the way a chromatic tuner pedal does.
//
// A [Detector] keeps the most recent BufferSize samples in a ring buffer.
// Detect linearizes the ring, rejects quiet input with an RMS gate and
// evaluates the unnormalized autocorrelation
//
//	r(lag) = Σ x[i]·x[i+lag],  i < N/2
//
// for every lag between fs/maxFrequency and fs/minFrequency. The period is
// the lag of the strongest positive correlation. Two refinements are on by
// default: an octave guard that prefers the shortest lag whose peak is
// within [DefaultOctaveRatio] of the best one, and parabolic interpolation
// of the peak.
//
// The correlation itself is pluggable: [DirectCorrelator] evaluates the sum
// lag by lag with vectorized multiplies, [FFTCorrelator] computes all lags
// at once by FFT cross-correlation.
package pitch
