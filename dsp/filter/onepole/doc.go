// Package onepole implements the first-order recursive filters every pedal
// uses for tone shaping and click suppression: a smoothing lowpass, its
// complementary highpass and a DC blocker.
//
// Coefficients are always clamped to [0,1]. A [Gate] caches the last
// coefficient so the exponential is only re-evaluated when the requested
// cutoff moves by more than [DefaultGateThreshold] Hz.
package onepole
