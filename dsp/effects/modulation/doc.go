// Package modulation provides the LFO-driven pedals.
//
// Included processors:
//   - Chorus: Boss CE-2 style single-tap modulated delay.
//   - Phaser: MXR Phase 90 style four-stage allpass sweep. Its output is
//     always wet; the bypass parameter only mirrors the footswitch.
package modulation
