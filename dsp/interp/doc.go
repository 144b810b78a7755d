// Package interp provides the fractional interpolation kernels used by the
// delay lines of the pedal effects.
//
//   - [Linear2]:  2-point linear interpolation (what the pedals use)
//   - [Hermite4]: 4-point cubic Hermite, selectable through [Mode]
package interp
