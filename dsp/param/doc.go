// Package param holds pedal parameters: named, bounded values exposed in a
// normalized [0,1] domain and mapped to plain units by a fixed [Curve].
//
// Values are stored as atomic float64 bits, so a control goroutine may call
// SetNormalized while the audio goroutine reads each parameter once per
// sample. A [Set] keeps declaration order, which is also the order of the
// little-endian float32 state layout produced by [Set.MarshalState].
package param
