// Package delay implements the fixed-length circular buffers behind the
// delay, chorus and octave pedals.
//
// A [Line] owns the samples and the write cursor. Read positions are
// absolute buffer coordinates, normalized into [0, Len) before the
// interpolation kernel runs. A [Voice] is an independent fractional read
// cursor with its own per-sample step; it is kept inside a lag window
// behind the write cursor and snapped back whenever it leaves that window.
package delay
