// Package pitch provides the octave pedal.
//
// OctaveShifter reads one ring buffer with up to four fractional voices at
// 4×, 2×, ½× and ¼× the write rate. A voice that drifts outside its lag
// window is snapped back, which keeps every read behind the writer at the
// cost of a periodic splice.
package pitch
