package param

import (
	"encoding/binary"
	"math"
)

// StateFieldSize is the encoded size of one parameter.
const StateFieldSize = 4

// MarshalState encodes every parameter's plain value as a little-endian
// float32 in declaration order. Booleans encode as 0.0 or 1.0.
func (s *Set) MarshalState() []byte {
	return s.AppendState(make([]byte, 0, len(s.params)*StateFieldSize))
}

// AppendState appends the encoded state to dst.
func (s *Set) AppendState(dst []byte) []byte {
	for _, p := range s.params {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(p.Plain())))
	}

	return dst
}

// UnmarshalState decodes plain values in declaration order. Reading stops
// at the first incomplete field, so a short buffer updates a prefix and
// leaves the remaining parameters unchanged. Non-finite fields are skipped.
// It returns the number of parameters applied.
func (s *Set) UnmarshalState(b []byte) int {
	applied := 0

	for i, p := range s.params {
		off := i * StateFieldSize
		if off+StateFieldSize > len(b) {
			break
		}

		v := float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:])))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}

		p.SetPlain(v)
		applied++
	}

	return applied
}
