package core

import "github.com/cwbudde/algo-vecmath"

// EnsureLen returns buf resized to n samples. The backing array is reused
// when it is large enough; otherwise a zeroed slice is allocated. Reused
// samples keep their previous values.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) < n {
		return make([]float64, n)
	}

	return buf[:n]
}

// Average writes the sample-wise mean of srcs into dst. Every source must
// be at least len(dst) long and must not alias dst. With no sources dst is
// cleared.
func Average(dst []float64, srcs ...[]float64) {
	switch len(srcs) {
	case 0:
		clear(dst)
		return
	case 1:
		copy(dst, srcs[0])
		return
	}

	n := len(dst)
	copy(dst, srcs[0][:n])

	for _, src := range srcs[1:] {
		vecmath.AddBlockInPlace(dst, src[:n])
	}

	vecmath.ScaleBlockInPlace(dst, 1/float64(len(srcs)))
}
