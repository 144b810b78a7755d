package interp

import "fmt"

// Mode selects an interpolation kernel.
type Mode int

const (
	// Linear interpolates between the two neighbouring samples.
	Linear Mode = iota
	// Hermite uses four samples around the read position.
	Hermite
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Hermite:
		return "hermite"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Taps returns how many samples the kernel reads. Hermite needs one sample
// before and two after the integer read index.
func (m Mode) Taps() int {
	if m == Hermite {
		return 4
	}
	return 2
}

// Valid reports whether m names a known kernel.
func (m Mode) Valid() bool {
	return m == Linear || m == Hermite
}

// Linear2 interpolates between x0 and x1 at t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
