package pitch

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

var errLagRange = errors.New("pitch: lag range exceeds half the frame")

// Correlator computes dst[lag] = Σ_{i<len(x)/2} x[i]·x[i+lag] for every lag
// in [minLag, maxLag]. Entries outside that range are left untouched.
// maxLag must be below len(x)/2 and dst must have at least maxLag+1 entries.
type Correlator interface {
	Correlate(dst, x []float64, minLag, maxLag int) error
}

// DirectCorrelator evaluates each lag with a vectorized multiply followed
// by a sum. Cost grows with N·(maxLag−minLag).
type DirectCorrelator struct {
	scratch []float64
}

// NewDirectCorrelator returns a correlator for frames of n samples.
func NewDirectCorrelator(n int) *DirectCorrelator {
	return &DirectCorrelator{scratch: make([]float64, max(n/2, 1))}
}

// Correlate implements Correlator.
func (c *DirectCorrelator) Correlate(dst, x []float64, minLag, maxLag int) error {
	half := len(x) / 2
	if err := checkLags(len(dst), half, minLag, maxLag); err != nil {
		return err
	}

	if len(c.scratch) < half {
		c.scratch = make([]float64, half)
	}

	scratch := c.scratch[:half]
	head := x[:half]

	for lag := minLag; lag <= maxLag; lag++ {
		vecmath.MulBlock(scratch, head, x[lag:lag+half])
		dst[lag] = sum(scratch)
	}

	return nil
}

// FFTCorrelator computes every lag at once as the circular cross-correlation
// of the zero-padded first half against the whole frame. For lags below N/2
// no product wraps, so the circular result equals the direct sum.
type FFTCorrelator struct {
	n    int
	plan *algofft.Plan[complex128]

	head []complex128
	full []complex128
}

// NewFFTCorrelator prepares an FFT plan for frames of n samples.
func NewFFTCorrelator(n int) (*FFTCorrelator, error) {
	if n < 2 {
		return nil, fmt.Errorf("pitch: FFT correlator size must be >= 2: %d", n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("pitch: failed to create FFT plan: %w", err)
	}

	return &FFTCorrelator{
		n:    n,
		plan: plan,
		head: make([]complex128, n),
		full: make([]complex128, n),
	}, nil
}

// Size returns the frame length the plan was built for.
func (c *FFTCorrelator) Size() int { return c.n }

// Correlate implements Correlator. len(x) must equal Size.
func (c *FFTCorrelator) Correlate(dst, x []float64, minLag, maxLag int) error {
	if len(x) != c.n {
		return fmt.Errorf("pitch: frame length %d does not match FFT size %d", len(x), c.n)
	}

	half := c.n / 2
	if err := checkLags(len(dst), half, minLag, maxLag); err != nil {
		return err
	}

	for i, v := range x {
		c.full[i] = complex(v, 0)

		if i < half {
			c.head[i] = complex(v, 0)
		} else {
			c.head[i] = 0
		}
	}

	if err := c.plan.Forward(c.head, c.head); err != nil {
		return fmt.Errorf("pitch: forward FFT failed: %w", err)
	}

	if err := c.plan.Forward(c.full, c.full); err != nil {
		return fmt.Errorf("pitch: forward FFT failed: %w", err)
	}

	// r = IFFT(conj(H)·F) gives Σ h[i]·f[i+lag].
	for k := range c.full {
		h := c.head[k]
		c.full[k] *= complex(real(h), -imag(h))
	}

	if err := c.plan.Inverse(c.full, c.full); err != nil {
		return fmt.Errorf("pitch: inverse FFT failed: %w", err)
	}

	for lag := minLag; lag <= maxLag; lag++ {
		dst[lag] = real(c.full[lag])
	}

	return nil
}

func checkLags(dstLen, half, minLag, maxLag int) error {
	if minLag < 0 || maxLag < minLag || maxLag >= half || maxLag >= dstLen {
		return fmt.Errorf("%w: [%d, %d] with N/2=%d", errLagRange, minLag, maxLag, half)
	}

	return nil
}

func sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}

	return s
}
