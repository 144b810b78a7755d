package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
	"github.com/cwbudde/algo-pedals/dsp/interp"
)

// Option configures a Line at construction.
type Option func(*Line) error

// WithMode selects the interpolation kernel. The default is interp.Linear.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation mode is invalid: %v", mode)
		}

		d.mode = mode

		return nil
	}
}

// Line is a circular delay line. Write advances the cursor by exactly one
// sample modulo Len.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// New returns a delay line of fixed size.
func New(size int, opts ...Option) (*Line, error) {
	d := &Line{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if err := d.Resize(size); err != nil {
		return nil, err
	}

	return d, nil
}

// SamplesFor returns the buffer length needed to hold maxDelayMs at
// sampleRate plus margin samples of interpolation headroom.
func SamplesFor(maxDelayMs, sampleRate float64, margin int) int {
	sampleRate = core.SafeSampleRate(sampleRate)
	if !(maxDelayMs > 0) {
		maxDelayMs = 0
	}

	return int(math.Ceil(maxDelayMs*sampleRate/1000)) + max(margin, 0)
}

// Resize reallocates the buffer to size samples and clears it. Capacity is
// reused when possible; call it from Prepare, never while processing.
func (d *Line) Resize(size int) error {
	if size <= 0 {
		return fmt.Errorf("delay size must be > 0: %d", size)
	}

	d.buffer = core.EnsureLen(d.buffer, size)
	d.Reset()

	return nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation kernel.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// WritePos returns the index the next Write stores into.
func (d *Line) WritePos() int {
	return d.writePos
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	if len(d.buffer) == 0 {
		return
	}

	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples; 1 is the most recent sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}

	return d.buffer[readPos]
}

// ReadFractional reads delay samples behind the write cursor. Delays are
// clamped to [0, Len−1].
func (d *Line) ReadFractional(delay float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	if !(delay > 0) {
		delay = 0
	}

	delay = math.Min(delay, float64(size-1))

	return d.ReadAt(float64(d.writePos) - delay)
}

// ReadAt interpolates at an absolute buffer position. Positions outside
// [0, Len) wrap; non-finite positions read index 0.
func (d *Line) ReadAt(pos float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	pos = d.Normalize(pos)
	i1 := int(pos)
	frac := pos - float64(i1)

	if d.mode == interp.Hermite {
		xm1 := d.buffer[d.wrap(i1-1)]
		x0 := d.buffer[i1]
		x1 := d.buffer[d.wrap(i1+1)]
		x2 := d.buffer[d.wrap(i1+2)]

		return interp.Hermite4(frac, xm1, x0, x1, x2)
	}

	return interp.Linear2(frac, d.buffer[i1], d.buffer[d.wrap(i1+1)])
}

// Normalize maps pos into [0, Len).
func (d *Line) Normalize(pos float64) float64 {
	size := float64(len(d.buffer))
	if size == 0 || !core.IsFinite(pos) {
		return 0
	}

	pos = math.Mod(pos, size)
	if pos < 0 {
		pos += size
	}

	// pos + size can round up to size for tiny negative inputs.
	if pos >= size {
		pos = 0
	}

	return pos
}

// Lag returns how far pos sits behind the write cursor, in [0, Len).
func (d *Line) Lag(pos float64) float64 {
	return d.Normalize(float64(d.writePos) - pos)
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}

func (d *Line) wrap(i int) int {
	size := len(d.buffer)

	i %= size
	if i < 0 {
		i += size
	}

	return i
}
