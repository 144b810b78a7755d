package param

import "math"

// Smoother ramps linearly from its current value to a target over a fixed
// number of samples. It prevents zipper noise on gain changes.
type Smoother struct {
	current   float64
	target    float64
	step      float64
	length    int
	countdown int
}

// Reset sets the ramp length to rampSeconds at sampleRate and stops any
// ramp in progress.
func (s *Smoother) Reset(sampleRate, rampSeconds float64) {
	n := 0
	if sampleRate > 0 && rampSeconds > 0 {
		n = int(math.Round(rampSeconds * sampleRate))
	}

	s.length = n
	s.SetCurrentAndTarget(s.target)
}

// SetCurrentAndTarget jumps to v without ramping.
func (s *Smoother) SetCurrentAndTarget(v float64) {
	s.current = v
	s.target = v
	s.countdown = 0
	s.step = 0
}

// SetTarget starts a new ramp towards v.
func (s *Smoother) SetTarget(v float64) {
	if v == s.target {
		return
	}

	if s.length <= 0 {
		s.SetCurrentAndTarget(v)
		return
	}

	s.target = v
	s.countdown = s.length
	s.step = (s.target - s.current) / float64(s.countdown)
}

// Target returns the value being ramped to.
func (s *Smoother) Target() float64 { return s.target }

// Current returns the last produced value.
func (s *Smoother) Current() float64 { return s.current }

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.countdown > 0 }

// Next advances one sample.
func (s *Smoother) Next() float64 {
	if s.countdown <= 0 {
		return s.target
	}

	s.countdown--
	if s.countdown == 0 {
		s.current = s.target
	} else {
		s.current += s.step
	}

	return s.current
}

// Fill writes the next len(dst) values.
func (s *Smoother) Fill(dst []float64) {
	if s.countdown <= 0 {
		for i := range dst {
			dst[i] = s.target
		}

		return
	}

	for i := range dst {
		dst[i] = s.Next()
	}
}
