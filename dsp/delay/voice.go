package delay

// Voice is a fractional read cursor that walks a Line at its own rate.
// Steps above 1 read faster than the line fills (pitch up), steps below 1
// fall behind (pitch down).
type Voice struct {
	pos  float64
	step float64
}

// NewVoice returns a voice with the given step, positioned at 0.
func NewVoice(step float64) Voice {
	return Voice{step: step}
}

// SetStep changes the per-sample increment.
func (v *Voice) SetStep(step float64) { v.step = step }

// Step returns the per-sample increment.
func (v *Voice) Step() float64 { return v.step }

// Position returns the absolute read position.
func (v *Voice) Position() float64 { return v.pos }

// Resync moves the voice to safety samples behind the write cursor.
func (v *Voice) Resync(line *Line, safety int) {
	v.pos = line.Normalize(float64(line.WritePos() - safety))
}

// InWindow reports whether the voice lag lies in [safety, Len−safety].
func (v *Voice) InWindow(line *Line, safety int) bool {
	lag := line.Lag(v.pos)

	return lag >= float64(safety) && lag <= float64(line.Len()-safety)
}

// Next reads one sample and advances by Step. A voice found outside its
// window is snapped first: voices that outrun the writer jump back half a
// buffer, the others are resynchronized to the safety offset.
func (v *Voice) Next(line *Line, safety int) float64 {
	if line.Len() == 0 {
		return 0
	}

	if !v.InWindow(line, safety) {
		if v.step > 1 {
			v.pos = line.Normalize(float64(line.WritePos() - line.Len()/2))
		} else {
			v.Resync(line, safety)
		}
	}

	out := line.ReadAt(v.pos)
	v.pos = line.Normalize(v.pos + v.step)

	return out
}
