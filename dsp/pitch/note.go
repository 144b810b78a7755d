package pitch

import (
	"math"
	"strconv"
)

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// MIDINumber returns 69 + 12·log2(f/440).
func MIDINumber(freqHz float64) float64 {
	return 69 + 12*math.Log2(freqHz/440)
}

// NoteName spells a MIDI note number with its octave, e.g. 57 → "A3".
func NoteName(note int, flats bool) string {
	class := ((note % 12) + 12) % 12
	octave := floorDiv(note, 12) - 1

	names := &sharpNames
	if flats {
		names = &flatNames
	}

	return names[class] + strconv.Itoa(octave)
}

// Estimate is the result of one detection. The zero value means no pitch.
type Estimate struct {
	Frequency   float64 // Hz, 0 when no pitch was found
	Period      float64 // samples
	MIDI        float64 // fractional note number
	Note        int     // nearest note number
	Cents       float64 // (MIDI − Note)·100, in [−50, 50]
	Correlation float64 // r(lag) at the chosen lag
}

// Valid reports whether a pitch was found.
func (e Estimate) Valid() bool { return e.Frequency > 0 }

// Name spells the nearest note, or "" when no pitch was found.
func (e Estimate) Name(flats bool) string {
	if !e.Valid() {
		return ""
	}

	return NoteName(e.Note, flats)
}

// FromFrequency builds an Estimate for freqHz. Frequencies outside
// [MinValidFrequency, MaxValidFrequency] yield the zero Estimate.
func FromFrequency(freqHz float64) Estimate {
	if !(freqHz >= MinValidFrequency && freqHz <= MaxValidFrequency) {
		return Estimate{}
	}

	midi := MIDINumber(freqHz)
	nearest := math.Round(midi)

	return Estimate{
		Frequency: freqHz,
		MIDI:      midi,
		Note:      int(nearest),
		Cents:     (midi - nearest) * 100,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
