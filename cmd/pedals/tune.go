package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-pedals/dsp/effects/tuner"
	"github.com/cwbudde/algo-pedals/dsp/pitch"
)

// In-tune window in cents for the readout colour.
const inTuneCents = 5.0

// TuneCmd prints tuner readings for a file.
type TuneCmd struct {
	Hop    int    `default:"2048" help:"Samples between readings."`
	Flats  bool   `help:"Spell notes with flats."`
	Method string `default:"fft" enum:"fft,direct" help:"Autocorrelation method."`

	Input string `arg:"" type:"existingfile" help:"Input WAV file."`
}

// Run implements the tune command.
func (c *TuneCmd) Run(g *Globals) error {
	in, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	if c.Hop < 1 {
		return fmt.Errorf("hop must be >= 1: %d", c.Hop)
	}

	method := pitch.FFT
	if c.Method == "direct" {
		method = pitch.Direct
	}

	tu, err := tuner.NewTuner(tuner.WithHop(c.Hop), tuner.WithDetector(pitch.WithMethod(method)))
	if err != nil {
		return err
	}

	if c.Flats {
		tu.SetParameter("useFlats", 1)
	}

	tu.Prepare(float64(in.sampleRate), c.Hop)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Tuner: " + c.Input))
	sb.WriteString("\n")

	block := [][]float64{nil}

	for start := 0; start < len(in.samples); start += c.Hop {
		end := min(start+c.Hop, len(in.samples))
		block[0] = in.samples[start:end]
		tu.ProcessBlock(block)

		at := float64(start) / float64(in.sampleRate)
		sb.WriteString(formatReading(at, tu.Estimate(), tu.UseFlats()))
		sb.WriteString("\n")
	}

	g.log.WithField("detections", tu.Detections()).Debug("tuner finished")

	_, err = fmt.Fprint(g.out, sb.String())

	return err
}

func formatReading(at float64, est pitch.Estimate, flats bool) string {
	return dimStyle.Render(fmt.Sprintf("%7.2fs", at)) + "  " + formatNote(est, flats)
}

func formatNote(est pitch.Estimate, flats bool) string {
	if !est.Valid() {
		return dimStyle.Render("--")
	}

	style := offTuneStyle
	if math.Abs(est.Cents) <= inTuneCents {
		style = inTuneStyle
	}

	return fmt.Sprintf("%s %8.2f Hz %s",
		style.Render(fmt.Sprintf("%-3s", est.Name(flats))),
		est.Frequency,
		style.Render(fmt.Sprintf("%+6.1f ct", est.Cents)))
}
