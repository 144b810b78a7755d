package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// RenderCmd processes a WAV file offline.
type RenderCmd struct {
	BoardFlags

	Bits     int    `default:"16" enum:"16,24" help:"Output bit depth."`
	NoTail   bool   `help:"Do not append the pedals' tail after the input ends."`
	Snapshot string `type:"path" help:"Also write the chain snapshot to this file."`

	Input  string `arg:"" type:"existingfile" help:"Input WAV file."`
	Output string `arg:"" type:"path" help:"Output WAV file."`
}

// Run implements the render command.
func (c *RenderCmd) Run(g *Globals) error {
	in, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	chain, err := c.load(float64(in.sampleRate), g.log)
	if err != nil {
		return err
	}

	samples := in.samples
	if !c.NoTail {
		tail := int(math.Ceil(tailSeconds(chain) * float64(in.sampleRate)))
		samples = append(samples, make([]float64, tail)...)
	}

	start := time.Now()
	out := renderClip(chain, samples, c.Block)
	elapsed := time.Since(start)

	err = writeWAV(c.Output, in.sampleRate, c.Bits, out)
	if err != nil {
		return err
	}

	if c.Snapshot != "" {
		data, err := chain.Snapshot()
		if err != nil {
			return err
		}

		err = os.WriteFile(c.Snapshot, data, 0o644)
		if err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}

	audioSeconds := float64(len(out)) / float64(in.sampleRate)

	g.log.WithFields(logrus.Fields{
		"input":       c.Input,
		"output":      c.Output,
		"sample_rate": in.sampleRate,
		"seconds":     fmt.Sprintf("%.2f", audioSeconds),
		"realtime_x":  fmt.Sprintf("%.1f", audioSeconds/max(elapsed.Seconds(), 1e-9)),
	}).Info("rendered")

	return nil
}
