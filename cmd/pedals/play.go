package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pedals/dsp/effectchain"
	"github.com/cwbudde/algo-pedals/dsp/effects/tuner"
)

const (
	bytesPerSample = 4
	displayPeriod  = 100 * time.Millisecond
)

// PlayCmd streams a file through the chain to the default audio output.
type PlayCmd struct {
	BoardFlags

	Loop   bool          `help:"Restart the file when it ends."`
	Buffer time.Duration `default:"50ms" help:"Output buffer length."`

	Input string `arg:"" type:"existingfile" help:"Input WAV file."`
}

// chainReader renders float32 little-endian audio on demand. oto calls
// Read from its own goroutine, so the chain is only touched there.
type chainReader struct {
	chain *effectchain.Chain
	src   []float64
	pos   int
	loop  bool
	block []float64
}

func newChainReader(chain *effectchain.Chain, src []float64, block int, loop bool) *chainReader {
	return &chainReader{chain: chain, src: src, loop: loop, block: make([]float64, block)}
}

// Read implements io.Reader.
func (r *chainReader) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerSample
	n := 0

	for n < frames {
		if r.pos >= len(r.src) {
			if !r.loop || len(r.src) == 0 {
				break
			}

			r.pos = 0
		}

		m := min(frames-n, len(r.block), len(r.src)-r.pos)
		blk := r.block[:m]
		copy(blk, r.src[r.pos:r.pos+m])
		r.chain.Process(blk)

		for i, v := range blk {
			binary.LittleEndian.PutUint32(p[(n+i)*bytesPerSample:], math.Float32bits(float32(v)))
		}

		n += m
		r.pos += m
	}

	if n == 0 && frames > 0 {
		return 0, io.EOF
	}

	return n * bytesPerSample, nil
}

// findTuner returns the first tuner node of the chain.
func findTuner(chain *effectchain.Chain) *tuner.Tuner {
	for _, id := range chain.NodeIDs() {
		proc, _ := chain.Processor(id)
		if tu, ok := proc.(*tuner.Tuner); ok {
			return tu
		}
	}

	return nil
}

// Run implements the play command.
func (c *PlayCmd) Run(g *Globals) error {
	in, err := readWAV(c.Input)
	if err != nil {
		return err
	}

	chain, err := c.load(float64(in.sampleRate), g.log)
	if err != nil {
		return err
	}

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   in.sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   c.Buffer,
	})
	if err != nil {
		return fmt.Errorf("open audio output: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(newChainReader(chain, in.samples, c.Block, c.Loop))
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g.log.WithFields(logrus.Fields{
		"input":       c.Input,
		"sample_rate": in.sampleRate,
		"loop":        c.Loop,
	}).Info("playing")

	player.Play()

	tu := findTuner(chain)
	ticker := time.NewTicker(displayPeriod)

	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(g.out)
			return nil
		case <-ticker.C:
			if tu != nil {
				est := tu.Estimate()
				fmt.Fprintf(g.out, "\r%s  %s\033[K", titleStyle.Render("tuner"), formatNote(est, tu.UseFlats()))
			}

			if !player.IsPlaying() {
				fmt.Fprintln(g.out)
				return player.Err()
			}
		}
	}
}
