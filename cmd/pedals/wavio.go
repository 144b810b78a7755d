package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-pedals/dsp/core"
)

const wavFormatPCM = 1

// clip is a mono signal at one sample rate.
type clip struct {
	sampleRate int
	samples    []float64
}

// readWAV decodes an integer PCM WAV file and mixes it down to mono in
// [-1, 1].
func readWAV(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid WAV file", path)
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%s: only integer PCM is supported (format %d)", path, dec.WavAudioFormat)
	}

	bits := int(dec.BitDepth)
	if bits != 16 && bits != 24 && bits != 32 {
		return nil, fmt.Errorf("%s: unsupported bit depth %d", path, bits)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}

	channels := max(buf.Format.NumChannels, 1)
	scale := 1 / math.Ldexp(1, bits-1)

	frames := len(buf.Data) / channels
	out := make([]float64, frames)

	for i := range frames {
		var sum float64
		for ch := range channels {
			sum += float64(buf.Data[i*channels+ch])
		}

		out[i] = sum / float64(channels) * scale
	}

	return &clip{sampleRate: buf.Format.SampleRate, samples: out}, nil
}

// writeWAV encodes samples as a mono integer PCM WAV file, clipping to
// [-1, 1].
func writeWAV(path string, sampleRate, bits int, samples []float64) error {
	if bits != 16 && bits != 24 {
		return fmt.Errorf("unsupported output bit depth %d", bits)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	full := math.Ldexp(1, bits-1) - 1
	data := make([]int, len(samples))

	for i, s := range samples {
		data[i] = int(math.Round(core.Clamp(s, -1, 1) * full))
	}

	enc := wav.NewEncoder(f, sampleRate, bits, 1, wavFormatPCM)

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bits,
	})
	if err != nil {
		return errors.Join(fmt.Errorf("%s: encode: %w", path, err), f.Close())
	}

	if err := enc.Close(); err != nil {
		return errors.Join(fmt.Errorf("%s: finish: %w", path, err), f.Close())
	}

	return f.Close()
}
