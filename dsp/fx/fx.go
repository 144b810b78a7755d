// Package fx defines the capability interface every pedal implements and a
// small embeddable Base that carries the shared lifecycle and parameter
// plumbing.
//
// A host drives a Processor through Uninitialized → Prepared → Processing:
// Prepare sizes buffers and recomputes coefficients, ProcessBlock and
// ProcessSample run on the audio goroutine, and Parameter/SetParameter may
// be called concurrently from a control goroutine.
package fx

import (
	"fmt"

	"github.com/cwbudde/algo-pedals/dsp/param"
)

// Layout is the channel layout a processor declares.
type Layout int

const (
	// Mono processes channel 0 only.
	Mono Layout = iota
	// Stereo processes channels 0 and 1.
	Stereo
)

// Channels returns the channel count.
func (l Layout) Channels() int {
	if l == Stereo {
		return 2
	}

	return 1
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Info describes a processor.
type Info struct {
	Name        string
	Layout      Layout
	HasBypass   bool
	TailSeconds float64
}

// Channels returns Layout.Channels().
func (i Info) Channels() int { return i.Layout.Channels() }

// Processor is the capability set shared by every pedal.
//
// ProcessBlock works in place on block[ch][n] and touches at most
// Info().Channels() channels; extra channels pass through. Neither process
// method allocates, locks or returns an error.
type Processor interface {
	Info() Info
	Prepare(sampleRate float64, maxBlockSize int)
	ProcessBlock(block [][]float64)
	ProcessSample(x float64) float64
	Parameter(name string) (float64, bool)
	SetParameter(name string, normalized float64) bool
	MarshalState() []byte
	UnmarshalState(b []byte)
}

// Parameterized is implemented by processors that expose their parameter set.
type Parameterized interface {
	Params() *param.Set
}

// ActiveChannels returns how many channels of block a processor with the
// given layout should touch.
func ActiveChannels(block [][]float64, layout Layout) int {
	return min(len(block), layout.Channels())
}
