package onepole

import (
	"math"

	"github.com/cwbudde/algo-pedals/dsp/core"
)

// DefaultGateThreshold is the cutoff movement in Hz below which a cached
// coefficient is reused.
const DefaultGateThreshold = 1.0

// Kind selects which coefficient formula a Gate evaluates.
type Kind int

const (
	// KindLowpass evaluates LowpassCoefficient.
	KindLowpass Kind = iota
	// KindDCBlocker evaluates DCBlockerCoefficient.
	KindDCBlocker
)

// Gate caches a coefficient and recomputes it only when the cutoff moves by
// more than the threshold. The zero value is a lowpass gate with the default
// threshold at core.DefaultSampleRate.
type Gate struct {
	kind       Kind
	threshold  float64
	sampleRate float64

	cutoff  float64
	coef    float64
	primed  bool
	updates int
}

// NewGate returns a gate for kind. A threshold <= 0 selects DefaultGateThreshold.
func NewGate(kind Kind, threshold float64) Gate {
	return Gate{kind: kind, threshold: threshold}
}

// SetSampleRate changes the sample rate and forces the next Coefficient call
// to recompute.
func (g *Gate) SetSampleRate(sampleRate float64) {
	g.sampleRate = core.SafeSampleRate(sampleRate)
	g.primed = false
}

// SampleRate returns the effective sample rate.
func (g *Gate) SampleRate() float64 {
	return core.SafeSampleRate(g.sampleRate)
}

// Coefficient returns the coefficient for cutoffHz.
func (g *Gate) Coefficient(cutoffHz float64) float64 {
	threshold := g.threshold
	if threshold <= 0 {
		threshold = DefaultGateThreshold
	}

	if g.primed && math.Abs(cutoffHz-g.cutoff) <= threshold {
		return g.coef
	}

	switch g.kind {
	case KindDCBlocker:
		g.coef = DCBlockerCoefficient(cutoffHz, g.SampleRate())
	default:
		g.coef = LowpassCoefficient(cutoffHz, g.SampleRate())
	}

	g.cutoff = cutoffHz
	g.primed = true
	g.updates++

	return g.coef
}

// Cutoff returns the cutoff the cached coefficient was computed for.
func (g *Gate) Cutoff() float64 { return g.cutoff }

// Updates returns how many times the coefficient was recomputed.
func (g *Gate) Updates() int { return g.updates }
