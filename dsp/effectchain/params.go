package effectchain

import (
	"iter"
	"maps"
	"math"
	"slices"
)

// Params is one node as loaded from the graph: its identity, the bypass
// flag and the numeric parameter values keyed by name.
type Params struct {
	ID       string
	Type     string
	Bypassed bool
	Num      map[string]float64
}

// Lookup returns the named value. NaN and infinities count as missing.
func (p Params) Lookup(name string) (float64, bool) {
	v, ok := p.Num[name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// Or returns the named value, or def when Lookup finds none.
func (p Params) Or(name string, def float64) float64 {
	if v, ok := p.Lookup(name); ok {
		return v
	}

	return def
}

// Values yields the finite values in name order.
func (p Params) Values() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, name := range slices.Sorted(maps.Keys(p.Num)) {
			v, ok := p.Lookup(name)
			if !ok {
				continue
			}

			if !yield(name, v) {
				return
			}
		}
	}
}
