package effectchain

import (
	"maps"
	"slices"

	"github.com/cwbudde/algo-pedals/dsp/core"
	"github.com/cwbudde/algo-pedals/dsp/fx"
)

// Process applies the effect chain to the block in-place.
// Returns false if the chain has no valid graph with I/O nodes.
func (c *Chain) Process(block []float64) bool {
	if len(block) == 0 {
		return true
	}

	g := c.graph
	if g == nil || !hasRequiredIONodes(g) {
		return false
	}

	buffers := c.prepareBuffers(block, g)

	for _, id := range g.Order {
		if id != InputNodeID {
			c.processNode(id, g, buffers)
		}
	}

	copy(block, buffers[OutputNodeID])

	return true
}

// NodeRuntime returns the Runtime for the given node ID, or nil.
func (c *Chain) NodeRuntime(nodeID string) Runtime {
	rt := c.nodes[nodeID]
	if rt == nil {
		return nil
	}

	return rt.runtime
}

// NodeIDs returns the IDs of the nodes that have a runtime, sorted.
func (c *Chain) NodeIDs() []string {
	return slices.Sorted(maps.Keys(c.nodes))
}

// Processor returns the pedal behind a node built by ProcessorFactory.
func (c *Chain) Processor(nodeID string) (fx.Processor, bool) {
	pr, ok := c.NodeRuntime(nodeID).(*ProcessorRuntime)
	if !ok {
		return nil, false
	}

	return pr.Processor(), true
}

// prepareBuffers sizes one output buffer per node to the block. The input
// node's buffer is the block itself.
func (c *Chain) prepareBuffers(block []float64, g *compiledGraph) map[string][]float64 {
	if c.outBuf == nil {
		c.outBuf = make(map[string][]float64, len(g.Nodes))
	}

	for _, id := range g.Order {
		if id == InputNodeID {
			c.outBuf[id] = block
			continue
		}

		c.outBuf[id] = core.EnsureLen(c.outBuf[id], len(block))
	}

	return c.outBuf
}

func (c *Chain) processNode(id string, g *compiledGraph, buffers map[string][]float64) {
	node := g.Nodes[id]
	dst := buffers[id]

	c.mixSrc = c.mixSrc[:0]
	for _, parent := range g.Parents[id] {
		c.mixSrc = append(c.mixSrc, buffers[parent])
	}

	// A node without parents receives silence.
	core.Average(dst, c.mixSrc...)

	if id == OutputNodeID || isStructuralNodeType(node.Type) {
		return
	}

	rt := c.nodes[node.ID]
	if rt == nil || rt.runtime == nil {
		return
	}

	if node.Bypassed && !handlesBypass(rt.runtime) {
		return
	}

	rt.runtime.Process(dst)
}

func handlesBypass(rt Runtime) bool {
	h, ok := rt.(BypassHandler)
	return ok && h.HandlesBypass()
}
