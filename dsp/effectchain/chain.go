package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ErrUnknownEffect is returned when a node references an unregistered effect type.
var ErrUnknownEffect = errors.New("unknown effect type")

type nodeRuntime struct {
	effectType string
	runtime    Runtime
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger routes node lifecycle messages to l. Without it the chain
// logs nothing.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l.WithField("component", "effectchain")
		}
	}
}

// Chain owns a graph-based pedal chain: topology, node runtimes and
// processing buffers. It is independent of any audio backend.
type Chain struct {
	ctx      Context
	registry *Registry
	log      *logrus.Entry

	graph *compiledGraph
	nodes map[string]*nodeRuntime

	outBuf map[string][]float64
	mixSrc [][]float64
}

// New creates a Chain with the given context and registry.
func New(ctx Context, registry *Registry, opts ...Option) *Chain {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	c := &Chain{
		ctx:      ctx,
		registry: registry,
		log:      logrus.NewEntry(silent),
		nodes:    make(map[string]*nodeRuntime),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// SetContext updates the chain context and reconfigures every node, so
// processors are prepared again for the new sample rate or block size.
func (c *Chain) SetContext(ctx Context) error {
	c.ctx = ctx

	if c.graph == nil {
		return nil
	}

	c.log.WithFields(logrus.Fields{
		"sample_rate": ctx.SampleRate,
		"block_size":  ctx.MaxBlockSize,
	}).Debug("context changed")

	return c.syncNodes(c.graph)
}

// Context returns the current chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// HasGraph returns true if the chain has a loaded graph with valid I/O nodes.
func (c *Chain) HasGraph() bool {
	return c.graph != nil && hasRequiredIONodes(c.graph)
}

// LoadGraph parses a JSON graph string, compiles the topology, and
// synchronizes node runtimes. An empty string clears the graph.
func (c *Chain) LoadGraph(jsonGraph string) error {
	graph, err := parseGraph(jsonGraph)
	if err != nil {
		return err
	}

	err = c.syncNodes(graph)
	if err != nil {
		return err
	}

	c.graph = graph

	return nil
}

// Reset clears all node runtimes and processing state.
func (c *Chain) Reset() {
	c.graph = nil
	c.nodes = make(map[string]*nodeRuntime)
	c.outBuf = nil
	c.mixSrc = nil
}

// Snapshot returns the state of every stateful node as a JSON object
// keyed by node ID. The state bytes are base64 encoded.
func (c *Chain) Snapshot() ([]byte, error) {
	states := make(map[string][]byte, len(c.nodes))

	for id, rt := range c.nodes {
		if s, ok := rt.runtime.(Stateful); ok {
			states[id] = s.MarshalState()
		}
	}

	data, err := json.Marshal(states)
	if err != nil {
		return nil, fmt.Errorf("effectchain: snapshot: %w", err)
	}

	return data, nil
}

// RestoreSnapshot applies a Snapshot to the loaded nodes. Entries for
// nodes that are missing or not stateful are skipped.
func (c *Chain) RestoreSnapshot(data []byte) error {
	var states map[string][]byte

	err := json.Unmarshal(data, &states)
	if err != nil {
		return fmt.Errorf("effectchain: restore snapshot: %w", err)
	}

	for id, state := range states {
		rt := c.nodes[id]
		if rt == nil {
			c.log.WithField("node", id).Debug("snapshot entry without node")
			continue
		}

		if s, ok := rt.runtime.(Stateful); ok {
			s.UnmarshalState(state)
		}
	}

	return nil
}

// syncNodes synchronises runtime effect instances with the compiled graph topology.
// Nodes that are no longer present are removed; new or type-changed nodes are (re)created and configured.
func (c *Chain) syncNodes(graph *compiledGraph) error {
	if graph == nil {
		c.nodes = nil

		return nil
	}

	if c.nodes == nil {
		c.nodes = map[string]*nodeRuntime{}
	}

	seen := map[string]struct{}{}

	for _, node := range graph.Nodes {
		if isStructuralNodeType(node.Type) {
			continue
		}

		seen[node.ID] = struct{}{}

		rt := c.nodes[node.ID]
		if rt == nil || rt.effectType != node.Type {
			runtime, err := c.newRuntime(node.Type)
			if err != nil {
				if errors.Is(err, ErrUnknownEffect) {
					c.log.WithFields(logrus.Fields{
						"node": node.ID,
						"type": node.Type,
					}).Debug("skipping node with unknown type")

					continue
				}

				return err
			}

			if runtime == nil {
				continue
			}

			rt = &nodeRuntime{effectType: node.Type, runtime: runtime}
			c.nodes[node.ID] = rt

			c.log.WithFields(logrus.Fields{
				"node": node.ID,
				"type": node.Type,
			}).Debug("created node")
		} else {
			c.log.WithField("node", node.ID).Debug("reconfiguring node")
		}

		err := rt.runtime.Configure(c.ctx, node)
		if err != nil {
			return fmt.Errorf("effectchain: configure node %q (%s): %w", node.ID, node.Type, err)
		}
	}

	for id := range c.nodes {
		if _, ok := seen[id]; !ok {
			delete(c.nodes, id)
			c.log.WithField("node", id).Debug("dropped node")
		}
	}

	return nil
}

func (c *Chain) newRuntime(effectType string) (Runtime, error) {
	factory, ok := c.registry.Lookup(effectType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, effectType)
	}

	return factory(c.ctx)
}

func hasRequiredIONodes(g *compiledGraph) bool {
	if g == nil {
		return false
	}

	if _, ok := g.Nodes[InputNodeID]; !ok {
		return false
	}

	if _, ok := g.Nodes[OutputNodeID]; !ok {
		return false
	}

	return true
}
