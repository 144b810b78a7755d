package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// InputNodeID is the reserved node ID for the chain input.
	InputNodeID = "_input"
	// OutputNodeID is the reserved node ID for the chain output.
	OutputNodeID = "_output"

	// NodeTypeSplit fans one signal out to several children.
	NodeTypeSplit = "split"
	// NodeTypeSum averages several parents into one signal.
	NodeTypeSum = "sum"
)

// ErrCycle is returned when the graph connections contain a cycle.
var ErrCycle = errors.New("invalid chain graph: contains cycle")

// boardJSON is the wire form of a pedal board graph.
type boardJSON struct {
	Nodes []struct {
		ID       string     `json:"id"`
		Type     string     `json:"type"`
		Bypassed bool       `json:"bypassed"`
		Params   nodeParams `json:"params"`
	} `json:"nodes"`
	Connections []struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"connections"`
}

// nodeParams holds the numeric entries of a node's params object.
// Booleans decode as 0 or 1. Strings, arrays and objects are dropped, as
// is a params value that is not an object at all.
type nodeParams map[string]float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *nodeParams) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if json.Unmarshal(data, &fields) != nil {
		*p = nil
		return nil
	}

	out := make(nodeParams, len(fields))

	for name, raw := range fields {
		var (
			num  float64
			flag bool
		)

		switch {
		case string(raw) == "null":
		case json.Unmarshal(raw, &num) == nil:
			out[name] = num
		case json.Unmarshal(raw, &flag) == nil:
			out[name] = 0
			if flag {
				out[name] = 1
			}
		}
	}

	*p = out

	return nil
}

// compiledGraph is a loaded graph: nodes by ID, parent and child lists,
// and a traversal order in which every node follows its parents.
type compiledGraph struct {
	Nodes    map[string]Params
	Parents  map[string][]string
	Children map[string][]string
	Order    []string
}

// parseGraph decodes and compiles a graph. An empty string, or a graph
// without both I/O nodes, compiles to an empty graph.
func parseGraph(raw string) (*compiledGraph, error) {
	if raw == "" {
		return &compiledGraph{}, nil
	}

	var board boardJSON
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		return nil, fmt.Errorf("invalid chain graph json: %w", err)
	}

	g := &compiledGraph{
		Nodes:    make(map[string]Params, len(board.Nodes)),
		Parents:  make(map[string][]string, len(board.Nodes)),
		Children: make(map[string][]string, len(board.Nodes)),
	}

	// Declaration order, so traversal does not depend on map iteration.
	declared := make([]string, 0, len(board.Nodes))

	for _, n := range board.Nodes {
		if n.ID == "" || n.Type == "" {
			continue
		}

		if _, seen := g.Nodes[n.ID]; !seen {
			declared = append(declared, n.ID)
		}

		g.Nodes[n.ID] = Params{ID: n.ID, Type: n.Type, Bypassed: n.Bypassed, Num: n.Params}
	}

	if !hasRequiredIONodes(g) {
		return &compiledGraph{}, nil
	}

	for _, c := range board.Connections {
		_, fromOK := g.Nodes[c.From]
		_, toOK := g.Nodes[c.To]

		if !fromOK || !toOK || c.From == c.To {
			continue
		}

		g.Children[c.From] = append(g.Children[c.From], c.To)
		g.Parents[c.To] = append(g.Parents[c.To], c.From)
	}

	order, err := topoSort(declared, g.Parents, g.Children)
	if err != nil {
		return nil, err
	}

	g.Order = order

	return g, nil
}

// topoSort orders ids with Kahn's algorithm, seeding the queue in the
// given order.
func topoSort(ids []string, parents, children map[string][]string) ([]string, error) {
	pending := make(map[string]int, len(ids))
	queue := make([]string, 0, len(ids))

	for _, id := range ids {
		pending[id] = len(parents[id])
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(ids))

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, child := range children[id] {
			pending[child]--
			if pending[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(ids) {
		return nil, ErrCycle
	}

	return order, nil
}

// isStructuralNodeType returns true for I/O and routing nodes. They have no
// runtime and pass the mix of their parents through.
func isStructuralNodeType(nodeType string) bool {
	switch nodeType {
	case InputNodeID, OutputNodeID, NodeTypeSplit, NodeTypeSum:
		return true
	}

	return false
}
