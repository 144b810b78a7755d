package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pedals/dsp/effectchain"
)

// BoardFlags select the pedal graph a command runs.
type BoardFlags struct {
	Graph string             `short:"g" type:"existingfile" help:"JSON graph file." xor:"board"`
	Pedal []string           `short:"p" help:"Pedal types to chain in order, used instead of --graph." xor:"board"`
	Set   map[string]float64 `short:"s" help:"Normalized parameter values as NODE.PARAM=VALUE." mapsep:","`
	Block int                `default:"256" help:"Processing block size in samples."`
}

type boardNode struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type boardConnection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type boardGraph struct {
	Nodes       []boardNode       `json:"nodes"`
	Connections []boardConnection `json:"connections"`
}

// serialBoard builds a graph that runs the pedal types in order. Node IDs
// are the type names, numbered from the second use on.
func serialBoard(types []string) (string, error) {
	g := boardGraph{Nodes: []boardNode{{ID: effectchain.InputNodeID, Type: effectchain.InputNodeID}}}
	uses := map[string]int{}

	for _, typ := range types {
		uses[typ]++

		id := typ
		if uses[typ] > 1 {
			id += strconv.Itoa(uses[typ])
		}

		g.Nodes = append(g.Nodes, boardNode{ID: id, Type: typ})
	}

	g.Nodes = append(g.Nodes, boardNode{ID: effectchain.OutputNodeID, Type: effectchain.OutputNodeID})

	for i := 1; i < len(g.Nodes); i++ {
		g.Connections = append(g.Connections, boardConnection{From: g.Nodes[i-1].ID, To: g.Nodes[i].ID})
	}

	data, err := json.Marshal(g)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (b *BoardFlags) graphJSON() (string, error) {
	if b.Graph != "" {
		data, err := os.ReadFile(b.Graph)
		if err != nil {
			return "", err
		}

		return string(data), nil
	}

	if len(b.Pedal) == 0 {
		return "", errors.New("no pedals: pass --graph or at least one --pedal")
	}

	registry := effectchain.DefaultRegistry()
	for _, typ := range b.Pedal {
		if _, ok := registry.Lookup(typ); !ok {
			return "", fmt.Errorf("%w: %s", effectchain.ErrUnknownEffect, typ)
		}
	}

	return serialBoard(b.Pedal)
}

// load builds the chain for sampleRate and applies the --set values.
func (b *BoardFlags) load(sampleRate float64, log *logrus.Logger) (*effectchain.Chain, error) {
	if b.Block < 1 {
		return nil, fmt.Errorf("block size must be >= 1: %d", b.Block)
	}

	raw, err := b.graphJSON()
	if err != nil {
		return nil, err
	}

	chain := effectchain.New(
		effectchain.Context{SampleRate: sampleRate, MaxBlockSize: b.Block},
		effectchain.DefaultRegistry(),
		effectchain.WithLogger(log),
	)

	err = chain.LoadGraph(raw)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	if !chain.HasGraph() {
		return nil, errors.New("graph needs _input and _output nodes")
	}

	for key, v := range b.Set {
		node, name, ok := strings.Cut(key, ".")
		if !ok {
			return nil, fmt.Errorf("--set %s: want NODE.PARAM", key)
		}

		proc, ok := chain.Processor(node)
		if !ok {
			return nil, fmt.Errorf("--set %s: no pedal node %q", key, node)
		}

		if !proc.SetParameter(name, v) {
			return nil, fmt.Errorf("--set %s: %q has no parameter %q", key, node, name)
		}

		log.WithFields(logrus.Fields{"node": node, "param": name, "value": v}).Debug("parameter set")
	}

	return chain, nil
}

// tailSeconds is the longest tail of any pedal in the chain.
func tailSeconds(chain *effectchain.Chain) float64 {
	var tail float64

	for _, id := range chain.NodeIDs() {
		if proc, ok := chain.Processor(id); ok {
			tail = max(tail, proc.Info().TailSeconds)
		}
	}

	return tail
}

// renderClip runs samples through the chain block by block and returns the
// processed copy.
func renderClip(chain *effectchain.Chain, samples []float64, block int) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	for start := 0; start < len(out); start += block {
		chain.Process(out[start:min(start+block, len(out))])
	}

	return out
}
