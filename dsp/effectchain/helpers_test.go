package effectchain

import (
	"encoding/json"
	"testing"
)

const testSampleRate = 44100.0

func testCtx() Context {
	return Context{SampleRate: testSampleRate, MaxBlockSize: 256}
}

// stubRuntime records how the chain drives it.
type stubRuntime struct {
	configureErr   error
	configureCalls int
	processCalls   int
	lastCtx        Context
	lastParams     Params
}

func (s *stubRuntime) Configure(ctx Context, params Params) error {
	s.configureCalls++
	s.lastCtx = ctx
	s.lastParams = params

	return s.configureErr
}

func (s *stubRuntime) Process(_ []float64) {
	s.processCalls++
}

// gainRuntime multiplies every sample by a fixed gain.
type gainRuntime struct {
	gain float64
}

func (g *gainRuntime) Configure(_ Context, params Params) error {
	g.gain = params.Or("gain", 1.0)

	return nil
}

func (g *gainRuntime) Process(block []float64) {
	for i := range block {
		block[i] *= g.gain
	}
}

// addRuntime adds a constant to every sample.
type addRuntime struct {
	value float64
}

func (a *addRuntime) Configure(_ Context, params Params) error {
	a.value = params.Or("value", 0)

	return nil
}

func (a *addRuntime) Process(block []float64) {
	for i := range block {
		block[i] += a.value
	}
}

// latchRuntime negates its input unless its own bypass flag is set, and
// keeps its sign as snapshot state.
type latchRuntime struct {
	bypassed bool
	sign     byte
}

func (l *latchRuntime) Configure(_ Context, params Params) error {
	l.bypassed = params.Bypassed

	return nil
}

func (l *latchRuntime) Process(block []float64) {
	if l.bypassed {
		return
	}

	for i := range block {
		block[i] = -block[i]
	}
}

func (l *latchRuntime) HandlesBypass() bool { return true }

func (l *latchRuntime) MarshalState() []byte { return []byte{l.sign} }

func (l *latchRuntime) UnmarshalState(data []byte) {
	if len(data) == 1 {
		l.sign = data[0]
	}
}

// testRegistry creates a registry with simple test effects.
func testRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("stub", func(_ Context) (Runtime, error) {
		return &stubRuntime{}, nil
	})
	r.MustRegister("gain", func(_ Context) (Runtime, error) {
		return &gainRuntime{gain: 1.0}, nil
	})
	r.MustRegister("add", func(_ Context) (Runtime, error) {
		return &addRuntime{}, nil
	})
	r.MustRegister("latch", func(_ Context) (Runtime, error) {
		return &latchRuntime{}, nil
	})

	return r
}

// graphNode and graphConnection mirror the graph wire format.
type graphNode struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Bypassed bool           `json:"bypassed,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

type graphConnection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// buildGraphJSON constructs a JSON graph for tests.
func buildGraphJSON(nodes []graphNode, connections []graphConnection) string {
	data, err := json.Marshal(map[string]any{"nodes": nodes, "connections": connections})
	if err != nil {
		panic(err)
	}

	return string(data)
}

// serialGraph wires _input through nodes in order to _output.
func serialGraph(nodes ...graphNode) string {
	all := make([]graphNode, 0, len(nodes)+2)
	all = append(all, graphNode{ID: InputNodeID, Type: InputNodeID})
	all = append(all, nodes...)
	all = append(all, graphNode{ID: OutputNodeID, Type: OutputNodeID})

	conns := make([]graphConnection, 0, len(all)-1)
	for i := 1; i < len(all); i++ {
		conns = append(conns, graphConnection{From: all[i-1].ID, To: all[i].ID})
	}

	return buildGraphJSON(all, conns)
}

func requireBlock(t *testing.T, got, want []float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("len = %d, want %d", len(got), len(want))
		return
	}

	for i := range want {
		d := got[i] - want[i]
		if d > 1e-10 || d < -1e-10 {
			t.Errorf("block[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
