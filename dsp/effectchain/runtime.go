package effectchain

import (
	"github.com/cwbudde/algo-pedals/dsp/fx"
	"github.com/cwbudde/algo-pedals/dsp/param"
)

// Runtime is the per-node processing and configuration contract.
type Runtime interface {
	Configure(ctx Context, params Params) error
	Process(block []float64)
}

// BypassHandler is implemented by runtimes that apply the node's bypass
// flag themselves. The chain skips bypassed nodes that do not.
type BypassHandler interface {
	HandlesBypass() bool
}

// Stateful is implemented by runtimes whose state can be captured in a
// chain snapshot.
type Stateful interface {
	MarshalState() []byte
	UnmarshalState(data []byte)
}

// ProcessorRuntime runs an fx.Processor as a mono chain node.
type ProcessorRuntime struct {
	proc fx.Processor

	ctx      Context
	prepared bool
	hold     [1][]float64
}

// NewProcessorRuntime wraps proc. It is prepared on the first Configure.
func NewProcessorRuntime(proc fx.Processor) *ProcessorRuntime {
	return &ProcessorRuntime{proc: proc}
}

// Processor returns the wrapped processor.
func (r *ProcessorRuntime) Processor() fx.Processor { return r.proc }

// Configure prepares the processor when the context changes and applies
// the node parameters. Names the processor does not know are ignored.
func (r *ProcessorRuntime) Configure(ctx Context, params Params) error {
	if !r.prepared || ctx != r.ctx {
		r.proc.Prepare(ctx.SampleRate, ctx.MaxBlockSize)
		r.ctx = ctx
		r.prepared = true
	}

	for name, v := range params.Values() {
		if name != param.BypassName {
			r.proc.SetParameter(name, v)
		}
	}

	if r.HandlesBypass() {
		bypass := 0.0
		if params.Bypassed {
			bypass = 1
		}

		r.proc.SetParameter(param.BypassName, bypass)
	}

	return nil
}

// Process implements Runtime.
func (r *ProcessorRuntime) Process(block []float64) {
	r.hold[0] = block
	r.proc.ProcessBlock(r.hold[:])
	r.hold[0] = nil
}

// HandlesBypass reports whether the processor has a bypass parameter.
func (r *ProcessorRuntime) HandlesBypass() bool {
	return r.proc.Info().HasBypass
}

// MarshalState implements Stateful.
func (r *ProcessorRuntime) MarshalState() []byte { return r.proc.MarshalState() }

// UnmarshalState implements Stateful.
func (r *ProcessorRuntime) UnmarshalState(data []byte) { r.proc.UnmarshalState(data) }
