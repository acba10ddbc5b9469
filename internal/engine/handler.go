package engine

import "github.com/quicktools-app/quicktools/internal/registry"

// Handler is the interface every formula engine must implement.
// Compute must be a pure function of the request (plus the injected Rand)
// and must convert every failure into an error result rather than panic.
type Handler interface {
	// EngineID returns the exact dispatch key this handler serves.
	EngineID() string

	// Compute runs the formula against validated raw inputs.
	Compute(req *Request) Result
}

// Request carries everything a formula needs for one evaluation.
type Request struct {
	Tool   *registry.ToolDescriptor
	Inputs Inputs
	Rand   Rand
}

// Config returns the descriptor's computeConfig, never nil.
func (r *Request) Config() map[string]any {
	if r.Tool == nil || r.Tool.ComputeConfig == nil {
		return map[string]any{}
	}
	return r.Tool.ComputeConfig
}
