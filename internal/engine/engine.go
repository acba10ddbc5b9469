package engine

import (
	"fmt"

	"github.com/quicktools-app/quicktools/internal/registry"
	"go.uber.org/zap"
)

// Engine dispatches computations to the handler registered for a
// descriptor's engine id. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	handlers map[string]Handler
	rng      Rand
	logger   *zap.Logger
}

// New creates an engine with the given handlers and randomness source.
// Registering two handlers for the same engine id is a programming error.
func New(handlers []Handler, rng Rand, logger *zap.Logger) (*Engine, error) {
	table := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		if _, dup := table[h.EngineID()]; dup {
			return nil, fmt.Errorf("New: duplicate handler for engine %q", h.EngineID())
		}
		table[h.EngineID()] = h
	}
	return &Engine{handlers: table, rng: rng, logger: logger}, nil
}

// Compute selects the handler for the descriptor's engine id and runs it.
// Unknown engine ids yield an informational note, never a failure: the
// catalog is allowed to evolve ahead of the dispatcher. A handler panic is
// contained here and converted to an error result.
func (e *Engine) Compute(tool *registry.ToolDescriptor, in Inputs) (res Result) {
	h, ok := e.handlers[tool.EngineID]
	if !ok {
		return Notef("Engine not implemented: %s", tool.EngineID)
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("handler panic",
				zap.String("engine_id", tool.EngineID),
				zap.String("slug", tool.Slug),
				zap.Any("panic", r),
			)
			res = Errorf("Computation failed.")
		}
	}()

	return h.Compute(&Request{Tool: tool, Inputs: in, Rand: e.rng})
}

// Known reports whether an engine id has a registered handler.
func (e *Engine) Known(engineID string) bool {
	_, ok := e.handlers[engineID]
	return ok
}
