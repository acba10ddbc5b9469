package handlers

import (
	"math"
	"testing"

	"github.com/quicktools-app/quicktools/internal/engine"
	"github.com/quicktools-app/quicktools/internal/registry"
)

// run executes a handler with empty computeConfig and a fixed-seed generator.
func run(h engine.Handler, in engine.Inputs) engine.Result {
	return runCfg(h, in, nil)
}

func runCfg(h engine.Handler, in engine.Inputs, cfg map[string]any) engine.Result {
	return h.Compute(&engine.Request{
		Tool:   &registry.ToolDescriptor{Slug: "test", EngineID: h.EngineID(), ComputeConfig: cfg},
		Inputs: in,
		Rand:   engine.SeededRand(42),
	})
}

func fieldValue(t *testing.T, res engine.Result, key string) any {
	t.Helper()
	if res.Kind != engine.KindFields {
		t.Fatalf("expected fields result, got kind %v (err=%q note=%q)", res.Kind, res.Err, res.Note)
	}
	for _, f := range res.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	t.Fatalf("field %q not found in %+v", key, res.Fields)
	return nil
}

func fieldNum(t *testing.T, res engine.Result, key string) float64 {
	t.Helper()
	switch v := fieldValue(t, res, key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		t.Fatalf("field %q is not numeric: %T", key, v)
		return 0
	}
}

func wantNum(t *testing.T, res engine.Result, key string, want float64) {
	t.Helper()
	got := fieldNum(t, res, key)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("field %q: expected %v, got %v", key, want, got)
	}
}

func wantNear(t *testing.T, res engine.Result, key string, want, tol float64) {
	t.Helper()
	got := fieldNum(t, res, key)
	if math.Abs(got-want) > tol {
		t.Fatalf("field %q: expected %v±%v, got %v", key, want, tol, got)
	}
}

func wantError(t *testing.T, res engine.Result, msg string) {
	t.Helper()
	if res.Kind != engine.KindError {
		t.Fatalf("expected error result, got kind %v", res.Kind)
	}
	if res.Err != msg {
		t.Fatalf("expected error %q, got %q", msg, res.Err)
	}
}
