package engine

import (
	"testing"

	"github.com/quicktools-app/quicktools/internal/registry"
	"go.uber.org/zap"
)

// echoHandler returns a fixed fields result.
type echoHandler struct{}

func (echoHandler) EngineID() string { return "test.echo" }

func (echoHandler) Compute(_ *Request) Result {
	return FieldsResult(F("value", 1))
}

// panicHandler always panics; used to verify containment.
type panicHandler struct{}

func (panicHandler) EngineID() string { return "test.panic" }

func (panicHandler) Compute(_ *Request) Result {
	panic("boom")
}

func newTestEngine(t *testing.T, hs ...Handler) *Engine {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	eng, err := New(hs, SeededRand(1), logger)
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestCompute_UnknownEngineIsNote(t *testing.T) {
	eng := newTestEngine(t, echoHandler{})

	res := eng.Compute(&registry.ToolDescriptor{Slug: "x", EngineID: "foo.bar"}, Inputs{})
	if res.Kind != KindNote {
		t.Fatalf("expected note, got kind %v", res.Kind)
	}
	if res.Note != "Engine not implemented: foo.bar" {
		t.Fatalf("unexpected note: %q", res.Note)
	}
}

func TestCompute_Dispatch(t *testing.T) {
	eng := newTestEngine(t, echoHandler{})

	res := eng.Compute(&registry.ToolDescriptor{Slug: "x", EngineID: "test.echo"}, Inputs{})
	if res.Kind != KindFields {
		t.Fatalf("expected fields, got kind %v", res.Kind)
	}
	if len(res.Fields) != 1 || res.Fields[0].Key != "value" {
		t.Fatalf("unexpected fields: %+v", res.Fields)
	}
}

func TestCompute_PanicBecomesError(t *testing.T) {
	eng := newTestEngine(t, panicHandler{})

	res := eng.Compute(&registry.ToolDescriptor{Slug: "x", EngineID: "test.panic"}, Inputs{})
	if res.Kind != KindError {
		t.Fatalf("expected error result, got kind %v", res.Kind)
	}
}

func TestNew_DuplicateHandler(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	_, err := New([]Handler{echoHandler{}, echoHandler{}}, SeededRand(1), logger)
	if err == nil {
		t.Fatal("expected duplicate handler error")
	}
}

func TestPrimaryField_PreferenceOrder(t *testing.T) {
	res := FieldsResult(F("totalPaid", 1.0), F("emi", 2.0))
	if got := PrimaryField(res); got != "emi" {
		t.Fatalf("expected emi, got %q", got)
	}
}

func TestPrimaryField_SoleField(t *testing.T) {
	res := FieldsResult(F("workdaysCount", 5))
	if got := PrimaryField(res); got != "workdaysCount" {
		t.Fatalf("expected sole field fallback, got %q", got)
	}
}

func TestPrimaryField_NonFields(t *testing.T) {
	if got := PrimaryField(Errorf("nope")); got != "" {
		t.Fatalf("expected empty primary for error, got %q", got)
	}
	if got := PrimaryField(TextResult("x")); got != "" {
		t.Fatalf("expected empty primary for text, got %q", got)
	}
}
