package handlers

import (
	"github.com/quicktools-app/quicktools/internal/engine"
)

// LinearConverter multiplies the input by a computeConfig multiplier.
// Output key, multiplier and decimal count all come from the descriptor,
// so one handler serves any linear unit conversion the catalog declares.
type LinearConverter struct{}

func NewLinearConverter() *LinearConverter {
	return &LinearConverter{}
}

func (*LinearConverter) EngineID() string { return "convert.linear" }

func (*LinearConverter) Compute(req *engine.Request) engine.Result {
	v, ok := req.Inputs.Num("value")
	if !ok {
		return engine.Errorf("Enter value.")
	}

	cfg := req.Config()
	multiplier, ok := cfgNum(cfg, "multiplier")
	if !ok {
		// Catalog defect, not a usage defect
		return engine.Errorf("Invalid converter config.")
	}
	outputKey := cfgString(cfg, "outputKey", "result")
	decimals := cfgDecimals(cfg, 4)

	return engine.FieldsResult(engine.F(outputKey, engine.Round(v*multiplier, decimals)))
}

// AffineConverter computes value*multiplier+offset from computeConfig.
type AffineConverter struct{}

func NewAffineConverter() *AffineConverter {
	return &AffineConverter{}
}

func (*AffineConverter) EngineID() string { return "convert.affine" }

func (*AffineConverter) Compute(req *engine.Request) engine.Result {
	v, ok := req.Inputs.Num("value")
	if !ok {
		return engine.Errorf("Enter value.")
	}

	cfg := req.Config()
	multiplier, mok := cfgNum(cfg, "multiplier")
	offset := 0.0
	ook := true
	if _, present := cfg["offset"]; present {
		offset, ook = cfgNum(cfg, "offset")
	}
	if !mok || !ook {
		return engine.Errorf("Invalid converter config.")
	}
	outputKey := cfgString(cfg, "outputKey", "result")
	decimals := cfgDecimals(cfg, 4)

	return engine.FieldsResult(engine.F(outputKey, engine.Round(v*multiplier+offset, decimals)))
}

// unitConverter is a fixed-constant single-field converter.
// The constants are part of the public contract and must not drift.
type unitConverter struct {
	id        string
	outputKey string
	decimals  int
	apply     func(float64) float64
}

func (c *unitConverter) EngineID() string { return c.id }

func (c *unitConverter) Compute(req *engine.Request) engine.Result {
	v, ok := req.Inputs.Num("value")
	if !ok {
		return engine.Errorf("Enter value.")
	}
	return engine.FieldsResult(engine.F(c.outputKey, engine.Round(c.apply(v), c.decimals)))
}

// fixedUnitConverters returns the eight literal-constant converters.
func fixedUnitConverters() []engine.Handler {
	return []engine.Handler{
		&unitConverter{id: "convert.mToFt", outputKey: "feet", decimals: 4,
			apply: func(v float64) float64 { return v * 3.28084 }},
		&unitConverter{id: "convert.ftToM", outputKey: "meters", decimals: 4,
			apply: func(v float64) float64 { return v / 3.28084 }},
		&unitConverter{id: "convert.kgToLb", outputKey: "lb", decimals: 4,
			apply: func(v float64) float64 { return v * 2.20462 }},
		&unitConverter{id: "convert.lbToKg", outputKey: "kg", decimals: 4,
			apply: func(v float64) float64 { return v / 2.20462 }},
		&unitConverter{id: "convert.cToF", outputKey: "fahrenheit", decimals: 2,
			apply: func(v float64) float64 { return v*9/5 + 32 }},
		&unitConverter{id: "convert.fToC", outputKey: "celsius", decimals: 2,
			apply: func(v float64) float64 { return (v - 32) * 5 / 9 }},
		&unitConverter{id: "convert.mbToGb", outputKey: "gb", decimals: 6,
			apply: func(v float64) float64 { return v / 1024 }},
		&unitConverter{id: "convert.gbToMb", outputKey: "mb", decimals: 3,
			apply: func(v float64) float64 { return v * 1024 }},
	}
}
