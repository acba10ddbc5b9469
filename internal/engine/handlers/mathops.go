package handlers

import (
	"github.com/quicktools-app/quicktools/internal/engine"
)

// PercentIncrease computes the change from oldValue to newValue.
type PercentIncrease struct{}

func NewPercentIncrease() *PercentIncrease { return &PercentIncrease{} }

func (*PercentIncrease) EngineID() string { return "math.percentIncrease" }

func (*PercentIncrease) Compute(req *engine.Request) engine.Result {
	o, ook := req.Inputs.Num("oldValue")
	n, nok := req.Inputs.Num("newValue")
	if !ook || !nok {
		return engine.Errorf("Enter oldValue and newValue.")
	}
	if o == 0 {
		return engine.Errorf("oldValue cannot be 0.")
	}

	delta := n - o
	pct := delta / o * 100
	return engine.FieldsResult(
		engine.F("delta", engine.Round(delta, 2)),
		engine.F("percent", engine.Round(pct, 2)),
	)
}

// PercentDecrease computes delta = old-new; the sign convention differs
// from PercentIncrease.
type PercentDecrease struct{}

func NewPercentDecrease() *PercentDecrease { return &PercentDecrease{} }

func (*PercentDecrease) EngineID() string { return "math.percentDecrease" }

func (*PercentDecrease) Compute(req *engine.Request) engine.Result {
	o, ook := req.Inputs.Num("oldValue")
	n, nok := req.Inputs.Num("newValue")
	if !ook || !nok {
		return engine.Errorf("Enter oldValue and newValue.")
	}
	if o == 0 {
		return engine.Errorf("oldValue cannot be 0.")
	}

	delta := o - n
	pct := delta / o * 100
	return engine.FieldsResult(
		engine.F("delta", engine.Round(delta, 2)),
		engine.F("percent", engine.Round(pct, 2)),
	)
}

// Discount computes a discounted price and the amount saved.
type Discount struct{}

func NewDiscount() *Discount { return &Discount{} }

func (*Discount) EngineID() string { return "math.discount" }

func (*Discount) Compute(req *engine.Request) engine.Result {
	price, pok := req.Inputs.Num("price")
	d, dok := req.Inputs.Num("discountPercent")
	if !pok || !dok {
		return engine.Errorf("Enter price and discountPercent.")
	}

	saved := price * d / 100
	return engine.FieldsResult(
		engine.F("finalPrice", engine.Round2(price-saved)),
		engine.F("saved", engine.Round2(saved)),
	)
}
