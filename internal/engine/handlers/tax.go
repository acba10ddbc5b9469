package handlers

import (
	"math"

	"github.com/quicktools-app/quicktools/internal/engine"
)

// slab is one progressive tax bracket: income up to upTo taxed at rate.
type slab struct {
	upTo float64 // math.Inf(1) for the top slab
	rate float64
}

var newRegimeSlabs = []slab{
	{300_000, 0},
	{600_000, 0.05},
	{900_000, 0.10},
	{1_200_000, 0.15},
	{1_500_000, 0.20},
	{math.Inf(1), 0.30},
}

var oldRegimeSlabs = []slab{
	{250_000, 0},
	{500_000, 0.05},
	{1_000_000, 0.20},
	{math.Inf(1), 0.30},
}

// slabTax applies a progressive bracket table to an income.
func slabTax(income float64, slabs []slab) float64 {
	tax := 0.0
	prev := 0.0
	for _, s := range slabs {
		if income <= prev {
			break
		}
		taxable := math.Min(income, s.upTo) - prev
		tax += taxable * s.rate
		prev = s.upTo
	}
	return tax
}

// IndiaTax computes income tax under a fixed Indian regime bracket table,
// rounded to whole rupees.
type IndiaTax struct {
	id    string
	slabs []slab
}

func NewIndiaTaxNewRegime() *IndiaTax {
	return &IndiaTax{id: "tax.india.newRegime", slabs: newRegimeSlabs}
}

func NewIndiaTaxOldRegime() *IndiaTax {
	return &IndiaTax{id: "tax.india.oldRegime", slabs: oldRegimeSlabs}
}

func (t *IndiaTax) EngineID() string { return t.id }

func (t *IndiaTax) Compute(req *engine.Request) engine.Result {
	income, ok := req.Inputs.Num("income")
	if !ok || income < 0 {
		return engine.Errorf("Enter income.")
	}

	tax := slabTax(income, t.slabs)
	return engine.FieldsResult(engine.F("tax", engine.Round(tax, 0)))
}
