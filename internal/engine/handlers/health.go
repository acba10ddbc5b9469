package handlers

import (
	"github.com/quicktools-app/quicktools/internal/engine"
)

// BMI computes body mass index and its category band.
// Band bounds are strict '<': edges are inclusive on the low side.
type BMI struct{}

func NewBMI() *BMI { return &BMI{} }

func (*BMI) EngineID() string { return "health.bmi" }

func (*BMI) Compute(req *engine.Request) engine.Result {
	w, wok := req.Inputs.Num("weightKg")
	hcm, hok := req.Inputs.Num("heightCm")
	if !wok || !hok || w <= 0 || hcm <= 0 {
		return engine.Errorf("Enter weightKg>0 and heightCm>0.")
	}

	h := hcm / 100
	bmi := w / (h * h)

	var category string
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 25:
		category = "Normal"
	case bmi < 30:
		category = "Overweight"
	default:
		category = "Obese"
	}

	return engine.FieldsResult(
		engine.F("bmi", engine.Round(bmi, 2)),
		engine.F("category", category),
	)
}

// OneRepMax estimates a one-rep max with the Epley and Brzycki formulas.
// Brzycki is undefined at reps=37; that is not special-cased.
type OneRepMax struct{}

func NewOneRepMax() *OneRepMax { return &OneRepMax{} }

func (*OneRepMax) EngineID() string { return "fitness.oneRepMax" }

func (*OneRepMax) Compute(req *engine.Request) engine.Result {
	w, wok := req.Inputs.Num("weightKg")
	r, rok := req.Inputs.Num("reps")
	if !wok || !rok || r <= 0 {
		return engine.Errorf("Enter weightKg and reps (>0).")
	}

	epley := w * (1 + r/30)
	brzycki := w * (36 / (37 - r))

	return engine.FieldsResult(
		engine.F("epley_1rm_kg", engine.Round2(epley)),
		engine.F("brzycki_1rm_kg", engine.Round2(brzycki)),
	)
}
