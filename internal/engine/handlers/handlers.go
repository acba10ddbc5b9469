// Package handlers holds one formula engine per catalog engine id.
// Every handler is a pure function of its request; randomness comes in
// through the injected generator on the request.
package handlers

import (
	"github.com/quicktools-app/quicktools/internal/engine"
)

// All returns every formula handler, ready for engine registration.
func All() []engine.Handler {
	hs := []engine.Handler{
		NewOneRepMax(),
		NewLinearConverter(),
		NewAffineConverter(),
		NewEMI(),
		NewBMI(),
		NewCompoundInterest(),
		NewSimpleInterest(),
		NewCAGR(),
		NewPercentIncrease(),
		NewPercentDecrease(),
		NewDiscount(),
		NewUUID(),
		NewPassword(),
		NewJSONFormat(),
		NewDateDiff(),
		NewDateAge(),
		NewDateAddDays(),
		NewDateWorkdays(),
		NewDateNextBirthday(),
		NewDateISOWeek(),
		NewRandomNumber(),
		NewTeamSplit(),
		NewSIP(),
		NewIndiaTaxNewRegime(),
		NewIndiaTaxOldRegime(),
		NewLoanInterest(),
		NewFormula(),
	}
	return append(hs, fixedUnitConverters()...)
}
