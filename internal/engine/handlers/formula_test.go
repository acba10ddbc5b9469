package handlers

import (
	"testing"

	"github.com/quicktools-app/quicktools/internal/engine"
)

func runFormula(key string, in engine.Inputs) engine.Result {
	return runCfg(NewFormula(), in, map[string]any{"formulaKey": key})
}

func TestFormula_Log10(t *testing.T) {
	res := runFormula("log10", engine.Inputs{"x": 1000.0})
	wantNum(t, res, "result", 3)
}

func TestFormula_LogDomain(t *testing.T) {
	for _, key := range []string{"log10", "log2", "ln"} {
		res := runFormula(key, engine.Inputs{"x": 0.0})
		wantError(t, res, "Enter x>0.")
	}
}

func TestFormula_Log2(t *testing.T) {
	res := runFormula("log2", engine.Inputs{"x": 8.0})
	wantNum(t, res, "result", 3)
}

func TestFormula_Antilog10(t *testing.T) {
	res := runFormula("antilog10", engine.Inputs{"x": 2.0})
	wantNum(t, res, "result", 100)
}

func TestFormula_Sqrt(t *testing.T) {
	res := runFormula("sqrt", engine.Inputs{"x": 16.0})
	wantNum(t, res, "result", 4)

	res = runFormula("sqrt", engine.Inputs{"x": -1.0})
	wantError(t, res, "Enter x>=0.")
}

func TestFormula_Pow(t *testing.T) {
	res := runFormula("pow", engine.Inputs{"base": 2.0, "exponent": 10.0})
	wantNum(t, res, "result", 1024)
}

func TestFormula_PowOverflow(t *testing.T) {
	res := runFormula("pow", engine.Inputs{"base": 10.0, "exponent": 400.0})
	wantError(t, res, "Result out of range.")
}

func TestFormula_SMA(t *testing.T) {
	res := runFormula("sma", engine.Inputs{"values": "1, 2, 3, 4", "period": 2.0})
	wantNum(t, res, "result", 3.5)
}

func TestFormula_SMA_NewlineSeparated(t *testing.T) {
	res := runFormula("sma", engine.Inputs{"values": "10\n20\n30", "period": 3.0})
	wantNum(t, res, "result", 20)
}

func TestFormula_SMA_PeriodTooLarge(t *testing.T) {
	res := runFormula("sma", engine.Inputs{"values": "1,2", "period": 5.0})
	wantError(t, res, "Enter values and period (0 < period <= count).")
}

func TestFormula_EMA(t *testing.T) {
	// Seeded with the first value: 1, then 2*(2/3)+1*(1/3)=5/3,
	// then 3*(2/3)+(5/3)*(1/3)=23/9.
	res := runFormula("ema", engine.Inputs{"values": "1,2,3", "period": 2.0})
	wantNum(t, res, "result", 2.5556)
}

func TestFormula_MACD_RequiresHistory(t *testing.T) {
	res := runFormula("macd", engine.Inputs{"values": "1,2,3"})
	wantError(t, res, "Enter at least 26 values.")
}

func TestFormula_PnL(t *testing.T) {
	res := runFormula("pnl", engine.Inputs{"entryPrice": 100.0, "exitPrice": 120.0, "quantity": 5.0})
	wantNum(t, res, "pnl", 100)
	wantNum(t, res, "pnlPercent", 20)
}

func TestFormula_PnL_Loss(t *testing.T) {
	res := runFormula("pnl", engine.Inputs{"entryPrice": 100.0, "exitPrice": 90.0, "quantity": 2.0})
	wantNum(t, res, "pnl", -20)
	wantNum(t, res, "pnlPercent", -10)
}

func TestFormula_Breakeven(t *testing.T) {
	res := runFormula("breakeven", engine.Inputs{
		"fixedCosts":          1000.0,
		"pricePerUnit":        50.0,
		"variableCostPerUnit": 30.0,
	})
	wantNum(t, res, "breakevenUnits", 50)
	wantNum(t, res, "breakevenRevenue", 2500)
}

func TestFormula_Breakeven_NoMargin(t *testing.T) {
	res := runFormula("breakeven", engine.Inputs{
		"fixedCosts":          1000.0,
		"pricePerUnit":        30.0,
		"variableCostPerUnit": 30.0,
	})
	wantError(t, res, "pricePerUnit must exceed variableCostPerUnit.")
}

func TestFormula_RiskReward(t *testing.T) {
	res := runFormula("riskReward", engine.Inputs{"entry": 100.0, "stopLoss": 90.0, "target": 130.0})
	wantNum(t, res, "risk", 10)
	wantNum(t, res, "reward", 30)
	wantNum(t, res, "ratio", 3)
}

func TestFormula_RiskReward_ZeroRisk(t *testing.T) {
	res := runFormula("riskReward", engine.Inputs{"entry": 100.0, "stopLoss": 100.0, "target": 130.0})
	wantError(t, res, "entry and stopLoss cannot be equal.")
}

func TestFormula_UnknownKey(t *testing.T) {
	res := runFormula("fibonacci", engine.Inputs{})
	wantError(t, res, "Unknown formula: fibonacci")
}

func TestFormula_LegacyExpressionRejected(t *testing.T) {
	res := runCfg(NewFormula(), engine.Inputs{"x": 1.0}, map[string]any{
		"expression": "x*2",
	})
	wantError(t, res, "Expression formulas are no longer supported.")
}

func TestFormula_MissingConfig(t *testing.T) {
	res := runCfg(NewFormula(), engine.Inputs{}, map[string]any{})
	wantError(t, res, "Invalid formula config.")
}
