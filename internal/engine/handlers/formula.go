package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/quicktools-app/quicktools/internal/engine"
)

// Formula evaluates a named formula selected by computeConfig.formulaKey.
// Each sub-formula validates its own domain independently.
//
// The legacy free-form expression mode is intentionally gone: a character
// whitelist is not a sound sandboxing boundary, so descriptors still
// carrying computeConfig.expression get a configuration error.
type Formula struct{}

func NewFormula() *Formula { return &Formula{} }

func (*Formula) EngineID() string { return "math.formula" }

func (*Formula) Compute(req *engine.Request) engine.Result {
	cfg := req.Config()
	key := cfgString(cfg, "formulaKey", "")
	if key == "" {
		if _, legacy := cfg["expression"]; legacy {
			return engine.Errorf("Expression formulas are no longer supported.")
		}
		return engine.Errorf("Invalid formula config.")
	}

	in := req.Inputs
	outputKey := cfgString(cfg, "outputKey", "result")
	decimals := cfgDecimals(cfg, 4)
	scalar := func(v float64) engine.Result {
		if !finite(v) {
			return engine.Errorf("Result out of range.")
		}
		return engine.FieldsResult(engine.F(outputKey, engine.Round(v, decimals)))
	}

	switch key {
	case "log10", "log2", "ln":
		x, ok := in.Num("x")
		if !ok || x <= 0 {
			return engine.Errorf("Enter x>0.")
		}
		switch key {
		case "log10":
			return scalar(math.Log10(x))
		case "log2":
			return scalar(math.Log2(x))
		default:
			return scalar(math.Log(x))
		}

	case "antilog10":
		x, ok := in.Num("x")
		if !ok {
			return engine.Errorf("Enter x.")
		}
		return scalar(math.Pow(10, x))

	case "sqrt":
		x, ok := in.Num("x")
		if !ok || x < 0 {
			return engine.Errorf("Enter x>=0.")
		}
		return scalar(math.Sqrt(x))

	case "pow":
		base, bok := in.Num("base")
		exp, eok := in.Num("exponent")
		if !bok || !eok {
			return engine.Errorf("Enter base and exponent.")
		}
		return scalar(math.Pow(base, exp))

	case "sma":
		return computeSMA(in, scalar)

	case "ema":
		return computeEMA(in, scalar)

	case "macd":
		return computeMACD(in)

	case "pnl":
		return computePnL(in)

	case "breakeven":
		return computeBreakeven(in)

	case "riskReward":
		return computeRiskReward(in)

	default:
		return engine.Errorf("Unknown formula: %s", key)
	}
}

// parseSeries reads a comma- or newline-separated number series.
func parseSeries(s string) ([]float64, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	var values []float64
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || !finite(v) {
			return nil, false
		}
		values = append(values, v)
	}
	return values, len(values) > 0
}

func computeSMA(in engine.Inputs, scalar func(float64) engine.Result) engine.Result {
	values, vok := parseSeries(in.Str("values"))
	period, pok := in.Num("period")
	n := int(period)
	if !vok || !pok || n <= 0 || n > len(values) {
		return engine.Errorf("Enter values and period (0 < period <= count).")
	}

	sum := 0.0
	for _, v := range values[len(values)-n:] {
		sum += v
	}
	return scalar(sum / float64(n))
}

// ema computes an exponential moving average seeded with the first value.
func ema(values []float64, period int) float64 {
	k := 2 / (float64(period) + 1)
	out := values[0]
	for _, v := range values[1:] {
		out = v*k + out*(1-k)
	}
	return out
}

func computeEMA(in engine.Inputs, scalar func(float64) engine.Result) engine.Result {
	values, vok := parseSeries(in.Str("values"))
	period, pok := in.Num("period")
	n := int(period)
	if !vok || !pok || n <= 0 || n > len(values) {
		return engine.Errorf("Enter values and period (0 < period <= count).")
	}
	return scalar(ema(values, n))
}

func computeMACD(in engine.Inputs) engine.Result {
	values, ok := parseSeries(in.Str("values"))
	if !ok || len(values) < 26 {
		return engine.Errorf("Enter at least 26 values.")
	}

	macd := ema(values, 12) - ema(values, 26)
	return engine.FieldsResult(engine.F("macd", engine.Round(macd, 4)))
}

func computePnL(in engine.Inputs) engine.Result {
	entry, eok := in.Num("entryPrice")
	exit, xok := in.Num("exitPrice")
	qty, qok := in.Num("quantity")
	if !eok || !xok || !qok || entry <= 0 || qty <= 0 {
		return engine.Errorf("Enter entryPrice>0, exitPrice, quantity>0.")
	}

	pnl := (exit - entry) * qty
	pct := pnl / (entry * qty) * 100
	return engine.FieldsResult(
		engine.F("pnl", engine.Round2(pnl)),
		engine.F("pnlPercent", engine.Round(pct, 2)),
	)
}

func computeBreakeven(in engine.Inputs) engine.Result {
	fixed, fok := in.Num("fixedCosts")
	price, pok := in.Num("pricePerUnit")
	variable, vok := in.Num("variableCostPerUnit")
	if !fok || !pok || !vok || fixed < 0 {
		return engine.Errorf("Enter fixedCosts, pricePerUnit, variableCostPerUnit.")
	}
	if price <= variable {
		return engine.Errorf("pricePerUnit must exceed variableCostPerUnit.")
	}

	units := fixed / (price - variable)
	return engine.FieldsResult(
		engine.F("breakevenUnits", engine.Round2(units)),
		engine.F("breakevenRevenue", engine.Round2(units*price)),
	)
}

func computeRiskReward(in engine.Inputs) engine.Result {
	entry, eok := in.Num("entry")
	stop, sok := in.Num("stopLoss")
	target, tok := in.Num("target")
	if !eok || !sok || !tok {
		return engine.Errorf("Enter entry, stopLoss, target.")
	}

	risk := math.Abs(entry - stop)
	if risk == 0 {
		return engine.Errorf("entry and stopLoss cannot be equal.")
	}
	reward := math.Abs(target - entry)
	return engine.FieldsResult(
		engine.F("risk", engine.Round2(risk)),
		engine.F("reward", engine.Round2(reward)),
		engine.F("ratio", engine.Round2(reward/risk)),
	)
}
