package handlers

import (
	"math"

	"github.com/quicktools-app/quicktools/internal/engine"
)

// EMI computes the equated monthly installment for a loan.
type EMI struct{}

func NewEMI() *EMI { return &EMI{} }

func (*EMI) EngineID() string { return "finance.emi" }

func (*EMI) Compute(req *engine.Request) engine.Result {
	p, pok := req.Inputs.Num("principal")
	annual, aok := req.Inputs.Num("annualRatePercent")
	n, nok := req.Inputs.Num("tenureMonths")
	if !pok || !aok || !nok || p <= 0 || n <= 0 {
		return engine.Errorf("Enter principal>0, annualRatePercent, tenureMonths>0.")
	}

	r := annual / 100 / 12
	var emi float64
	if r == 0 {
		// Zero-rate loans degenerate to straight division
		emi = p / n
	} else {
		emi = p * r * math.Pow(1+r, n) / (math.Pow(1+r, n) - 1)
	}
	total := emi * n
	interest := total - p

	return engine.FieldsResult(
		engine.F("emi", engine.Round2(emi)),
		engine.F("totalPaid", engine.Round2(total)),
		engine.F("totalInterest", engine.Round2(interest)),
	)
}

// CompoundInterest computes monthly-compounded future value.
type CompoundInterest struct{}

func NewCompoundInterest() *CompoundInterest { return &CompoundInterest{} }

func (*CompoundInterest) EngineID() string { return "finance.compound" }

func (*CompoundInterest) Compute(req *engine.Request) engine.Result {
	p, pok := req.Inputs.Num("principal")
	annual, aok := req.Inputs.Num("annualRatePercent")
	years, yok := req.Inputs.Num("years")
	if !pok || !aok || !yok || p < 0 || years < 0 {
		return engine.Errorf("Enter principal, annualRatePercent, years.")
	}

	r := annual / 100
	fv := p * math.Pow(1+r/12, 12*years)
	return engine.FieldsResult(engine.F("futureValue", engine.Round2(fv)))
}

// SimpleInterest computes simple interest; only presence is checked, any
// sign is permitted.
type SimpleInterest struct{}

func NewSimpleInterest() *SimpleInterest { return &SimpleInterest{} }

func (*SimpleInterest) EngineID() string { return "finance.simple" }

func (*SimpleInterest) Compute(req *engine.Request) engine.Result {
	p, pok := req.Inputs.Num("principal")
	annual, aok := req.Inputs.Num("annualRatePercent")
	years, yok := req.Inputs.Num("years")
	if !pok || !aok || !yok {
		return engine.Errorf("Enter principal, annualRatePercent, years.")
	}

	interest := p * (annual / 100) * years
	return engine.FieldsResult(
		engine.F("interest", engine.Round2(interest)),
		engine.F("total", engine.Round2(p+interest)),
	)
}

// CAGR computes the compound annual growth rate.
type CAGR struct{}

func NewCAGR() *CAGR { return &CAGR{} }

func (*CAGR) EngineID() string { return "finance.cagr" }

func (*CAGR) Compute(req *engine.Request) engine.Result {
	start, sok := req.Inputs.Num("start")
	end, eok := req.Inputs.Num("end")
	years, yok := req.Inputs.Num("years")
	if !sok || !eok || !yok || start <= 0 || years <= 0 {
		return engine.Errorf("Enter start>0, end, years>0.")
	}

	cagr := (math.Pow(end/start, 1/years) - 1) * 100
	return engine.FieldsResult(engine.F("cagrPercent", engine.Round(cagr, 2)))
}

// SIP computes the annuity-due future value of a monthly investment plan.
type SIP struct{}

func NewSIP() *SIP { return &SIP{} }

func (*SIP) EngineID() string { return "finance.sip" }

func (*SIP) Compute(req *engine.Request) engine.Result {
	monthly, mok := req.Inputs.Num("monthlyInvestment")
	annual, aok := req.Inputs.Num("annualRatePercent")
	years, yok := req.Inputs.Num("years")
	if !mok || !aok || !yok {
		return engine.Errorf("Enter monthlyInvestment, annualRatePercent, years.")
	}

	r := annual / 100 / 12
	n := years * 12

	var fv float64
	if r == 0 {
		fv = monthly * n
	} else {
		fv = monthly * ((math.Pow(1+r, n) - 1) / r) * (1 + r)
	}
	invested := monthly * n

	return engine.FieldsResult(
		engine.F("totalInvested", engine.Round2(invested)),
		engine.F("futureValue", engine.Round2(fv)),
		engine.F("wealthGained", engine.Round2(fv-invested)),
	)
}

// LoanInterest computes simple loan interest and total payment.
// All three inputs are rejected when zero, even though zero could be
// legitimate — a documented quirk of this tool's contract.
type LoanInterest struct{}

func NewLoanInterest() *LoanInterest { return &LoanInterest{} }

func (*LoanInterest) EngineID() string { return "finance.loanInterest" }

func (*LoanInterest) Compute(req *engine.Request) engine.Result {
	p, pok := req.Inputs.Num("principal")
	annual, aok := req.Inputs.Num("annualRatePercent")
	years, yok := req.Inputs.Num("years")
	if !pok || !aok || !yok || p == 0 || annual == 0 || years == 0 {
		return engine.Errorf("Enter principal, annualRatePercent, years.")
	}

	interest := p * annual * years / 100
	return engine.FieldsResult(
		engine.F("totalInterest", engine.Round2(interest)),
		engine.F("totalPayment", engine.Round2(p+interest)),
	)
}
