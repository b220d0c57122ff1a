package domain

import (
	"github.com/shopspring/decimal"
)

// Regime identifies which calculator produced a result
type Regime string

const (
	RegimeCLT Regime = "clt"
	RegimePJ  Regime = "pj"
)

// LineKind tells whether a line adds to or subtracts from the gross amount
type LineKind string

const (
	KindAddition  LineKind = "addition"
	KindDeduction LineKind = "deduction"
)

// LineItem is one labelled amount in a breakdown
type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Kind   LineKind        `json:"kind"`
}

// CalculationResult is the monthly breakdown produced by the CLT and PJ
// calculators. Total = Gross - deductions + additions. Accruals are shown
// for information only and never enter Total.
type CalculationResult struct {
	Regime        Regime          `json:"regime"`
	Gross         decimal.Decimal `json:"gross"`
	Lines         []LineItem      `json:"deductions"`
	Total         decimal.Decimal `json:"total"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"`
	Accruals      []LineItem      `json:"accruals,omitempty"`

	// PJ only
	Annex  string          `json:"annex,omitempty"`
	FatorR decimal.Decimal `json:"fatorR"`
}

// SumDeductions adds up every deduction line
func (r CalculationResult) SumDeductions() decimal.Decimal {
	return r.sum(KindDeduction)
}

// SumAdditions adds up every addition line
func (r CalculationResult) SumAdditions() decimal.Decimal {
	return r.sum(KindAddition)
}

// Line returns the first line with the given label
func (r CalculationResult) Line(label string) (LineItem, bool) {
	for _, l := range r.Lines {
		if l.Label == label {
			return l, true
		}
	}
	return LineItem{}, false
}

// Accrual returns the first accrual with the given label
func (r CalculationResult) Accrual(label string) (LineItem, bool) {
	for _, l := range r.Accruals {
		if l.Label == label {
			return l, true
		}
	}
	return LineItem{}, false
}

func (r CalculationResult) sum(kind LineKind) decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		if l.Kind == kind {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// ChartShare splits a regime's gross into take-home and taxes, in percent
type ChartShare struct {
	NetPercent decimal.Decimal `json:"netPercent"`
	TaxPercent decimal.Decimal `json:"taxPercent"`
}

// ComparisonResult puts a CLT and a PJ breakdown side by side
type ComparisonResult struct {
	CLT                  CalculationResult `json:"clt"`
	PJ                   CalculationResult `json:"pj"`
	Difference           decimal.Decimal   `json:"difference"`
	PercentageDifference decimal.Decimal   `json:"percentageDifference"`
	CLTChart             ChartShare        `json:"cltChart"`
	PJChart              ChartShare        `json:"pjChart"`
}

// BreakEvenResult is the PJ revenue at which PJ take-home matches CLT
type BreakEvenResult struct {
	TargetNet  decimal.Decimal   `json:"targetNet"`
	Revenue    decimal.Decimal   `json:"revenue"`
	PJ         CalculationResult `json:"pj"`
	Iterations int               `json:"iterations"`
	Converged  bool              `json:"converged"`
}
