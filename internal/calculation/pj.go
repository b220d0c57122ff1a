package calculation

import (
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
)

// PJ line labels
const (
	LabelSimples    = "Simples Nacional"
	LabelINSSOwner  = "INSS pró-labore"
	LabelAccounting = "Contabilidade"
)

// CalculatePJ computes the monthly take-home of a company under Simples
// Nacional. Revenue <= 0 yields a zeroed result.
func (e *Engine) CalculatePJ(in domain.PJInput) domain.CalculationResult {
	revenue := in.MonthlyRevenue
	if revenue.LessThanOrEqual(decimal.Zero) {
		return domain.CalculationResult{
			Regime:        domain.RegimePJ,
			Gross:         decimal.Zero,
			Total:         decimal.Zero,
			EffectiveRate: decimal.Zero,
		}
	}
	proLabore := nonNegative(in.ProLabore)

	fatorR := FatorR(proLabore, revenue)
	annex := e.resolveAnnex(in, fatorR)

	rbt12 := in.Revenue12Months
	if !rbt12.IsPositive() {
		rbt12 = revenue.Mul(twelve)
	}
	rate, issShare := effectiveSimplesRate(rbt12, annex)
	if in.IsExportService {
		rate = rate.Mul(decimal.NewFromInt(1).Sub(issShare))
	}
	simplesTax := revenue.Mul(rate)
	inss := e.contributionINSS(proLabore)

	e.log().Debugf("pj: revenue=%s rbt12=%s fator_r=%s annex=%s rate=%s export=%t",
		revenue.StringFixed(2), rbt12.StringFixed(2), fatorR.StringFixed(4), annex.Name, rate.StringFixed(6), in.IsExportService)

	b := newBreakdown()
	b.deduct(LabelSimples+" ("+annex.Name+")", simplesTax, true)
	b.deduct(LabelINSSOwner, inss, false)
	b.deduct(LabelAccounting, nonNegative(in.AccountingFee), false)

	result := b.result(domain.RegimePJ, revenue)
	result.Annex = annex.Name
	result.FatorR = fatorR.Round(4)
	return result
}

// FatorR is the payroll-to-revenue ratio over twelve months. A non-positive
// revenue gives zero.
func FatorR(proLabore, monthlyRevenue decimal.Decimal) decimal.Decimal {
	annualRevenue := monthlyRevenue.Mul(twelve)
	if !annualRevenue.IsPositive() {
		return decimal.Zero
	}
	return proLabore.Mul(twelve).Div(annualRevenue)
}

// resolveAnnex picks the Simples table once per calculation. An explicit
// selection always wins over Fator R.
func (e *Engine) resolveAnnex(in domain.PJInput, fatorR decimal.Decimal) domain.SimplesAnnex {
	switch in.Annex {
	case domain.AnnexIII:
		return e.Rules.AnnexIII
	case domain.AnnexV:
		return e.Rules.AnnexV
	case domain.AnnexManual:
		if in.ManualAnnex != nil && len(in.ManualAnnex.Brackets) > 0 {
			return *in.ManualAnnex
		}
		e.log().Warnf("pj: manual annex selected without a table, falling back to Fator R")
	}
	if fatorR.GreaterThanOrEqual(e.Rules.FatorRThreshold) {
		return e.Rules.AnnexIII
	}
	return e.Rules.AnnexV
}

// effectiveSimplesRate returns the effective rate for trailing revenue rbt12
// and the ISS share of the bracket it falls in
func effectiveSimplesRate(rbt12 decimal.Decimal, annex domain.SimplesAnnex) (decimal.Decimal, decimal.Decimal) {
	if !rbt12.IsPositive() || len(annex.Brackets) == 0 {
		return decimal.Zero, decimal.Zero
	}
	brackets := annex.TaxBrackets()
	i := FindBracket(rbt12, brackets)
	rate := nonNegative(progressiveTax(rbt12, brackets)).Div(rbt12)
	return rate, annex.Brackets[i].ISSShare
}
