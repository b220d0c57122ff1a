package calculation

import (
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
)

// CLT line labels, in display order
const (
	LabelINSS          = "INSS"
	LabelIRRF          = "IRRF"
	LabelMeal          = "Vale-refeição"
	LabelTransport     = "Vale-transporte"
	LabelOtherBenefits = "Outros benefícios"
	LabelPLR           = "PLR"
	LabelHealth        = "Plano de saúde"
	LabelPLRTax        = "IRRF sobre PLR"
)

// CLT accrual labels
const (
	AccrualThirteenth  = "13º salário"
	AccrualVacation    = "Férias + 1/3"
	AccrualFGTS        = "FGTS"
	AccrualFGTSBalance = "Saldo FGTS estimado"
	AccrualFGTSPenalty = "Multa rescisória 40%"
)

var (
	twelve     = decimal.NewFromInt(12)
	fourThirds = decimal.NewFromInt(4).Div(decimal.NewFromInt(3))
)

// CalculateCLT computes the monthly take-home pay of a CLT employee.
//
// Taxes are computed unrounded from the gross in cents; the IRRF base uses
// the unrounded INSS. Only the running totals of deductions and additions
// are rounded, so net pay never falls as gross rises and Total still equals
// Gross - deductions + additions.
func (e *Engine) CalculateCLT(in domain.CLTInput) domain.CalculationResult {
	gross := RoundMoney(nonNegative(in.GrossSalary))

	inss := e.contributionINSS(gross)

	dependents := decimal.NewFromInt(int64(max(in.DependentsCount, 0)))
	irrfBase := gross.
		Sub(inss).
		Sub(dependents.Mul(e.Rules.DependentDeduction)).
		Sub(nonNegative(in.OtherCLTExpenses))
	irrfBase = nonNegative(irrfBase)
	irrf := nonNegative(progressiveTax(irrfBase, e.Rules.IRRF))

	e.log().Debugf("clt: gross=%s inss=%s irrf_base=%s irrf=%s",
		gross.StringFixed(2), inss.StringFixed(4), irrfBase.StringFixed(4), irrf.StringFixed(4))

	b := newBreakdown()
	b.deduct(LabelINSS, inss, true)
	b.deduct(LabelIRRF, irrf, true)
	b.add(LabelMeal, nonNegative(in.MealAllowance))
	b.add(LabelTransport, nonNegative(in.TransportAllowance))
	b.add(LabelOtherBenefits, nonNegative(in.OtherBenefits))

	plr := nonNegative(in.PLR)
	b.add(LabelPLR, plr)
	b.deduct(LabelHealth, nonNegative(in.HealthInsurance), false)
	if plr.IsPositive() {
		b.deduct(LabelPLRTax, nonNegative(progressiveTax(plr, e.Rules.PLR)), true)
	}

	result := b.result(domain.RegimeCLT, gross)
	result.Accruals = e.cltAccruals(gross, in)
	return result
}

// cltAccruals lists the benefits an employee accrues each month without
// receiving them in the paycheck
func (e *Engine) cltAccruals(gross decimal.Decimal, in domain.CLTInput) []domain.LineItem {
	if !gross.IsPositive() {
		return nil
	}
	accruals := []domain.LineItem{
		{Label: AccrualThirteenth, Amount: RoundMoney(gross.Div(twelve)), Kind: domain.KindAddition},
		{Label: AccrualVacation, Amount: RoundMoney(gross.Mul(fourThirds).Div(twelve)), Kind: domain.KindAddition},
	}
	if !in.IncludeFGTS {
		return accruals
	}

	deposit := gross.Mul(e.Rules.FGTSRate)
	accruals = append(accruals, domain.LineItem{Label: AccrualFGTS, Amount: RoundMoney(deposit), Kind: domain.KindAddition})
	if in.YearsAtCompany > 0 {
		balance := deposit.Mul(twelve).Mul(decimal.NewFromInt(int64(in.YearsAtCompany)))
		accruals = append(accruals,
			domain.LineItem{Label: AccrualFGTSBalance, Amount: RoundMoney(balance), Kind: domain.KindAddition},
			domain.LineItem{Label: AccrualFGTSPenalty, Amount: RoundMoney(balance.Mul(e.Rules.FGTSPenaltyRate)), Kind: domain.KindAddition},
		)
	}
	return accruals
}

// MonthlyAccrualValue sums the accruals that represent recurring monthly
// value (13th salary, vacation and FGTS deposit)
func MonthlyAccrualValue(r domain.CalculationResult) decimal.Decimal {
	total := decimal.Zero
	for _, label := range []string{AccrualThirteenth, AccrualVacation, AccrualFGTS} {
		if a, ok := r.Accrual(label); ok {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// breakdown collects line items in order. Each line is the step between
// consecutive rounded running sums, so rounding happens once per total.
type breakdown struct {
	lines    []domain.LineItem
	deducted decimal.Decimal
	added    decimal.Decimal
}

func newBreakdown() *breakdown {
	return &breakdown{}
}

// deduct appends a deduction; zero amounts are kept only when always is set
func (b *breakdown) deduct(label string, amount decimal.Decimal, always bool) {
	if amount.IsZero() && !always {
		return
	}
	before := RoundMoney(b.deducted)
	b.deducted = b.deducted.Add(amount)
	b.lines = append(b.lines, domain.LineItem{Label: label, Amount: RoundMoney(b.deducted).Sub(before), Kind: domain.KindDeduction})
}

func (b *breakdown) add(label string, amount decimal.Decimal) {
	if amount.IsZero() {
		return
	}
	before := RoundMoney(b.added)
	b.added = b.added.Add(amount)
	b.lines = append(b.lines, domain.LineItem{Label: label, Amount: RoundMoney(b.added).Sub(before), Kind: domain.KindAddition})
}

func (b *breakdown) result(regime domain.Regime, gross decimal.Decimal) domain.CalculationResult {
	r := domain.CalculationResult{
		Regime: regime,
		Gross:  RoundMoney(gross),
		Lines:  b.lines,
	}
	deductions := r.SumDeductions()
	r.Total = r.Gross.Sub(deductions).Add(r.SumAdditions())
	r.EffectiveRate = percentOf(deductions, r.Gross)
	return r
}
