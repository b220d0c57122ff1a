package transform

import (
	"fmt"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// setAmount stores d in f the way a user would have typed it
func setAmount(f *form.NumericField, d decimal.Decimal) {
	*f = form.NewNumericField(d.Round(2).String())
}

// scale multiplies d by 1 + percent/100
func scale(d, percent decimal.Decimal) decimal.Decimal {
	return d.Mul(one.Add(percent.Div(hundred)))
}

func validatePercent(name string, percent decimal.Decimal) error {
	if percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(name, "validate", "percent must be greater than -100", nil)
	}
	return nil
}

// AdjustSalary changes the CLT gross salary by Percent
type AdjustSalary struct {
	Percent decimal.Decimal
}

func (t *AdjustSalary) Name() string { return "adjust_salary" }

func (t *AdjustSalary) Description() string {
	return fmt.Sprintf("Salário bruto %s%s%%", sign(t.Percent), t.Percent.String())
}

func (t *AdjustSalary) Validate(base form.Form) error {
	if !base.GrossSalary.IsSet() {
		return NewTransformError(t.Name(), "validate", "gross salary is not set", nil)
	}
	return validatePercent(t.Name(), t.Percent)
}

func (t *AdjustSalary) Apply(base form.Form) (form.Form, error) {
	out := base
	setAmount(&out.GrossSalary, scale(base.GrossSalary.Value, t.Percent))
	return out, nil
}

// AdjustRevenue changes the PJ monthly revenue, and the 12-month revenue
// when given, by Percent
type AdjustRevenue struct {
	Percent decimal.Decimal
}

func (t *AdjustRevenue) Name() string { return "adjust_revenue" }

func (t *AdjustRevenue) Description() string {
	return fmt.Sprintf("Faturamento %s%s%%", sign(t.Percent), t.Percent.String())
}

func (t *AdjustRevenue) Validate(base form.Form) error {
	if !base.MonthlyRevenue.IsSet() {
		return NewTransformError(t.Name(), "validate", "monthly revenue is not set", nil)
	}
	return validatePercent(t.Name(), t.Percent)
}

func (t *AdjustRevenue) Apply(base form.Form) (form.Form, error) {
	out := base
	setAmount(&out.MonthlyRevenue, scale(base.MonthlyRevenue.Value, t.Percent))
	if base.Revenue12Months.IsSet() {
		setAmount(&out.Revenue12Months, scale(base.Revenue12Months.Value, t.Percent))
	}
	return out, nil
}

// SetRevenue replaces the PJ monthly revenue
type SetRevenue struct {
	Amount decimal.Decimal
}

func (t *SetRevenue) Name() string { return "set_revenue" }

func (t *SetRevenue) Description() string {
	return "Faturamento de R$ " + t.Amount.StringFixed(2)
}

func (t *SetRevenue) Validate(form.Form) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount must not be negative", nil)
	}
	return nil
}

func (t *SetRevenue) Apply(base form.Form) (form.Form, error) {
	out := base
	setAmount(&out.MonthlyRevenue, t.Amount)
	return out, nil
}

// OptimizeProLabore raises the pro-labore to Threshold times the revenue,
// rounded up to the cent, so Fator R selects Anexo III
type OptimizeProLabore struct {
	Threshold decimal.Decimal
}

func (t *OptimizeProLabore) Name() string { return "optimize_pro_labore" }

func (t *OptimizeProLabore) Description() string {
	return "Pró-labore de " + t.Threshold.Mul(hundred).String() + "% do faturamento (Anexo III)"
}

func (t *OptimizeProLabore) Validate(base form.Form) error {
	if !base.MonthlyRevenue.Value.IsPositive() {
		return NewTransformError(t.Name(), "validate", "monthly revenue must be positive", nil)
	}
	if !t.Threshold.IsPositive() || t.Threshold.GreaterThan(one) {
		return NewTransformError(t.Name(), "validate", "threshold must be in (0, 1]", nil)
	}
	return nil
}

func (t *OptimizeProLabore) Apply(base form.Form) (form.Form, error) {
	out := base
	proLabore := base.MonthlyRevenue.Value.Mul(t.Threshold).Mul(hundred).Ceil().Div(hundred)
	setAmount(&out.ProLabore, proLabore)
	out.Annex = domain.AnnexAuto
	return out, nil
}

// SetExport toggles the exported-service flag
type SetExport struct {
	Enabled bool
}

func (t *SetExport) Name() string { return "set_export" }

func (t *SetExport) Description() string {
	if t.Enabled {
		return "Serviço exportado (sem ISS)"
	}
	return "Serviço prestado no Brasil"
}

func (t *SetExport) Validate(form.Form) error { return nil }

func (t *SetExport) Apply(base form.Form) (form.Form, error) {
	out := base
	out.IsExportService = t.Enabled
	return out, nil
}

// SetAnnex forces a Simples Nacional annex or returns the choice to Fator R
type SetAnnex struct {
	Annex domain.AnnexSelection
}

func (t *SetAnnex) Name() string { return "set_annex" }

func (t *SetAnnex) Description() string {
	switch t.Annex {
	case domain.AnnexIII:
		return "Anexo III"
	case domain.AnnexV:
		return "Anexo V"
	default:
		return "Anexo pelo Fator R"
	}
}

func (t *SetAnnex) Validate(form.Form) error {
	if t.Annex == domain.AnnexManual {
		return NewTransformError(t.Name(), "validate", "a manual annex cannot be set by a transform", nil)
	}
	return nil
}

func (t *SetAnnex) Apply(base form.Form) (form.Form, error) {
	out := base
	out.Annex = t.Annex
	return out, nil
}

// AddDependents adds Count dependents for the IRRF deduction. Count may be
// negative but the result may not.
type AddDependents struct {
	Count int
}

func (t *AddDependents) Name() string { return "add_dependents" }

func (t *AddDependents) Description() string {
	return fmt.Sprintf("%s%d dependente(s)", sign(decimal.NewFromInt(int64(t.Count))), t.Count)
}

func (t *AddDependents) Validate(base form.Form) error {
	if base.DependentsCount.Value.IntPart()+int64(t.Count) < 0 {
		return NewTransformError(t.Name(), "validate", "dependents count would be negative", nil)
	}
	return nil
}

func (t *AddDependents) Apply(base form.Form) (form.Form, error) {
	out := base
	total := base.DependentsCount.Value.IntPart() + int64(t.Count)
	setAmount(&out.DependentsCount, decimal.NewFromInt(total))
	return out, nil
}

// SetFGTS chooses whether FGTS counts in the CLT take-home
type SetFGTS struct {
	Include bool
}

func (t *SetFGTS) Name() string { return "set_fgts" }

func (t *SetFGTS) Description() string {
	if t.Include {
		return "FGTS somado ao líquido"
	}
	return "FGTS fora do líquido"
}

func (t *SetFGTS) Validate(form.Form) error { return nil }

func (t *SetFGTS) Apply(base form.Form) (form.Form, error) {
	out := base
	out.IncludeFGTS = t.Include
	return out, nil
}

func sign(d decimal.Decimal) string {
	if d.IsNegative() {
		return ""
	}
	return "+"
}
