package calculation

import (
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FindBracket returns the index of the first bracket containing base. A base
// above every bounded row falls into the last row.
func FindBracket(base decimal.Decimal, brackets []domain.TaxBracket) int {
	if len(brackets) == 0 {
		return -1
	}
	for i, b := range brackets {
		if b.Contains(base) {
			return i
		}
	}
	return len(brackets) - 1
}

// progressiveTax applies the simplified-bracket formula without rounding
func progressiveTax(base decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	i := FindBracket(base, brackets)
	if i < 0 {
		return decimal.Zero
	}
	b := brackets[i]
	return base.Mul(b.Rate).Sub(b.Deduction)
}

// ApplyProgressiveTax computes base*rate - deduction for the bracket holding
// base, rounded to cents. Non-positive bases owe nothing.
func ApplyProgressiveTax(base decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	return RoundMoney(progressiveTax(base, brackets))
}

// RoundMoney rounds half away from zero to two decimal places
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percentOf returns part/whole*100 rounded to two places, or zero when whole
// is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// inssCeiling is the contribution at the last bounded INSS row. Salaries
// above the teto pay exactly this.
func inssCeiling(brackets []domain.TaxBracket) (decimal.Decimal, bool) {
	for i := len(brackets) - 1; i >= 0; i-- {
		if !brackets[i].Unbounded {
			return progressiveTax(brackets[i].UpperBound, brackets), true
		}
	}
	return decimal.Zero, false
}

// contributionINSS returns the unrounded INSS owed on a monthly salary
func (e *Engine) contributionINSS(salary decimal.Decimal) decimal.Decimal {
	inss := progressiveTax(salary, e.Rules.INSS)
	if ceiling, ok := inssCeiling(e.Rules.INSS); ok && inss.GreaterThan(ceiling) {
		inss = ceiling
	}
	return nonNegative(inss)
}
