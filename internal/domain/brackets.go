package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one row of a progressive table. Deduction is the cumulative
// "parcela a deduzir", so inside the bracket tax = base*Rate - Deduction.
type TaxBracket struct {
	UpperBound decimal.Decimal `yaml:"upper_bound" json:"upperBound"`
	Unbounded  bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
	Deduction  decimal.Decimal `yaml:"deduction" json:"deduction"`
}

// Contains reports whether base falls at or below the bracket's upper bound.
func (b TaxBracket) Contains(base decimal.Decimal) bool {
	return b.Unbounded || base.LessThanOrEqual(b.UpperBound)
}

// SimplesBracket is a Simples Nacional row. ISSShare is the fraction of the
// effective rate that corresponds to ISS in this bracket's distribution.
type SimplesBracket struct {
	TaxBracket `yaml:",inline"`
	ISSShare   decimal.Decimal `yaml:"iss_share" json:"issShare"`
}

// SimplesAnnex is a named Simples Nacional table (Anexo III, Anexo V, ...)
type SimplesAnnex struct {
	Name     string           `yaml:"name" json:"name"`
	Brackets []SimplesBracket `yaml:"brackets" json:"brackets"`
}

// TaxBrackets returns the annex rows as a plain progressive table
func (a SimplesAnnex) TaxBrackets() []TaxBracket {
	brackets := make([]TaxBracket, len(a.Brackets))
	for i, b := range a.Brackets {
		brackets[i] = b.TaxBracket
	}
	return brackets
}
