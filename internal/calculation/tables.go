package calculation

import (
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX TABLE ASSUMPTIONS:
//
// 1. INSS: Portaria Interministerial MPS/MF 6/2025 (salário mínimo 1.518,00,
//    teto 8.157,41). The unbounded last row has rate 0 and a negative
//    deduction so salaries above the teto pay the fixed maximum 951,63.
//
// 2. IRRF: monthly table in force from May 2025. Dependent deduction 189,59.
//    The optional simplified discount (607,20) is not applied.
//
// 3. PLR: exclusive annual table, taxed apart from the salary.
//
// 4. Simples Nacional: LC 123/2006 as amended by LC 155/2016. ISS shares are
//    the ISS column of each bracket's distribution; the sixth bracket
//    collects ISS outside the DAS, so its share is zero.

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func bracket(upper, rate, deduction string) domain.TaxBracket {
	return domain.TaxBracket{UpperBound: dec(upper), Rate: dec(rate), Deduction: dec(deduction)}
}

func topBracket(rate, deduction string) domain.TaxBracket {
	return domain.TaxBracket{Unbounded: true, Rate: dec(rate), Deduction: dec(deduction)}
}

func simples(upper, rate, deduction, iss string) domain.SimplesBracket {
	b := domain.SimplesBracket{ISSShare: dec(iss)}
	if upper == "" {
		b.TaxBracket = topBracket(rate, deduction)
	} else {
		b.TaxBracket = bracket(upper, rate, deduction)
	}
	return b
}

// DefaultRules2025 returns the tables in force for 2025
func DefaultRules2025() domain.TaxRules {
	return domain.TaxRules{
		Year: 2025,
		INSS: []domain.TaxBracket{
			bracket("1518.00", "0.075", "0"),
			bracket("2793.88", "0.09", "22.77"),
			bracket("4190.83", "0.12", "106.59"),
			bracket("8157.41", "0.14", "190.40"),
			topBracket("0", "-951.63"),
		},
		IRRF: []domain.TaxBracket{
			bracket("2428.80", "0", "0"),
			bracket("2826.65", "0.075", "182.16"),
			bracket("3751.05", "0.15", "394.16"),
			bracket("4664.68", "0.225", "675.49"),
			topBracket("0.275", "908.73"),
		},
		PLR: []domain.TaxBracket{
			bracket("7407.11", "0", "0"),
			bracket("9922.28", "0.075", "555.53"),
			bracket("13167.00", "0.15", "1299.70"),
			bracket("16380.38", "0.225", "2287.23"),
			topBracket("0.275", "3106.25"),
		},
		DependentDeduction: dec("189.59"),
		FGTSRate:           dec("0.08"),
		FGTSPenaltyRate:    dec("0.40"),
		FatorRThreshold:    dec("0.28"),
		AnnexIII: domain.SimplesAnnex{
			Name: "Anexo III",
			Brackets: []domain.SimplesBracket{
				simples("180000", "0.06", "0", "0.335"),
				simples("360000", "0.112", "9360", "0.32"),
				simples("720000", "0.135", "17640", "0.325"),
				simples("1800000", "0.16", "35640", "0.325"),
				simples("3600000", "0.21", "125640", "0.335"),
				simples("", "0.33", "648000", "0"),
			},
		},
		AnnexV: domain.SimplesAnnex{
			Name: "Anexo V",
			Brackets: []domain.SimplesBracket{
				simples("180000", "0.155", "0", "0.14"),
				simples("360000", "0.18", "4500", "0.17"),
				simples("720000", "0.195", "9900", "0.19"),
				simples("1800000", "0.205", "17100", "0.21"),
				simples("3600000", "0.23", "62100", "0.235"),
				simples("", "0.305", "540000", "0"),
			},
		},
	}
}
