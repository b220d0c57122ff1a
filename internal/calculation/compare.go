package calculation

import (
	"github.com/devnagringa/calculadoras/internal/domain"
)

// Compare runs both calculators independently and sets the PJ result
// against the CLT one. PercentageDifference is zero when the CLT total is
// zero.
func (e *Engine) Compare(clt domain.CLTInput, pj domain.PJInput) domain.ComparisonResult {
	cltResult := e.CalculateCLT(clt)
	pjResult := e.CalculatePJ(pj)

	diff := pjResult.Total.Sub(cltResult.Total)
	return domain.ComparisonResult{
		CLT:                  cltResult,
		PJ:                   pjResult,
		Difference:           diff,
		PercentageDifference: percentOf(diff, cltResult.Total),
		CLTChart:             chartShare(cltResult),
		PJChart:              chartShare(pjResult),
	}
}

func chartShare(r domain.CalculationResult) domain.ChartShare {
	return domain.ChartShare{
		NetPercent: percentOf(r.Total, r.Gross),
		TaxPercent: percentOf(r.SumDeductions(), r.Gross),
	}
}
