package calculation

import (
	"testing"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	result := Compare(cltInput("5000"), pjInput("20000", "5600", "300"))

	assertMoney(t, "4155.55", result.CLT.Total)
	assertMoney(t, "17646.40", result.PJ.Total)
	assertMoney(t, "13490.85", result.Difference)
	assertMoney(t, "324.65", result.PercentageDifference)

	assertMoney(t, "83.11", result.CLTChart.NetPercent)
	assertMoney(t, "16.89", result.CLTChart.TaxPercent)
	assertMoney(t, "88.23", result.PJChart.NetPercent)
	assertMoney(t, "11.77", result.PJChart.TaxPercent)
}

func TestCompare_ZeroCLTTotal(t *testing.T) {
	result := Compare(domain.CLTInput{}, pjInput("10000", "3000", "0"))

	assert.True(t, result.CLT.Total.IsZero())
	assert.True(t, result.PercentageDifference.IsZero(), "no division by zero")
	assert.True(t, result.Difference.Equal(result.PJ.Total))
}

func TestCompare_MatchesIndependentCalculations(t *testing.T) {
	clt := domain.CLTInput{GrossSalary: d("12000"), IncludeFGTS: true, DependentsCount: 1}
	pj := pjInput("18000", "5040", "250")

	result := Compare(clt, pj)

	assert.True(t, CalculateCLT(clt).Total.Equal(result.CLT.Total))
	assert.True(t, CalculatePJ(pj).Total.Equal(result.PJ.Total))
}
