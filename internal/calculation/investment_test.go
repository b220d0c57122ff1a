package calculation

import (
	"testing"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateInvestmentResults(t *testing.T) {
	tests := []struct {
		name          string
		input         domain.InvestmentInput
		final         string
		contributions string
		interest      string
	}{
		{
			name: "ten years at 5%",
			input: domain.InvestmentInput{
				InitialDeposit:      d("10000"),
				MonthlyContribution: d("500"),
				Period:              10,
				PeriodType:          domain.PeriodYears,
				InterestRate:        d("5"),
			},
			final:         "94111.23",
			contributions: "60000",
			interest:      "24111.23",
		},
		{
			name: "zero interest",
			input: domain.InvestmentInput{
				InitialDeposit:      d("10000"),
				MonthlyContribution: d("500"),
				Period:              10,
				PeriodType:          domain.PeriodYears,
			},
			final:         "70000",
			contributions: "60000",
			interest:      "0",
		},
		{
			name:          "empty projection",
			input:         domain.InvestmentInput{PeriodType: domain.PeriodMonths},
			final:         "0",
			contributions: "0",
			interest:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInvestmentResults(tt.input)

			assertMoney(t, tt.final, result.FinalAmount, "FinalAmount")
			assertMoney(t, tt.contributions, result.TotalContributions, "TotalContributions")
			assertMoney(t, tt.interest, result.TotalInterest, "TotalInterest")
		})
	}
}

func TestCalculateInvestmentResults_EmptyPercentages(t *testing.T) {
	result := CalculateInvestmentResults(domain.InvestmentInput{})

	assert.True(t, result.Percentages.InitialDeposit.IsZero())
	assert.True(t, result.Percentages.Contributions.IsZero())
	assert.True(t, result.Percentages.Interest.IsZero())
	require.Len(t, result.ChartData, 1)
	assert.Equal(t, 0, result.ChartData[0].Month)
}

func TestCalculateInvestmentResults_PercentagesSumToHundred(t *testing.T) {
	result := CalculateInvestmentResults(domain.InvestmentInput{
		InitialDeposit:      d("10000"),
		MonthlyContribution: d("500"),
		Period:              10,
		PeriodType:          domain.PeriodYears,
		InterestRate:        d("5"),
	})

	p := result.Percentages
	sum := p.InitialDeposit.Add(p.Contributions).Add(p.Interest)
	assert.InDelta(t, 100.0, sum.InexactFloat64(), 0.02)
}

func TestCalculateInvestmentResults_ChartSampling(t *testing.T) {
	tests := []struct {
		name       string
		period     int
		periodType domain.PeriodType
		points     int
		lastMonth  int
	}{
		{"monthly up to three years", 24, domain.PeriodMonths, 25, 24},
		{"three years exactly", 3, domain.PeriodYears, 37, 36},
		{"yearly beyond three years", 10, domain.PeriodYears, 11, 120},
		{"keeps the final partial year", 40, domain.PeriodMonths, 5, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInvestmentResults(domain.InvestmentInput{
				InitialDeposit: d("1000"),
				Period:         tt.period,
				PeriodType:     tt.periodType,
				InterestRate:   d("10"),
			})

			require.Len(t, result.ChartData, tt.points)
			last := result.ChartData[len(result.ChartData)-1]
			assert.Equal(t, tt.lastMonth, last.Month)
			assert.True(t, last.Amount.Equal(result.FinalAmount))
		})
	}
}

func TestCalculateInvestmentResults_ContributionEarnsNextMonth(t *testing.T) {
	result := CalculateInvestmentResults(domain.InvestmentInput{
		MonthlyContribution: d("1000"),
		Period:              2,
		PeriodType:          domain.PeriodMonths,
		InterestRate:        d("12"),
	})

	// month 1: 0 interest, +1000; month 2: 10 interest, +1000
	assertMoney(t, "2010", result.FinalAmount)
	assertMoney(t, "10", result.TotalInterest)
}
