package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// PeriodType is the unit of InvestmentInput.Period
type PeriodType string

const (
	PeriodYears  PeriodType = "anos"
	PeriodMonths PeriodType = "meses"
)

// InvestmentInput configures a compound-interest projection. InterestRate is
// a yearly percentage (5 means 5% a.a.), compounded monthly.
type InvestmentInput struct {
	InitialDeposit      decimal.Decimal `yaml:"initial_deposit" json:"initialDeposit"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	Period              int             `yaml:"period" json:"period"`
	PeriodType          PeriodType      `yaml:"period_type" json:"periodType"`
	InterestRate        decimal.Decimal `yaml:"interest_rate" json:"interestRate"`
}

// MaxInvestmentMonths bounds a projection to 100 years
const MaxInvestmentMonths = 1200

// Months converts Period into a month count, saturating instead of
// overflowing for huge year counts
func (in InvestmentInput) Months() int {
	if in.Period <= 0 {
		return 0
	}
	if in.PeriodType == PeriodYears {
		if in.Period > math.MaxInt/12 {
			return math.MaxInt
		}
		return in.Period * 12
	}
	return in.Period
}

// WithinLimit reports whether the period fits in MaxInvestmentMonths
func (in InvestmentInput) WithinLimit() bool {
	return in.Period <= MaxInvestmentMonths && in.Months() <= MaxInvestmentMonths
}

// ChartPoint is one sample of the projection curve
type ChartPoint struct {
	Month         int             `json:"month"`
	Amount        decimal.Decimal `json:"amount"`
	Invested      decimal.Decimal `json:"invested"`
	InterestTotal decimal.Decimal `json:"interest"`
}

// InvestmentPercentages splits the final amount into its three sources
type InvestmentPercentages struct {
	InitialDeposit decimal.Decimal `json:"initialDepositPercent"`
	Contributions  decimal.Decimal `json:"contributionsPercent"`
	Interest       decimal.Decimal `json:"interestPercent"`
}

// InvestmentResult is the outcome of a projection
type InvestmentResult struct {
	FinalAmount        decimal.Decimal       `json:"finalAmount"`
	TotalContributions decimal.Decimal       `json:"totalContributions"`
	TotalInterest      decimal.Decimal       `json:"totalInterest"`
	ChartData          []ChartPoint          `json:"chartData"`
	Percentages        InvestmentPercentages `json:"percentages"`
}
