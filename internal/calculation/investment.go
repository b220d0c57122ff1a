package calculation

import (
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
)

// chartEveryMonthLimit is the longest horizon charted month by month; longer
// projections are sampled once a year
const chartEveryMonthLimit = 36

// CalculateInvestmentResults projects a monthly-compounded investment.
// Each month interest accrues on the running balance first and the month's
// contribution is posted afterwards, so a contribution never earns interest
// in the month it is made.
func CalculateInvestmentResults(in domain.InvestmentInput) domain.InvestmentResult {
	months := in.Months()
	monthlyRate := in.InterestRate.Div(hundred).Div(twelve)

	initial := nonNegative(in.InitialDeposit)
	contribution := nonNegative(in.MonthlyContribution)

	current := initial
	contributions := decimal.Zero
	interest := decimal.Zero

	chart := []domain.ChartPoint{chartPoint(0, current, initial, contributions, interest)}
	for month := 1; month <= months; month++ {
		earned := current.Mul(monthlyRate)
		interest = interest.Add(earned)
		current = current.Add(earned)

		current = current.Add(contribution)
		contributions = contributions.Add(contribution)

		if months <= chartEveryMonthLimit || month%12 == 0 || month == months {
			chart = append(chart, chartPoint(month, current, initial, contributions, interest))
		}
	}

	final := RoundMoney(current)
	return domain.InvestmentResult{
		FinalAmount:        final,
		TotalContributions: RoundMoney(contributions),
		TotalInterest:      RoundMoney(interest),
		ChartData:          chart,
		Percentages: domain.InvestmentPercentages{
			InitialDeposit: percentOf(initial, current),
			Contributions:  percentOf(contributions, current),
			Interest:       percentOf(interest, current),
		},
	}
}

func chartPoint(month int, current, initial, contributions, interest decimal.Decimal) domain.ChartPoint {
	return domain.ChartPoint{
		Month:         month,
		Amount:        RoundMoney(current),
		Invested:      RoundMoney(initial.Add(contributions)),
		InterestTotal: RoundMoney(interest),
	}
}
