package calculation

import (
	"context"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
)

// BreakEvenOptions bounds the revenue search
type BreakEvenOptions struct {
	Tolerance     decimal.Decimal // stop when the bracket is narrower than this
	MaxIterations int
	MaxRevenue    decimal.Decimal // give up above this monthly revenue
}

// DefaultBreakEvenOptions returns R$ 1 tolerance and a R$ 1M monthly ceiling
func DefaultBreakEvenOptions() BreakEvenOptions {
	return BreakEvenOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 60,
		MaxRevenue:    decimal.NewFromInt(1000000),
	}
}

// BreakEvenError represents errors from the break-even search
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

// BreakEvenRevenue finds the monthly PJ revenue whose take-home matches the
// CLT take-home plus the monthly value of 13th salary, vacation and FGTS.
//
// The PJ template supplies accounting fee, export flag and annex choice. A
// zero pro-labore in the template is recomputed at each probe as the Fator R
// threshold times revenue, which keeps the company in Anexo III.
func (e *Engine) BreakEvenRevenue(ctx context.Context, clt domain.CLTInput, pj domain.PJInput, opts BreakEvenOptions) (*domain.BreakEvenResult, error) {
	defaults := DefaultBreakEvenOptions()
	if !opts.Tolerance.IsPositive() {
		opts.Tolerance = defaults.Tolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaults.MaxIterations
	}
	if !opts.MaxRevenue.IsPositive() {
		opts.MaxRevenue = defaults.MaxRevenue
	}

	cltResult := e.CalculateCLT(clt)
	target := cltResult.Total.Add(MonthlyAccrualValue(cltResult))
	if !target.IsPositive() {
		return &domain.BreakEvenResult{TargetNet: target, Revenue: decimal.Zero, PJ: e.CalculatePJ(domain.PJInput{}), Converged: true}, nil
	}

	probe := func(revenue decimal.Decimal) domain.CalculationResult {
		in := pj
		in.MonthlyRevenue = revenue
		in.Revenue12Months = decimal.Zero
		if !pj.ProLabore.IsPositive() {
			in.ProLabore = revenue.Mul(e.Rules.FatorRThreshold)
		}
		return e.CalculatePJ(in)
	}

	// Find an upper bound whose take-home already covers the target. The
	// doubling is capped at MaxRevenue, which is probed before giving up.
	two := decimal.NewFromInt(2)
	low := decimal.Zero
	high := decimal.Min(target, opts.MaxRevenue)
	iterations := 0
	for probe(high).Total.LessThan(target) {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, &BreakEvenError{Operation: "break_even", Message: "search cancelled", Cause: err}
		}
		if high.GreaterThanOrEqual(opts.MaxRevenue) {
			return nil, &BreakEvenError{
				Operation: "break_even",
				Message:   "no revenue up to " + opts.MaxRevenue.StringFixed(2) + " matches the CLT take-home",
			}
		}
		low = high
		high = decimal.Min(high.Mul(two), opts.MaxRevenue)
	}

	for i := 0; i < opts.MaxIterations && high.Sub(low).GreaterThan(opts.Tolerance); i++ {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, &BreakEvenError{Operation: "break_even", Message: "search cancelled", Cause: err}
		}
		mid := low.Add(high).Div(two)
		if probe(mid).Total.GreaterThanOrEqual(target) {
			high = mid
		} else {
			low = mid
		}
	}

	revenue := RoundMoney(high)
	e.log().Debugf("break-even: target=%s revenue=%s iterations=%d", target.StringFixed(2), revenue.StringFixed(2), iterations)
	return &domain.BreakEvenResult{
		TargetNet:  target,
		Revenue:    revenue,
		PJ:         probe(revenue),
		Iterations: iterations,
		Converged:  high.Sub(low).LessThanOrEqual(opts.Tolerance),
	}, nil
}
