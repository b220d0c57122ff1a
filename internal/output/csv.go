package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/devnagringa/calculadoras/internal/domain"
)

// CSVFormatter writes one row per line item, accrual or chart point
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var rows [][]string
	switch {
	case r.Comparison != nil:
		rows = append(rows, resultRows(&r.Comparison.CLT)...)
		rows = append(rows, resultRows(&r.Comparison.PJ)...)
		rows = append(rows,
			[]string{"comparison", "difference", "total", r.Comparison.Difference.StringFixed(2)},
			[]string{"comparison", "percentage_difference", "percent", r.Comparison.PercentageDifference.StringFixed(2)},
		)
	case r.CLT != nil:
		rows = resultRows(r.CLT)
	case r.PJ != nil:
		rows = resultRows(r.PJ)
	case r.BreakEven != nil:
		rows = append(rows,
			[]string{"breakeven", "target_net", "total", r.BreakEven.TargetNet.StringFixed(2)},
			[]string{"breakeven", "revenue", "total", r.BreakEven.Revenue.StringFixed(2)},
		)
		rows = append(rows, resultRows(&r.BreakEven.PJ)...)
	case r.Investment != nil:
		return investmentCSV(r.Investment)
	default:
		return nil, fmt.Errorf("report has no result to format")
	}

	if err := w.Write([]string{"Section", "Label", "Kind", "Amount"}); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resultRows(res *domain.CalculationResult) [][]string {
	section := string(res.Regime)
	rows := [][]string{{section, "gross", "total", res.Gross.StringFixed(2)}}
	for _, line := range res.Lines {
		rows = append(rows, []string{section, line.Label, string(line.Kind), line.Amount.StringFixed(2)})
	}
	rows = append(rows,
		[]string{section, "net", "total", res.Total.StringFixed(2)},
		[]string{section, "effective_rate", "percent", res.EffectiveRate.StringFixed(2)},
	)
	for _, a := range res.Accruals {
		rows = append(rows, []string{section, a.Label, "accrual", a.Amount.StringFixed(2)})
	}
	return rows
}

func investmentCSV(res *domain.InvestmentResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Month", "Amount", "Invested", "Interest"}); err != nil {
		return nil, err
	}
	for _, p := range res.ChartData {
		row := []string{strconv.Itoa(p.Month), p.Amount.StringFixed(2), p.Invested.StringFixed(2), p.InterestTotal.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
