package calculation

import (
	"testing"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pjInput(revenue, proLabore, accounting string) domain.PJInput {
	return domain.PJInput{
		MonthlyRevenue: d(revenue),
		ProLabore:      d(proLabore),
		AccountingFee:  d(accounting),
	}
}

func TestCalculatePJ(t *testing.T) {
	engine := NewEngine()

	forcedIII := pjInput("20000", "1518", "0")
	forcedIII.Annex = domain.AnnexIII

	export := pjInput("20000", "5600", "300")
	export.IsExportService = true

	tests := []struct {
		name    string
		input   domain.PJInput
		annex   string
		simples string
		inss    string
		total   string
	}{
		{
			name:    "Fator R reaches Anexo III",
			input:   pjInput("20000", "5600", "300"),
			annex:   "Anexo III",
			simples: "1460",
			inss:    "593.60",
			total:   "17646.40",
		},
		{
			name:    "low pro-labore falls into Anexo V",
			input:   pjInput("20000", "1518", "0"),
			annex:   "Anexo V",
			simples: "3225",
			inss:    "113.85",
			total:   "16661.15",
		},
		{
			name:    "explicit annex overrides Fator R",
			input:   forcedIII,
			annex:   "Anexo III",
			simples: "1460",
			inss:    "113.85",
			total:   "18426.15",
		},
		{
			name:    "export service drops ISS share",
			input:   export,
			annex:   "Anexo III",
			simples: "992.80",
			inss:    "593.60",
			total:   "18113.60",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.CalculatePJ(tt.input)

			assert.Equal(t, tt.annex, result.Annex)
			simples, ok := result.Line(LabelSimples + " (" + tt.annex + ")")
			require.True(t, ok, "Simples line is always present")
			assertMoney(t, tt.simples, simples.Amount, "Simples")

			inss, ok := result.Line(LabelINSSOwner)
			require.True(t, ok)
			assertMoney(t, tt.inss, inss.Amount, "INSS")
			assertMoney(t, tt.total, result.Total, "Total")

			expected := result.Gross.Sub(result.SumDeductions()).Add(result.SumAdditions())
			assert.True(t, expected.Equal(result.Total))
		})
	}
}

func TestCalculatePJ_NonPositiveRevenue(t *testing.T) {
	for _, revenue := range []string{"0", "-1", "-5000"} {
		t.Run(revenue, func(t *testing.T) {
			result := CalculatePJ(pjInput(revenue, "1518", "300"))

			assert.True(t, result.Total.IsZero())
			assert.True(t, result.EffectiveRate.IsZero())
			assert.Empty(t, result.Lines)
			assert.Equal(t, domain.RegimePJ, result.Regime)
		})
	}
}

func TestCalculatePJ_OptionalLines(t *testing.T) {
	result := CalculatePJ(pjInput("10000", "0", "0"))

	require.Len(t, result.Lines, 1)
	assert.Equal(t, "Anexo V", result.Annex)
	_, ok := result.Line(LabelAccounting)
	assert.False(t, ok)
}

func TestCalculatePJ_Revenue12Months(t *testing.T) {
	in := pjInput("20000", "5600", "0")
	in.Revenue12Months = d("150000")

	result := CalculatePJ(in)

	simples, ok := result.Line(LabelSimples + " (Anexo III)")
	require.True(t, ok)
	assertMoney(t, "1200", simples.Amount, "first bracket rate applies to trailing revenue")
}

func TestCalculatePJ_ManualAnnex(t *testing.T) {
	engine := NewEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	manual := &domain.SimplesAnnex{
		Name: "Manual",
		Brackets: []domain.SimplesBracket{
			{TaxBracket: domain.TaxBracket{Unbounded: true, Rate: d("0.10")}},
		},
	}

	in := pjInput("10000", "3000", "0")
	in.Annex = domain.AnnexManual
	in.ManualAnnex = manual
	result := engine.CalculatePJ(in)
	assert.Equal(t, "Manual", result.Annex)

	in.ManualAnnex = nil
	result = engine.CalculatePJ(in)
	assert.Equal(t, "Anexo III", result.Annex, "falls back to Fator R")
	assert.Contains(t, logger.messages, "WARN: pj: manual annex selected without a table, falling back to Fator R")
}

func TestFatorR(t *testing.T) {
	tests := []struct {
		name      string
		proLabore string
		revenue   string
		expected  string
	}{
		{"exactly threshold", "2800", "10000", "0.28"},
		{"below threshold", "1518", "20000", "0.0759"},
		{"zero revenue", "1518", "0", "0"},
		{"negative revenue", "1518", "-10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, d(tt.expected).Equal(FatorR(d(tt.proLabore), d(tt.revenue))))
		})
	}
}

func TestCalculatePJ_ThresholdPicksAnnexIII(t *testing.T) {
	assert.Equal(t, "Anexo III", CalculatePJ(pjInput("10000", "2800", "0")).Annex)
	assert.Equal(t, "Anexo V", CalculatePJ(pjInput("10000", "2799.99", "0")).Annex)
}
