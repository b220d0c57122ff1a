package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/devnagringa/calculadoras/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runComparison(t *testing.T) (*CompareEngine, *ComparisonSet) {
	t.Helper()
	ce := NewCompareEngine(calculation.NewEngine())
	ce.ShareBase = "https://example.com/calc"

	set, err := ce.Compare(context.Background(), form.Decode("gs=10000&fp=15000"), CompareOptions{
		Templates:  []string{"raise_10", "fator_r"},
		Transforms: []transform.FormTransform{&transform.AddDependents{Count: 2}},
	})
	require.NoError(t, err)
	return ce, set
}

func TestCompare(t *testing.T) {
	ce, set := runComparison(t)

	require.NotNil(t, set.BaseResult)
	assert.Equal(t, "base", set.BaseResult.ScenarioName)
	assert.Equal(t, "https://example.com/calc?fp=15000&gs=10000", set.BaseResult.Link)
	assert.True(t, set.BaseResult.Difference.Equal(set.BaseResult.PJNet.Sub(set.BaseResult.CLTNet)))
	require.Len(t, set.AlternativeResults, 3)

	raise := set.AlternativeResults[0]
	assert.Equal(t, "raise_10", raise.ScenarioName)
	assert.True(t, raise.CLTDiffFromBase.IsPositive())
	assert.True(t, raise.PJDiffFromBase.IsZero())
	assert.Contains(t, raise.Link, "gs=11000")

	fatorR := set.AlternativeResults[1]
	assert.Equal(t, ce.CalcEngine.Rules.AnnexV.Name, set.BaseResult.PJAnnex)
	assert.Equal(t, ce.CalcEngine.Rules.AnnexIII.Name, fatorR.PJAnnex)
	assert.True(t, fatorR.PJDiffFromBase.IsPositive())
	assert.True(t, fatorR.CLTDiffFromBase.IsZero())

	deps := set.AlternativeResults[2]
	assert.Equal(t, "add_dependents", deps.ScenarioName)
	assert.False(t, deps.CLTDiffFromBase.IsNegative())
}

func TestCompare_Recommendations(t *testing.T) {
	_, set := runComparison(t)

	recs := strings.Join(set.Recommendations, "\n")
	assert.Contains(t, recs, "No cenário informado, PJ rende")
	assert.Contains(t, recs, "Pró-labore ajustado para o Anexo III leva ao maior líquido")
	assert.Contains(t, recs, "Pró-labore ajustado para o Anexo III aumenta o líquido PJ")
	assert.Equal(t, "fator_r", set.Best().ScenarioName)
}

func TestCompare_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())
	ctx := context.Background()

	_, err := ce.Compare(ctx, form.Default(), CompareOptions{Templates: []string{"missing"}})
	assert.ErrorContains(t, err, "template missing not found")

	_, err = ce.Compare(ctx, form.Default(), CompareOptions{Templates: []string{"raise_10"}})
	assert.ErrorContains(t, err, "failed to apply template raise_10")

	_, err = ce.Compare(ctx, form.Default(), CompareOptions{
		Transforms: []transform.FormTransform{&transform.AdjustRevenue{Percent: decimal.NewFromInt(5)}},
	})
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, form.Decode("gs=5000"), CompareOptions{Templates: []string{"raise_10"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_BaseOnly(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	set, err := ce.Compare(context.Background(), form.Decode("gs=5000"), CompareOptions{})
	require.NoError(t, err)

	assert.Empty(t, set.AlternativeResults)
	assert.Same(t, set.BaseResult, set.Best())
	require.Len(t, set.Recommendations, 1)
	assert.True(t, strings.HasPrefix(set.Recommendations[0], "No cenário informado, CLT rende"))
}

func TestFormatters(t *testing.T) {
	_, set := runComparison(t)

	table, err := (&TableFormatter{}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, table, "COMPARAÇÃO DE CENÁRIOS")
	assert.Contains(t, table, "base *")
	assert.Contains(t, table, "raise_10 (CLT com reajuste de 10%)")
	assert.Contains(t, table, "RECOMENDAÇÕES")

	out, err := (&CSVFormatter{}).Format(set)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"base", "base"}, records[1][:2])
	assert.Equal(t, "alternative", records[2][1])

	js, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Contains(t, decoded, "baseResult")
	assert.Len(t, decoded["alternativeResults"], 3)
}

func TestGetFormatter(t *testing.T) {
	for _, name := range []string{"console", "table", "csv", "json", "pretty"} {
		f, err := GetFormatter(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}
	_, err := GetFormatter("xml")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", truncate("curto", 10))
	assert.Equal(t, "reajust…", truncate("reajuste_salarial", 8))
}
