package compare

import (
	"context"
	"fmt"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/devnagringa/calculadoras/internal/output"
	"github.com/devnagringa/calculadoras/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine       *calculation.Engine
	TemplateRegistry *transform.TemplateRegistry
	ShareBase        string
}

// NewCompareEngine creates a comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:       calcEngine,
		TemplateRegistry: transform.CreateBuiltInTemplates(calcEngine.Rules.FatorRThreshold),
		ShareBase:        form.DefaultShareBase,
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string                  // built-in templates, one scenario each
	Transforms []transform.FormTransform // ad-hoc transforms, one scenario each
}

// Compare evaluates base and one variant per template and transform
func (ce *CompareEngine) Compare(ctx context.Context, base form.Form, options CompareOptions) (*ComparisonSet, error) {
	baseResult := ce.evaluate("base", "Cenário informado", base)

	alternatives := make([]ScenarioResult, 0, len(options.Templates)+len(options.Transforms))
	add := func(name, description string, f form.Form) {
		alt := ce.evaluate(name, description, f)
		alt.CLTDiffFromBase = alt.CLTNet.Sub(baseResult.CLTNet)
		alt.PJDiffFromBase = alt.PJNet.Sub(baseResult.PJNet)
		alternatives = append(alternatives, alt)
	}

	for _, name := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}
		add(template.Name, template.Description, modified)
	}

	for _, t := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		modified, err := transform.ApplyTransforms(base, []transform.FormTransform{t})
		if err != nil {
			return nil, err
		}
		add(t.Name(), t.Description(), modified)
	}

	compSet := &ComparisonSet{
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func (ce *CompareEngine) evaluate(name, description string, f form.Form) ScenarioResult {
	cmp := ce.CalcEngine.Compare(f.CLTInput(), f.PJInput())
	return ScenarioResult{
		ScenarioName:    name,
		Description:     description,
		Link:            f.Link(ce.ShareBase),
		CLTNet:          cmp.CLT.Total,
		PJNet:           cmp.PJ.Total,
		Difference:      cmp.Difference,
		PJAnnex:         cmp.PJ.Annex,
		PJEffectiveRate: cmp.PJ.EffectiveRate,
	}
}

// GenerateRecommendations summarises which regime and which variant pay best
func GenerateRecommendations(cs *ComparisonSet) []string {
	var recs []string
	base := cs.BaseResult
	if base == nil {
		return recs
	}

	switch {
	case base.Difference.IsPositive():
		recs = append(recs, fmt.Sprintf("No cenário informado, PJ rende %s a mais por mês", output.FormatBRL(base.Difference)))
	case base.Difference.IsNegative():
		recs = append(recs, fmt.Sprintf("No cenário informado, CLT rende %s a mais por mês", output.FormatBRL(base.Difference.Abs())))
	}

	if best := cs.Best(); best != nil && best != base {
		recs = append(recs, fmt.Sprintf("%s leva ao maior líquido: %s por mês", best.Description, output.FormatBRL(best.BestNet())))
	}

	for _, alt := range cs.AlternativeResults {
		if alt.PJDiffFromBase.IsPositive() && alt.CLTDiffFromBase.IsZero() {
			recs = append(recs, fmt.Sprintf("%s aumenta o líquido PJ em %s", alt.Description, output.FormatBRL(alt.PJDiffFromBase)))
		}
	}
	return recs
}
