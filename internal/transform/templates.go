package transform

import (
	"sort"
	"strings"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/form"
	"github.com/shopspring/decimal"
)

// Template is a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []FormTransform
}

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// NewTemplateRegistry creates an empty registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]Template)}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates registers the common what-if questions asked
// when weighing a CLT offer against a PJ contract
func CreateBuiltInTemplates(fatorR decimal.Decimal) *TemplateRegistry {
	registry := NewTemplateRegistry()
	pct := decimal.NewFromInt

	registry.Register(Template{
		Name:        "raise_10",
		Description: "CLT com reajuste de 10%",
		Transforms:  []FormTransform{&AdjustSalary{Percent: pct(10)}},
	})
	registry.Register(Template{
		Name:        "raise_20",
		Description: "CLT com reajuste de 20%",
		Transforms:  []FormTransform{&AdjustSalary{Percent: pct(20)}},
	})
	registry.Register(Template{
		Name:        "revenue_up_10",
		Description: "Faturamento PJ 10% maior",
		Transforms:  []FormTransform{&AdjustRevenue{Percent: pct(10)}},
	})
	registry.Register(Template{
		Name:        "revenue_down_10",
		Description: "Faturamento PJ 10% menor",
		Transforms:  []FormTransform{&AdjustRevenue{Percent: pct(-10)}},
	})
	registry.Register(Template{
		Name:        "fator_r",
		Description: "Pró-labore ajustado para o Anexo III",
		Transforms:  []FormTransform{&OptimizeProLabore{Threshold: fatorR}},
	})
	registry.Register(Template{
		Name:        "export",
		Description: "Serviço exportado, sem ISS",
		Transforms:  []FormTransform{&SetExport{Enabled: true}},
	})
	registry.Register(Template{
		Name:        "annex_v",
		Description: "PJ tributado pelo Anexo V",
		Transforms:  []FormTransform{&SetAnnex{Annex: domain.AnnexV}},
	})
	registry.Register(Template{
		Name:        "fgts",
		Description: "FGTS somado ao líquido CLT",
		Transforms:  []FormTransform{&SetFGTS{Include: true}},
	})
	registry.Register(Template{
		Name:        "plus_dependent",
		Description: "Um dependente a mais no IRRF",
		Transforms:  []FormTransform{&AddDependents{Count: 1}},
	})
	registry.Register(Template{
		Name:        "pj_optimized",
		Description: "Anexo III pelo Fator R e serviço exportado",
		Transforms: []FormTransform{
			&OptimizeProLabore{Threshold: fatorR},
			&SetExport{Enabled: true},
		},
	})

	return registry
}

// ApplyTemplate applies every transform of t to base
func ApplyTemplate(base form.Form, t Template) (form.Form, error) {
	return ApplyTransforms(base, t.Transforms)
}
