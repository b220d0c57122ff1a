package output

import (
	"fmt"

	"github.com/devnagringa/calculadoras/internal/domain"
)

// Assumptions lists the modelling assumptions printed under detailed reports
func Assumptions(rules domain.TaxRules) []string {
	return []string{
		fmt.Sprintf("Tabelas INSS, IRRF e PLR de %d, sem correção futura", rules.Year),
		fmt.Sprintf("Dedução por dependente no IRRF: %s", FormatBRL(rules.DependentDeduction)),
		"Desconto simplificado do IRRF não aplicado",
		fmt.Sprintf("Fator R: pró-labore ≥ %s da receita leva ao Anexo III", FormatPercentage(rules.FatorRThreshold.Mul(hundred))),
		"Simples Nacional: alíquota efetiva pela receita dos últimos 12 meses",
		"Serviço exportado: parcela de ISS zerada",
	}
}
