package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/devnagringa/calculadoras/internal/domain"
)

const (
	consoleWidth = 60
	labelWidth   = 36
)

// ConsoleFormatter prints aligned tables for a terminal
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	switch {
	case r.Comparison != nil:
		c.writeComparison(&buf, r.Comparison)
	case r.CLT != nil:
		c.writeResult(&buf, "CLT", r.CLT)
	case r.PJ != nil:
		c.writeResult(&buf, "PJ", r.PJ)
	case r.Investment != nil:
		c.writeInvestment(&buf, r.Investment)
	case r.BreakEven != nil:
		c.writeBreakEven(&buf, r.BreakEven)
	default:
		return nil, fmt.Errorf("report has no result to format")
	}

	if r.Link != "" {
		fmt.Fprintf(&buf, "\nLink: %s\n", r.Link)
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeResult(buf *bytes.Buffer, title string, res *domain.CalculationResult) {
	heading := title
	if res.Annex != "" {
		heading += " - Simples Nacional " + res.Annex
	}
	buf.WriteString(heading + "\n")
	buf.WriteString(strings.Repeat("=", consoleWidth) + "\n")
	c.row(buf, GrossLabel(res.Regime), FormatBRL(res.Gross))
	buf.WriteString(strings.Repeat("-", consoleWidth) + "\n")
	for _, line := range res.Lines {
		c.row(buf, line.Label, SignedAmount(line))
	}
	buf.WriteString(strings.Repeat("-", consoleWidth) + "\n")
	c.row(buf, NetLabel(res.Regime), FormatBRL(res.Total))
	c.row(buf, "Alíquota efetiva", FormatPercentage(res.EffectiveRate))
	if res.Regime == domain.RegimePJ && res.Gross.IsPositive() {
		c.row(buf, "Fator R", FormatPercentage(res.FatorR.Mul(hundred)))
	}

	if len(res.Accruals) > 0 {
		buf.WriteString("\nBenefícios acumulados (não entram no líquido)\n")
		for _, a := range res.Accruals {
			c.row(buf, a.Label, FormatBRL(a.Amount))
		}
	}
	buf.WriteString("\n")
}

func (c ConsoleFormatter) writeComparison(buf *bytes.Buffer, cmp *domain.ComparisonResult) {
	c.writeResult(buf, "CLT", &cmp.CLT)
	c.writeResult(buf, "PJ", &cmp.PJ)

	buf.WriteString("COMPARAÇÃO\n")
	buf.WriteString(strings.Repeat("=", consoleWidth) + "\n")
	c.row(buf, "Diferença (PJ - CLT)", FormatBRL(cmp.Difference))
	c.row(buf, "Diferença percentual", FormatPercentage(cmp.PercentageDifference))
	switch {
	case cmp.Difference.IsPositive():
		buf.WriteString("PJ rende mais por mês\n")
	case cmp.Difference.IsNegative():
		buf.WriteString("CLT rende mais por mês\n")
	default:
		buf.WriteString("Os dois regimes empatam\n")
	}
}

func (c ConsoleFormatter) writeInvestment(buf *bytes.Buffer, res *domain.InvestmentResult) {
	buf.WriteString("INVESTIMENTO\n")
	buf.WriteString(strings.Repeat("=", consoleWidth) + "\n")
	c.row(buf, "Valor final", FormatBRL(res.FinalAmount))
	c.row(buf, "Total aportado", FormatBRL(res.TotalContributions))
	c.row(buf, "Total em juros", FormatBRL(res.TotalInterest))
	buf.WriteString(strings.Repeat("-", consoleWidth) + "\n")
	c.row(buf, "Depósito inicial", FormatPercentage(res.Percentages.InitialDeposit))
	c.row(buf, "Aportes", FormatPercentage(res.Percentages.Contributions))
	c.row(buf, "Juros", FormatPercentage(res.Percentages.Interest))

	if len(res.ChartData) > 1 {
		fmt.Fprintf(buf, "\n%6s %17s %17s %17s\n", "Mês", "Saldo", "Investido", "Juros")
		for _, p := range res.ChartData {
			fmt.Fprintf(buf, "%6d %17s %17s %17s\n", p.Month, FormatBRL(p.Amount), FormatBRL(p.Invested), FormatBRL(p.InterestTotal))
		}
	}
}

func (c ConsoleFormatter) writeBreakEven(buf *bytes.Buffer, res *domain.BreakEvenResult) {
	buf.WriteString("PONTO DE EQUILÍBRIO\n")
	buf.WriteString(strings.Repeat("=", consoleWidth) + "\n")
	c.row(buf, "Líquido CLT + benefícios", FormatBRL(res.TargetNet))
	c.row(buf, "Faturamento PJ equivalente", FormatBRL(res.Revenue))
	if !res.Converged {
		buf.WriteString("Aviso: a busca não convergiu dentro do limite de iterações\n")
	}
	buf.WriteString("\n")
	c.writeResult(buf, "PJ", &res.PJ)
}

func (c ConsoleFormatter) row(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%-*s %*s\n", labelWidth, truncate(label, labelWidth), consoleWidth-labelWidth-1, value)
}

// SignedAmount prefixes a line amount with + or -
func SignedAmount(line domain.LineItem) string {
	if line.Kind == domain.KindDeduction {
		return "- " + FormatBRL(line.Amount)
	}
	return "+ " + FormatBRL(line.Amount)
}

// GrossLabel names the starting amount of a regime
func GrossLabel(regime domain.Regime) string {
	if regime == domain.RegimePJ {
		return "Faturamento mensal"
	}
	return "Salário bruto"
}

// NetLabel names the take-home amount of a regime
func NetLabel(regime domain.Regime) string {
	if regime == domain.RegimePJ {
		return "Receita líquida"
	}
	return "Salário líquido"
}

// truncate shortens s to maxLen runes
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// Summary is a one-line description of a result, used in logs and the TUI
func Summary(res domain.CalculationResult) string {
	return fmt.Sprintf("%s %s → %s (%s)", res.Regime, FormatBRL(res.Gross), FormatBRL(res.Total), FormatPercentage(res.EffectiveRate))
}

