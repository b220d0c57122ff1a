package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/devnagringa/calculadoras/internal/output"
	"github.com/devnagringa/calculadoras/internal/tui/components"
)

const resultWidth = 52

// View renders the current scene
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.scene {
	case SceneCLT:
		content = m.renderCalculator(m.renderCLTOptions(), m.clt)
	case ScenePJ:
		content = m.renderCalculator(m.renderPJOptions(), m.pj)
	case SceneCompare:
		content = m.renderCompare()
	case SceneInvestment:
		content = m.renderInvestment()
	case SceneHistory:
		content = m.renderHistory()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	tabs := make([]string, 0, len(sceneNames))
	for i, name := range sceneNames {
		label := fmt.Sprintf("F%d %s", i+1, name)
		if Scene(i) == m.scene {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, TabStyle.Render(label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Dev na Gringa · Calculadoras"),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

func (m Model) renderStatusBar() string {
	var lines []string
	if m.scene == SceneCLT || m.scene == ScenePJ || m.scene == SceneCompare {
		lines = append(lines, LabelStyle.Render("Link: ")+LinkStyle.Render(m.Link()))
	}
	if m.err != nil {
		lines = append(lines, ErrorStyle.Render("Erro: "+m.err.Error()))
	} else if m.status != "" {
		lines = append(lines, StatusStyle.Render(m.status))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) renderFields() string {
	var rows []string
	for i, f := range m.sceneFields() {
		label := LabelStyle
		if i == m.focus {
			label = FocusedLabelStyle
		}
		rows = append(rows, label.Width(22).Render(f.label)+" "+f.input.View())
	}
	return strings.Join(rows, "\n")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) renderCLTOptions() string {
	return checkbox(m.form.IncludeFGTS) + " Incluir FGTS (ctrl+t)"
}

func (m Model) renderPJOptions() string {
	annex := "automático (Fator R)"
	switch m.form.Annex {
	case domain.AnnexIII:
		annex = "Anexo III"
	case domain.AnnexV:
		annex = "Anexo V"
	}
	return checkbox(m.form.IsExportService) + " Exportação de serviços (ctrl+t)\n" +
		"Anexo: " + annex + " (ctrl+a)"
}

func (m Model) renderCalculator(options string, res domain.CalculationResult) string {
	left := PanelStyle.Render(m.renderFields() + "\n\n" + options)
	right := PanelStyle.Width(resultWidth).Render(renderResult(res))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderResult(res domain.CalculationResult) string {
	var sb strings.Builder
	row := func(label, value string, style lipgloss.Style) {
		sb.WriteString(style.Render(fmt.Sprintf("%-30s %18s", truncate(label, 30), value)) + "\n")
	}

	if res.Annex != "" {
		sb.WriteString(LabelStyle.Render("Simples Nacional "+res.Annex) + "\n")
	}
	row(output.GrossLabel(res.Regime), output.FormatBRL(res.Gross), lipgloss.NewStyle())
	for _, line := range res.Lines {
		style := lipgloss.NewStyle()
		if line.Kind == domain.KindDeduction {
			style = DeductionStyle
		}
		row(line.Label, output.SignedAmount(line), style)
	}
	row(output.NetLabel(res.Regime), output.FormatBRL(res.Total), TotalStyle)
	row("Alíquota efetiva", output.FormatPercentage(res.EffectiveRate), LabelStyle)

	if len(res.Accruals) > 0 {
		sb.WriteString("\n" + LabelStyle.Render("Benefícios acumulados") + "\n")
		for _, a := range res.Accruals {
			row(a.Label, output.FormatBRL(a.Amount), LabelStyle)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderCompare() string {
	cmp := m.comparison
	cards := []*components.MetricCard{
		components.NewMoneyCard("Líquido CLT", cmp.CLT.Total).
			WithDescription("Alíquota " + output.FormatPercentage(cmp.CLT.EffectiveRate)),
		components.NewMoneyCard("Líquido PJ", cmp.PJ.Total).
			WithDescription("Alíquota " + output.FormatPercentage(cmp.PJ.EffectiveRate)),
		components.NewMoneyCard("Diferença (PJ - CLT)", cmp.Difference).
			WithDifference(cmp.Difference).
			WithDescription(output.FormatPercentage(cmp.PercentageDifference)),
	}

	chart := components.NewBarChart("Líquido mensal").
		Add("CLT", cmp.CLT.Total, ColorAccent).
		Add("PJ", cmp.PJ.Total, ColorPrimary)

	verdict := "Os dois regimes empatam"
	switch {
	case cmp.Difference.IsPositive():
		verdict = "PJ rende mais por mês"
	case cmp.Difference.IsNegative():
		verdict = "CLT rende mais por mês"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.MetricGrid(cards, 3),
		PanelStyle.Render(chart.Render()),
		TotalStyle.Render(verdict),
	)
}

func (m Model) renderInvestment() string {
	res := m.investment
	cards := []*components.MetricCard{
		components.NewMoneyCard("Valor final", res.FinalAmount),
		components.NewMoneyCard("Aportes mensais", res.TotalContributions),
		components.NewMoneyCard("Total em juros", res.TotalInterest),
	}

	in := m.investmentInput()
	chart := components.NewBarChart("Composição").
		Add("Depósito inicial", in.InitialDeposit, ColorMuted).
		Add("Aportes", res.TotalContributions, ColorAccent).
		Add("Juros", res.TotalInterest, ColorPrimary)

	left := PanelStyle.Render(m.renderFields())
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, PanelStyle.Render(chart.Render())),
		components.MetricGrid(cards, 3),
	)
}

func (m Model) renderHistory() string {
	if len(m.history.Entries) == 0 {
		return PanelStyle.Render(StatusStyle.Render("Nenhum link salvo. Use ctrl+s em uma calculadora."))
	}
	var rows []string
	for i, entry := range m.history.Entries {
		line := fmt.Sprintf("%d. %s", i+1, entry)
		if i == m.historyCursor {
			rows = append(rows, SelectedStyle.Render("> "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	return PanelStyle.Render(strings.Join(rows, "\n"))
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
