package components

import "github.com/charmbracelet/lipgloss"

// Palette shared by the widgets
var (
	ColorPrimary = lipgloss.Color("#1FAB89")
	ColorAccent  = lipgloss.Color("#F9A826")
	ColorDanger  = lipgloss.Color("#E5484D")
	ColorMuted   = lipgloss.Color("#8A8F98")
	ColorBorder  = lipgloss.Color("#3C4048")

	labelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	valueStyle    = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	negativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)
	subtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
)

func trendStyle(positive bool) lipgloss.Style {
	if positive {
		return positiveStyle
	}
	return negativeStyle
}

func trendArrow(positive bool) string {
	if positive {
		return "▲"
	}
	return "▼"
}
