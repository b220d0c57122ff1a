package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/devnagringa/calculadoras/internal/tui/components"
)

var (
	ColorPrimary = components.ColorPrimary
	ColorAccent  = components.ColorAccent
	ColorDanger  = components.ColorDanger
	ColorMuted   = components.ColorMuted
	ColorBorder  = components.ColorBorder

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	TabStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1).Underline(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle        = lipgloss.NewStyle().Foreground(ColorMuted)
	FocusedLabelStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	TotalStyle        = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	DeductionStyle    = lipgloss.NewStyle().Foreground(ColorDanger)
	LinkStyle         = lipgloss.NewStyle().Foreground(ColorPrimary).Underline(true)
	StatusStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle        = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	SelectedStyle     = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)
