package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/devnagringa/calculadoras/internal/output"
)

// MetricCard shows one amount with a label and an optional trend line
type MetricCard struct {
	Label       string
	Value       string
	Trend       *Trend
	Description string
	Width       int
}

// Trend is the change shown under a card's value
type Trend struct {
	IsPositive bool
	Change     string
}

// NewMetricCard creates a card for value
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 28,
	}
}

// NewMoneyCard creates a card for an amount in reais
func NewMoneyCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, output.FormatBRL(amount))
}

// WithDifference adds a trend for diff; zero shows no trend
func (m *MetricCard) WithDifference(diff decimal.Decimal) *MetricCard {
	if diff.IsZero() {
		return m
	}
	m.Trend = &Trend{IsPositive: diff.IsPositive(), Change: output.FormatBRL(diff.Abs())}
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := labelStyle.Render(m.Label) + "\n" + valueStyle.Render(m.Value)
	if m.Trend != nil {
		content += "\n" + trendStyle(m.Trend.IsPositive).Render(trendArrow(m.Trend.IsPositive)+" "+m.Trend.Change)
	}
	if m.Description != "" {
		content += "\n" + subtleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns "label: value" without a border
func (m *MetricCard) RenderCompact() string {
	s := labelStyle.Render(m.Label+":") + " " + valueStyle.Render(m.Value)
	if m.Trend != nil {
		s += " " + trendStyle(m.Trend.IsPositive).Render(trendArrow(m.Trend.IsPositive)+" "+m.Trend.Change)
	}
	return s
}

// MetricGrid lays cards out in rows of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
