package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/devnagringa/calculadoras/internal/output"
)

// Bar is one labelled amount
type Bar struct {
	Label string
	Value decimal.Decimal
	Color lipgloss.Color
}

// BarChart draws horizontal bars scaled to the largest value
type BarChart struct {
	Title string
	Bars  []Bar
	Width int
}

// NewBarChart creates an empty chart
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 30}
}

// Add appends a bar
func (c *BarChart) Add(label string, value decimal.Decimal, color lipgloss.Color) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value, Color: color})
	return c
}

// BarLength is the number of cells a value gets when max fills width.
// Negative values and a non-positive max yield 0; any positive value gets
// at least one cell.
func BarLength(value, max decimal.Decimal, width int) int {
	if !value.IsPositive() || !max.IsPositive() || width <= 0 {
		return 0
	}
	n := int(value.Div(max).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// Render returns the chart, one bar per line
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return subtleStyle.Render("Sem dados")
	}

	max := decimal.Zero
	labelWidth := 0
	for _, b := range c.Bars {
		if b.Value.GreaterThan(max) {
			max = b.Value
		}
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(c.Title))
		sb.WriteString("\n")
	}
	for i, b := range c.Bars {
		n := BarLength(b.Value, max, c.Width)
		bar := lipgloss.NewStyle().Foreground(b.Color).Render(strings.Repeat("█", n))
		pad := strings.Repeat(" ", c.Width-n)
		label := b.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(b.Label))
		sb.WriteString(labelStyle.Render(label) + " " + bar + pad + " " + output.FormatBRL(b.Value))
		if i < len(c.Bars)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
