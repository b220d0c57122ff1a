package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.BrazilianPortuguese)
)

// FormatBRL renders an amount as Brazilian reais, e.g. "R$ 1.234,56"
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + formatNumber(amount.Abs())
}

// FormatPercentage renders a value already expressed in percent, e.g. "16,89%"
func FormatPercentage(percent decimal.Decimal) string {
	return formatNumber(percent) + "%"
}

// formatNumber prints two decimals with pt-BR separators
func formatNumber(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
