package form

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// plainNumber is what remains after locale separators are normalised
	plainNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)
	// groupedThousands is a single dot followed by exactly three digits
	groupedThousands = regexp.MustCompile(`^-?[1-9]\d{0,2}\.\d{3}$`)
)

// ParseDecimal reads a number typed in pt-BR or plain notation.
//
// A comma is the decimal separator and dots before it group thousands
// ("1.234,56"). Without a comma, several dots group thousands ("1.234.567")
// and so does a single dot before exactly three digits ("5.000"); any other
// single dot is a decimal point ("12.5", "0.075"). A trailing separator
// ("12," or "12.") is accepted as the user is still typing.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return decimal.Zero, false
	}

	switch {
	case strings.Contains(s, ","):
		if strings.Count(s, ",") > 1 {
			return decimal.Zero, false
		}
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1, groupedThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	if !plainNumber.MatchString(s) {
		return decimal.Zero, false
	}
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseNumberString validates raw as a number and returns it untouched so
// partially typed input survives. An empty raw with an empty fallback stays
// empty, which marks the field as unset; anything that does not parse
// yields fallback.
func ParseNumberString(raw, fallback string) string {
	if raw == "" && fallback == "" {
		return ""
	}
	if _, ok := ParseDecimal(raw); !ok {
		return fallback
	}
	return raw
}

// ParseBoolean maps "1" to true and "0" to false; anything else is fallback
func ParseBoolean(raw string, fallback bool) bool {
	switch raw {
	case "1":
		return true
	case "0":
		return false
	default:
		return fallback
	}
}

// FormatBoolean is the inverse of ParseBoolean
func FormatBoolean(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
