package compare

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/devnagringa/calculadoras/internal/output"
	"github.com/shopspring/decimal"
)

// Formatter renders a comparison set
type Formatter interface {
	Format(compSet *ComparisonSet) (string, error)
}

// GetFormatter resolves the same names and aliases as the report formatters
func GetFormatter(name string) (Formatter, error) {
	switch name {
	case "console", "text", "table":
		return &TableFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "json", "pretty":
		return &JSONFormatter{Pretty: true}, nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

const (
	tableWidth = 78
	nameWidth  = 18
	numWidth   = 14
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

func (tf *TableFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder

	sb.WriteString("COMPARAÇÃO DE CENÁRIOS\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	fmt.Fprintf(&sb, "%-*s %*s %*s %*s %*s\n",
		nameWidth, "Cenário",
		numWidth, "Líquido CLT",
		numWidth, "Líquido PJ",
		numWidth, "PJ - CLT",
		numWidth-4, "Anexo")
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, true))
	}
	for i := range compSet.AlternativeResults {
		sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], false))
	}
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nDIFERENÇA PARA O CENÁRIO INFORMADO\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, alt := range compSet.AlternativeResults {
			fmt.Fprintf(&sb, "%s (%s)\n", alt.ScenarioName, alt.Description)
			fmt.Fprintf(&sb, "  CLT: %s   PJ: %s\n", signedBRL(alt.CLTDiffFromBase), signedBRL(alt.PJDiffFromBase))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, rec := range compSet.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
	}

	return sb.String(), nil
}

func (tf *TableFormatter) formatRow(r *ScenarioResult, isBase bool) string {
	name := r.ScenarioName
	if isBase {
		name += " *"
	}
	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, truncate(name, nameWidth),
		numWidth, output.FormatBRL(r.CLTNet),
		numWidth, output.FormatBRL(r.PJNet),
		numWidth, output.FormatBRL(r.Difference),
		numWidth-4, r.PJAnnex)
}

func signedBRL(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatBRL(d)
	}
	return output.FormatBRL(d)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario", "Type", "Description", "CLT Net", "PJ Net", "Difference",
		"PJ Annex", "PJ Effective Rate", "CLT Diff from Base", "PJ Diff from Base", "Link",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(r *ScenarioResult, scenarioType string) []string {
	return []string{
		r.ScenarioName,
		scenarioType,
		r.Description,
		r.CLTNet.StringFixed(2),
		r.PJNet.StringFixed(2),
		r.Difference.StringFixed(2),
		r.PJAnnex,
		r.PJEffectiveRate.StringFixed(2),
		r.CLTDiffFromBase.StringFixed(2),
		r.PJDiffFromBase.StringFixed(2),
		r.Link,
	}
}

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
