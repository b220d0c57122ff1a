package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/devnagringa/calculadoras/internal/domain"
)

// Report is what a formatter renders. Exactly one of the result fields is
// expected to be set, except Link which may accompany any of them.
type Report struct {
	CLT        *domain.CalculationResult `json:"clt,omitempty"`
	PJ         *domain.CalculationResult `json:"pj,omitempty"`
	Comparison *domain.ComparisonResult  `json:"comparison,omitempty"`
	Investment *domain.InvestmentResult  `json:"investment,omitempty"`
	BreakEven  *domain.BreakEvenResult   `json:"breakEven,omitempty"`
	Link       string                    `json:"link,omitempty"`
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(r *Report) ([]byte, error)
}

// FormatterFunc adapts a function to Formatter
type FormatterFunc struct {
	ID string
	F  func(r *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(r *Report) ([]byte, error) { return f.F(r) }

var formatters = map[string]Formatter{}

var aliases = map[string]string{
	"text":   "console",
	"table":  "console",
	"pretty": "json",
}

func init() {
	register(ConsoleFormatter{})
	register(CSVFormatter{})
	register(JSONFormatter{Pretty: true})
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

// GetFormatterByName resolves a name or alias, returning nil when unknown
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names in order
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases in order
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders r and writes it to a timestamped file in the
// working directory, returning the file name
func WriteFormatted(f Formatter, r *Report, ext string) (string, error) {
	data, err := f.Format(r)
	if err != nil {
		return "", fmt.Errorf("failed to format report: %w", err)
	}
	filename := fmt.Sprintf("calculo_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
