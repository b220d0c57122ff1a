package config

import (
	"fmt"
	"os"

	"github.com/devnagringa/calculadoras/internal/calculation"
	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// continuityTolerance is the largest jump in tax allowed where two brackets meet
var continuityTolerance = decimal.RequireFromString("0.05")

// InputParser handles parsing of tax rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads tax rules from a YAML file. Keys missing from the file
// keep the compiled-in 2025 values, so a file may override a single table.
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML tax rules on top of the defaults and validates them
func (ip *InputParser) Parse(data []byte) (*domain.TaxRules, error) {
	rules := calculation.DefaultRules2025()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("tax rules validation failed: %w", err)
	}

	return &rules, nil
}

// SaveToFile writes rules as YAML, producing a file LoadFromFile accepts
func (ip *InputParser) SaveToFile(filename string, rules domain.TaxRules) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ValidateRules checks every table and constant
func (ip *InputParser) ValidateRules(rules *domain.TaxRules) error {
	tables := []struct {
		name     string
		brackets []domain.TaxBracket
	}{
		{"inss", rules.INSS},
		{"irrf", rules.IRRF},
		{"plr", rules.PLR},
	}
	for _, table := range tables {
		if err := ip.validateTable(table.brackets); err != nil {
			return fmt.Errorf("%s table: %w", table.name, err)
		}
	}

	if err := ip.validateINSSCeiling(rules.INSS); err != nil {
		return fmt.Errorf("inss table: %w", err)
	}

	for _, annex := range []domain.SimplesAnnex{rules.AnnexIII, rules.AnnexV} {
		if err := ip.validateAnnex(annex); err != nil {
			return fmt.Errorf("annex %q: %w", annex.Name, err)
		}
	}

	if rules.DependentDeduction.IsNegative() {
		return fmt.Errorf("dependent deduction cannot be negative")
	}
	if err := validateFraction("fgts rate", rules.FGTSRate); err != nil {
		return err
	}
	if err := validateFraction("fgts penalty rate", rules.FGTSPenaltyRate); err != nil {
		return err
	}
	if !rules.FatorRThreshold.IsPositive() || rules.FatorRThreshold.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("fator R threshold must be in (0, 1]")
	}

	return nil
}

// validateTable enforces ascending bounds, an unbounded last row and no
// jump in tax where consecutive brackets meet
func (ip *InputParser) validateTable(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}

	for i, b := range brackets {
		last := i == len(brackets)-1
		if last && !b.Unbounded {
			return fmt.Errorf("last bracket must be unbounded")
		}
		if !last && b.Unbounded {
			return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
		}
		if err := validateFraction(fmt.Sprintf("bracket %d rate", i), b.Rate); err != nil {
			return err
		}
		if last {
			continue
		}
		if !b.UpperBound.IsPositive() {
			return fmt.Errorf("bracket %d: upper bound must be positive", i)
		}
		if i > 0 && !b.UpperBound.GreaterThan(brackets[i-1].UpperBound) {
			return fmt.Errorf("bracket %d: upper bound %s is not above %s", i, b.UpperBound, brackets[i-1].UpperBound)
		}

		next := brackets[i+1]
		below := b.UpperBound.Mul(b.Rate).Sub(b.Deduction)
		above := b.UpperBound.Mul(next.Rate).Sub(next.Deduction)
		if below.Sub(above).Abs().GreaterThan(continuityTolerance) {
			return fmt.Errorf("bracket %d: tax jumps from %s to %s at %s", i, below.StringFixed(2), above.StringFixed(2), b.UpperBound)
		}
	}

	return nil
}

// validateINSSCeiling requires the INSS table to end in a flat contribution
func (ip *InputParser) validateINSSCeiling(brackets []domain.TaxBracket) error {
	top := brackets[len(brackets)-1]
	if !top.Rate.IsZero() {
		return fmt.Errorf("last bracket must have rate 0 so the ceiling is a fixed contribution")
	}
	if !top.Deduction.IsNegative() {
		return fmt.Errorf("last bracket deduction must be the negated ceiling contribution")
	}
	return nil
}

func (ip *InputParser) validateAnnex(annex domain.SimplesAnnex) error {
	if annex.Name == "" {
		return fmt.Errorf("name is required")
	}
	if err := ip.validateTable(annex.TaxBrackets()); err != nil {
		return err
	}
	for i, b := range annex.Brackets {
		if err := validateFraction(fmt.Sprintf("bracket %d ISS share", i), b.ISSShare); err != nil {
			return err
		}
	}
	return nil
}

func validateFraction(name string, value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}
