package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CLTInput holds the monthly figures of a formal (CLT) employment contract
type CLTInput struct {
	GrossSalary        decimal.Decimal `yaml:"gross_salary" json:"grossSalary"`
	MealAllowance      decimal.Decimal `yaml:"meal_allowance" json:"mealAllowance"`
	TransportAllowance decimal.Decimal `yaml:"transport_allowance" json:"transportAllowance"`
	HealthInsurance    decimal.Decimal `yaml:"health_insurance" json:"healthInsurance"`
	OtherBenefits      decimal.Decimal `yaml:"other_benefits" json:"otherBenefits"`
	IncludeFGTS        bool            `yaml:"include_fgts" json:"includeFGTS"`
	YearsAtCompany     int             `yaml:"years_at_company" json:"yearsAtCompany"`
	PLR                decimal.Decimal `yaml:"plr" json:"plr"`
	OtherCLTExpenses   decimal.Decimal `yaml:"other_clt_expenses" json:"otherCltExpenses"`
	DependentsCount    int             `yaml:"dependents_count" json:"dependentsCount"`
}

// AnnexSelection chooses which Simples Nacional table applies to a PJ
type AnnexSelection int

const (
	// AnnexAuto lets Fator R decide between Anexo III and Anexo V
	AnnexAuto AnnexSelection = iota
	AnnexIII
	AnnexV
	// AnnexManual uses PJInput.ManualAnnex as-is
	AnnexManual
)

// String returns the short code used in share links and YAML files
func (a AnnexSelection) String() string {
	switch a {
	case AnnexIII:
		return "3"
	case AnnexV:
		return "5"
	case AnnexManual:
		return "manual"
	default:
		return "auto"
	}
}

// ParseAnnexSelection converts a short code ("3", "iii", "5", "v", "manual",
// "auto" or "") into an AnnexSelection
func ParseAnnexSelection(s string) (AnnexSelection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return AnnexAuto, nil
	case "3", "iii", "anexo iii":
		return AnnexIII, nil
	case "5", "v", "anexo v":
		return AnnexV, nil
	case "manual":
		return AnnexManual, nil
	default:
		return AnnexAuto, fmt.Errorf("unknown annex %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (a AnnexSelection) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *AnnexSelection) UnmarshalText(text []byte) error {
	parsed, err := ParseAnnexSelection(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// PJInput holds the monthly figures of a contractor operating as a company
// under Simples Nacional
type PJInput struct {
	MonthlyRevenue  decimal.Decimal `yaml:"monthly_revenue" json:"monthlyRevenue"`
	ProLabore       decimal.Decimal `yaml:"pro_labore" json:"proLabore"`
	AccountingFee   decimal.Decimal `yaml:"accounting_fee" json:"accountingFee"`
	IsExportService bool            `yaml:"is_export_service" json:"isExportService"`
	Annex           AnnexSelection  `yaml:"annex" json:"annex"`
	ManualAnnex     *SimplesAnnex   `yaml:"manual_annex,omitempty" json:"manualAnnex,omitempty"`

	// Revenue12Months is the trailing twelve-month revenue (RBT12). Zero
	// means MonthlyRevenue * 12.
	Revenue12Months decimal.Decimal `yaml:"revenue_12_months,omitempty" json:"revenue12Months,omitempty"`
}
