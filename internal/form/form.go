package form

import (
	"net/url"
	"strings"

	"github.com/devnagringa/calculadoras/internal/domain"
	"github.com/shopspring/decimal"
)

// NumericField keeps what the user typed next to the value it parsed to.
// Raw is echoed back to inputs and share links; Value feeds the calculators.
type NumericField struct {
	Raw   string
	Value decimal.Decimal
}

// NewNumericField builds a field from raw, leaving it unset when raw does
// not parse
func NewNumericField(raw string) NumericField {
	var f NumericField
	f.Set(raw)
	return f
}

// Set applies a keystroke. Empty input clears the field; invalid input
// keeps the previous raw string.
func (f *NumericField) Set(raw string) {
	if raw == "" {
		*f = NumericField{}
		return
	}
	f.Raw = ParseNumberString(raw, f.Raw)
	f.Value, _ = ParseDecimal(f.Raw)
}

// IsSet reports whether the field holds a number
func (f NumericField) IsSet() bool {
	return f.Raw != ""
}

// Form is the calculator form state shared by the CLI, TUI and HTTP surfaces
type Form struct {
	// CLT
	GrossSalary        NumericField
	MealAllowance      NumericField
	TransportAllowance NumericField
	HealthInsurance    NumericField
	OtherBenefits      NumericField
	IncludeFGTS        bool
	YearsAtCompany     NumericField
	PLR                NumericField
	OtherCLTExpenses   NumericField
	DependentsCount    NumericField

	// PJ
	MonthlyRevenue  NumericField
	ProLabore       NumericField
	AccountingFee   NumericField
	IsExportService bool
	Annex           domain.AnnexSelection
	Revenue12Months NumericField
}

// Default returns the empty form. Every numeric field starts unset, both
// flags off and the annex chosen by Fator R.
func Default() Form {
	return Form{Annex: domain.AnnexAuto}
}

// NumericKey ties a share-link abbreviation to a form field
type NumericKey struct {
	Key   string
	Name  string
	Field func(*Form) *NumericField
}

// NumericKeys is the fixed abbreviation table for numeric fields. Published
// links depend on these keys, so entries may be added but never renamed.
var NumericKeys = []NumericKey{
	{"gs", "grossSalary", func(f *Form) *NumericField { return &f.GrossSalary }},
	{"va", "mealAllowance", func(f *Form) *NumericField { return &f.MealAllowance }},
	{"vt", "transportAllowance", func(f *Form) *NumericField { return &f.TransportAllowance }},
	{"ps", "healthInsurance", func(f *Form) *NumericField { return &f.HealthInsurance }},
	{"ob", "otherBenefits", func(f *Form) *NumericField { return &f.OtherBenefits }},
	{"tc", "yearsAtCompany", func(f *Form) *NumericField { return &f.YearsAtCompany }},
	{"plr", "plr", func(f *Form) *NumericField { return &f.PLR }},
	{"oe", "otherCltExpenses", func(f *Form) *NumericField { return &f.OtherCLTExpenses }},
	{"dc", "dependentsCount", func(f *Form) *NumericField { return &f.DependentsCount }},
	{"fp", "monthlyRevenue", func(f *Form) *NumericField { return &f.MonthlyRevenue }},
	{"pl", "proLabore", func(f *Form) *NumericField { return &f.ProLabore }},
	{"ct", "accountingFee", func(f *Form) *NumericField { return &f.AccountingFee }},
	{"f12", "revenue12Months", func(f *Form) *NumericField { return &f.Revenue12Months }},
}

// Flag keys
const (
	KeyIncludeFGTS = "fgts"
	KeyExport      = "ex"
	KeyAnnex       = "an"
)

// LookupKey finds a numeric key by abbreviation or by field name
func LookupKey(name string) (NumericKey, bool) {
	for _, k := range NumericKeys {
		if k.Key == name || strings.EqualFold(k.Name, name) {
			return k, true
		}
	}
	return NumericKey{}, false
}

// Values encodes the fields that differ from Default
func (f Form) Values() url.Values {
	defaults := Default()
	values := url.Values{}

	for _, k := range NumericKeys {
		field := k.Field(&f)
		if field.Raw != k.Field(&defaults).Raw {
			values.Set(k.Key, field.Raw)
		}
	}
	if f.IncludeFGTS != defaults.IncludeFGTS {
		values.Set(KeyIncludeFGTS, FormatBoolean(f.IncludeFGTS))
	}
	if f.IsExportService != defaults.IsExportService {
		values.Set(KeyExport, FormatBoolean(f.IsExportService))
	}
	// A manual table cannot travel in a link
	if f.Annex == domain.AnnexIII || f.Annex == domain.AnnexV {
		values.Set(KeyAnnex, f.Annex.String())
	}
	return values
}

// Encode returns the minimal query string for f, without the leading "?"
func (f Form) Encode() string {
	return f.Values().Encode()
}

// DefaultShareBase is the calculator page share links point to
const DefaultShareBase = "https://devnagringa.com/calculadora-clt-pj"

// Link returns the share link for f on page base
func (f Form) Link(base string) string {
	if base == "" {
		base = DefaultShareBase
	}
	if q := f.Encode(); q != "" {
		return base + "?" + q
	}
	return base
}

// Decode rebuilds a form from a query string. A leading "?" is ignored,
// unknown keys are skipped, and missing or invalid values keep defaults.
func Decode(query string) Form {
	// ParseQuery keeps the pairs it could read even when it reports an error
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	return FromValues(values)
}

// FromValues is Decode for already parsed values
func FromValues(values url.Values) Form {
	f := Default()
	for _, k := range NumericKeys {
		if raw := values.Get(k.Key); raw != "" {
			k.Field(&f).Set(raw)
		}
	}
	f.IncludeFGTS = ParseBoolean(values.Get(KeyIncludeFGTS), f.IncludeFGTS)
	f.IsExportService = ParseBoolean(values.Get(KeyExport), f.IsExportService)
	if annex, err := domain.ParseAnnexSelection(values.Get(KeyAnnex)); err == nil && annex != domain.AnnexManual {
		f.Annex = annex
	}
	return f
}

// CLTInput converts the form for the CLT calculator. Negative amounts and
// counts become zero.
func (f Form) CLTInput() domain.CLTInput {
	return domain.CLTInput{
		GrossSalary:        nonNegative(f.GrossSalary.Value),
		MealAllowance:      nonNegative(f.MealAllowance.Value),
		TransportAllowance: nonNegative(f.TransportAllowance.Value),
		HealthInsurance:    nonNegative(f.HealthInsurance.Value),
		OtherBenefits:      nonNegative(f.OtherBenefits.Value),
		IncludeFGTS:        f.IncludeFGTS,
		YearsAtCompany:     count(f.YearsAtCompany.Value),
		PLR:                nonNegative(f.PLR.Value),
		OtherCLTExpenses:   nonNegative(f.OtherCLTExpenses.Value),
		DependentsCount:    count(f.DependentsCount.Value),
	}
}

// PJInput converts the form for the PJ calculator
func (f Form) PJInput() domain.PJInput {
	return domain.PJInput{
		MonthlyRevenue:  nonNegative(f.MonthlyRevenue.Value),
		ProLabore:       nonNegative(f.ProLabore.Value),
		AccountingFee:   nonNegative(f.AccountingFee.Value),
		IsExportService: f.IsExportService,
		Annex:           f.Annex,
		Revenue12Months: nonNegative(f.Revenue12Months.Value),
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func count(d decimal.Decimal) int {
	if d.IsNegative() {
		return 0
	}
	return int(d.IntPart())
}
