package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRules gathers every table and constant the calculators depend on.
// Defaults are compiled in; a YAML file with the same shape can replace them.
type TaxRules struct {
	Year               int             `yaml:"year" json:"year"`
	INSS               []TaxBracket    `yaml:"inss" json:"inss"`
	IRRF               []TaxBracket    `yaml:"irrf" json:"irrf"`
	PLR                []TaxBracket    `yaml:"plr" json:"plr"`
	DependentDeduction decimal.Decimal `yaml:"dependent_deduction" json:"dependentDeduction"`
	FGTSRate           decimal.Decimal `yaml:"fgts_rate" json:"fgtsRate"`
	FGTSPenaltyRate    decimal.Decimal `yaml:"fgts_penalty_rate" json:"fgtsPenaltyRate"`
	FatorRThreshold    decimal.Decimal `yaml:"fator_r_threshold" json:"fatorRThreshold"`
	AnnexIII           SimplesAnnex    `yaml:"annex_iii" json:"annexIII"`
	AnnexV             SimplesAnnex    `yaml:"annex_v" json:"annexV"`
}
