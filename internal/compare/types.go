// Package compare runs a base calculator form against what-if variants and
// reports how each one moves the CLT and PJ take-home.
package compare

import (
	"github.com/shopspring/decimal"
)

// ScenarioResult holds the metrics of one evaluated form
type ScenarioResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`
	Link         string `json:"link"`

	CLTNet          decimal.Decimal `json:"cltNet"`
	PJNet           decimal.Decimal `json:"pjNet"`
	Difference      decimal.Decimal `json:"difference"` // PJ - CLT
	PJAnnex         string          `json:"pjAnnex,omitempty"`
	PJEffectiveRate decimal.Decimal `json:"pjEffectiveRate"`

	// Comparison to base
	CLTDiffFromBase decimal.Decimal `json:"cltDiffFromBase"`
	PJDiffFromBase  decimal.Decimal `json:"pjDiffFromBase"`
}

// BestNet is the larger of the two take-home values
func (r ScenarioResult) BestNet() decimal.Decimal {
	if r.PJNet.GreaterThan(r.CLTNet) {
		return r.PJNet
	}
	return r.CLTNet
}

// ComparisonSet is a base scenario plus its alternatives
type ComparisonSet struct {
	BaseResult         *ScenarioResult  `json:"baseResult"`
	AlternativeResults []ScenarioResult `json:"alternativeResults"`
	Recommendations    []string         `json:"recommendations"`
}

// Best returns the scenario with the highest take-home in either regime,
// preferring the base on ties
func (cs *ComparisonSet) Best() *ScenarioResult {
	best := cs.BaseResult
	for i := range cs.AlternativeResults {
		alt := &cs.AlternativeResults[i]
		if best == nil || alt.BestNet().GreaterThan(best.BestNet()) {
			best = alt
		}
	}
	return best
}
