package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/quotetool/towercalc/internal/domain"
)

// ilfOne is the ILF of a layer relative to itself.
var ilfOne = decimal.NewFromInt(1)

// NormalizedILF computes the increased-limit factor of the target layer:
// its annualized premium over the primary's. Always annualized premiums,
// never actual ones; actual premiums on non-concurrent layers cover
// different term lengths and their ratio means nothing. Returns 1 for the
// primary itself and nil when the primary has no annual premium to divide
// by.
func NormalizedILF(tower []domain.Layer, target int) *decimal.Decimal {
	if len(tower) == 0 || target >= len(tower) {
		return nil
	}
	if target <= 0 {
		return domain.DecimalPtr(ilfOne)
	}
	primary := tower[0].AnnualizedPremium()
	if primary == nil {
		return nil
	}
	layer := tower[target].AnnualizedPremium()
	if layer == nil {
		return nil
	}
	return domain.DecimalPtr(layer.Div(*primary))
}

// CumulativeILF computes the ILF of the whole stack up to and including the
// target layer: the sum of annualized premiums for indices 0..target over
// the primary's annualized premium.
func CumulativeILF(tower []domain.Layer, target int) *decimal.Decimal {
	if len(tower) == 0 || target < 0 || target >= len(tower) {
		return nil
	}
	primary := tower[0].AnnualizedPremium()
	if primary == nil {
		return nil
	}
	sum := decimal.Zero
	for i := 0; i <= target; i++ {
		if p := tower[i].AnnualizedPremium(); p != nil {
			sum = sum.Add(*p)
		}
	}
	return domain.DecimalPtr(sum.Div(*primary))
}

// RateChange returns the year-over-year premium change in percent, nil
// when there is no prior premium to compare against.
func RateChange(prior, current *decimal.Decimal) *decimal.Decimal {
	if prior == nil || prior.IsZero() || current == nil {
		return nil
	}
	change := current.Sub(*prior).Div(*prior).Mul(decimal.NewFromInt(100))
	return domain.DecimalPtr(change)
}

// LayerRateChange pairs a prior-term tower with the current one by index
// and reports the annualized rate change for one layer. Either tower
// missing the index yields nil.
func LayerRateChange(prior, current []domain.Layer, index int) *decimal.Decimal {
	if index < 0 || index >= len(prior) || index >= len(current) {
		return nil
	}
	return RateChange(prior[index].AnnualizedPremium(), current[index].AnnualizedPremium())
}
