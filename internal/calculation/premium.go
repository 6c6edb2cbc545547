package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/quotetool/towercalc/internal/domain"
	"github.com/quotetool/towercalc/pkg/dateutil"
)

// ShortTermThreshold is the pro-rata factor below which a term counts as
// short (roughly 347 days). Consumers use the flag to decide whether an
// annualization disclosure is required; the engine exposes it so they do
// not duplicate the cutoff.
var ShortTermThreshold = decimal.NewFromFloat(0.95)

// ProRataFactor returns the fraction of a year a term covers, as
// ceiling-rounded days over 365.
func ProRataFactor(start, end domain.Date) decimal.Decimal {
	days := dateutil.DaysBetween(start.Time, end.Time)
	return decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(dateutil.DaysInYear))
}

// TheoreticalProRata scales an annual premium by the term's pro-rata
// factor, rounded to whole money units.
func TheoreticalProRata(annual decimal.Decimal, start, end domain.Date) decimal.Decimal {
	return annual.Mul(ProRataFactor(start, end)).Round(0)
}

// IsShortTerm reports whether the term's pro-rata factor falls below the
// short-term threshold.
func IsShortTerm(start, end domain.Date) bool {
	return ProRataFactor(start, end).LessThan(ShortTermThreshold)
}

// PremiumTerms is the input to ActualPremium.
type PremiumTerms struct {
	Annual  *decimal.Decimal
	Start   *domain.Date
	End     *domain.Date
	Basis   domain.PremiumBasis
	Minimum *decimal.Decimal
	Flat    *decimal.Decimal
}

// ActualPremium derives the charged premium from the annual baseline under
// the given basis. Returns nil when there is no annual premium to work
// from. When the term dates are missing, proration cannot run and the
// annual amount passes through unchanged.
func ActualPremium(in PremiumTerms) *decimal.Decimal {
	if in.Annual == nil || in.Annual.IsZero() {
		return nil
	}
	annual := *in.Annual

	prorated := annual
	if in.Start != nil && in.End != nil {
		prorated = TheoreticalProRata(annual, *in.Start, *in.End)
	}

	switch in.Basis {
	case domain.BasisProRata:
		return domain.DecimalPtr(prorated)
	case domain.BasisMinimum:
		minimum := decimal.Zero
		if in.Minimum != nil {
			minimum = *in.Minimum
		}
		if prorated.GreaterThan(minimum) {
			return domain.DecimalPtr(prorated)
		}
		return domain.DecimalPtr(minimum)
	case domain.BasisFlat:
		if in.Flat != nil {
			return domain.DecimalPtr(*in.Flat)
		}
		return domain.DecimalPtr(annual)
	default:
		// Annual basis ignores the dates entirely.
		return domain.DecimalPtr(annual)
	}
}

// LayerPremiumTerms builds the ActualPremium input for a layer using its
// resolved term.
func LayerPremiumTerms(layer *domain.Layer, term domain.Term) PremiumTerms {
	return PremiumTerms{
		Annual:  layer.AnnualPremium,
		Start:   term.Start,
		End:     term.End,
		Basis:   layer.PremiumBasis,
		Minimum: layer.MinimumPremium,
		Flat:    layer.FlatPremium,
	}
}

// PremiumVariance reports how far a layer's actual premium sits from the
// theoretical pro-rata figure for its resolved term. Zero when either the
// annual or the actual premium is missing: variance is only meaningful
// when both exist.
func PremiumVariance(layer *domain.Layer, structure *domain.Structure, submission *domain.Submission) decimal.Decimal {
	if layer == nil || layer.AnnualPremium == nil || layer.AnnualPremium.IsZero() ||
		layer.ActualPremium == nil || layer.ActualPremium.IsZero() {
		return decimal.Zero
	}
	term := EffectiveTerm(layer, structure, submission)
	if !term.Resolved() {
		return decimal.Zero
	}
	theoretical := TheoreticalProRata(*layer.AnnualPremium, *term.Start, *term.End)
	return layer.ActualPremium.Sub(theoretical)
}
