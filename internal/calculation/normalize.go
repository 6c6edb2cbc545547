package calculation

import (
	"github.com/quotetool/towercalc/internal/domain"
)

// Normalize canonicalizes a raw persisted layer. Records written before the
// annual/actual premium split carry a single premium field; it seeds both
// new fields when they are absent, and the basis defaults to annual.
// Missing fields degrade to nil, never to an error.
func Normalize(raw domain.RawLayer) domain.Layer {
	layer := domain.Layer{
		Limit:          raw.Limit,
		QuotaShare:     raw.QuotaShare,
		Retention:      raw.Retention,
		Carrier:        raw.Carrier,
		AnnualPremium:  raw.AnnualPremium,
		ActualPremium:  raw.ActualPremium,
		PremiumBasis:   raw.PremiumBasis,
		MinimumPremium: raw.MinimumPremium,
		FlatPremium:    raw.FlatPremium,
		TermStart:      raw.TermStart,
		TermEnd:        raw.TermEnd,
	}
	if layer.AnnualPremium == nil {
		layer.AnnualPremium = raw.Premium
	}
	if layer.ActualPremium == nil {
		layer.ActualPremium = raw.Premium
	}
	if layer.PremiumBasis == "" {
		layer.PremiumBasis = domain.BasisAnnual
	}
	return layer
}

// NormalizeTower normalizes every layer of a raw tower, preserving order.
func NormalizeTower(raw []domain.RawLayer) []domain.Layer {
	tower := make([]domain.Layer, len(raw))
	for i, r := range raw {
		tower[i] = Normalize(r)
	}
	return tower
}

// Serialize maps a canonical layer back to its persisted shape. The legacy
// premium field is back-filled from the actual premium so older readers
// keep working. Term fields stay nil when unset; the omitempty tags drop
// them entirely, which keeps "inherits" distinguishable from "explicitly
// cleared" in storage formats that drop absent keys.
func Serialize(layer domain.Layer) domain.RawLayer {
	return domain.RawLayer{
		Limit:          layer.Limit,
		QuotaShare:     layer.QuotaShare,
		Retention:      layer.Retention,
		Carrier:        layer.Carrier,
		Premium:        layer.ActualPremium,
		AnnualPremium:  layer.AnnualPremium,
		ActualPremium:  layer.ActualPremium,
		PremiumBasis:   layer.PremiumBasis,
		MinimumPremium: layer.MinimumPremium,
		FlatPremium:    layer.FlatPremium,
		TermStart:      layer.TermStart,
		TermEnd:        layer.TermEnd,
		Attachment:     layer.Attachment,
	}
}

// SerializeTower serializes every layer of a tower, preserving order.
func SerializeTower(tower []domain.Layer) []domain.RawLayer {
	raw := make([]domain.RawLayer, len(tower))
	for i, l := range tower {
		raw[i] = Serialize(l)
	}
	return raw
}
