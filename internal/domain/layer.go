package domain

import (
	"github.com/shopspring/decimal"
)

// PremiumBasis is the rule used to derive the charged premium from the
// annual baseline.
type PremiumBasis string

const (
	BasisAnnual  PremiumBasis = "annual"
	BasisProRata PremiumBasis = "pro_rata"
	BasisMinimum PremiumBasis = "minimum"
	BasisFlat    PremiumBasis = "flat"
)

// Valid reports whether b is one of the four known bases.
func (b PremiumBasis) Valid() bool {
	switch b {
	case BasisAnnual, BasisProRata, BasisMinimum, BasisFlat:
		return true
	}
	return false
}

// Layer is one slice of an insurance program's coverage stack, in canonical
// form. A tower is an ordered []Layer with index 0 the primary (lowest
// attachment); the attachment and term algorithms walk the slice upward and
// assume no gaps.
type Layer struct {
	// Limit is the face amount this layer provides. For a quota-share
	// layer it is the layer's share, not the full layer size.
	Limit decimal.Decimal `yaml:"limit" json:"limit"`

	// QuotaShare, when set, is the full size of the shared layer this
	// entry participates in. Contiguous layers with an equal QuotaShare
	// form one group occupying a single attachment step.
	QuotaShare *decimal.Decimal `yaml:"quota_share,omitempty" json:"quota_share,omitempty"`

	// Retention is the self-insured retention; meaningful only on the
	// primary layer.
	Retention *decimal.Decimal `yaml:"retention,omitempty" json:"retention,omitempty"`

	Carrier string `yaml:"carrier,omitempty" json:"carrier,omitempty"`

	AnnualPremium *decimal.Decimal `yaml:"annual_premium,omitempty" json:"annual_premium,omitempty"`
	ActualPremium *decimal.Decimal `yaml:"actual_premium,omitempty" json:"actual_premium,omitempty"`
	PremiumBasis  PremiumBasis     `yaml:"premium_basis,omitempty" json:"premium_basis,omitempty"`

	// MinimumPremium and FlatPremium feed the minimum and flat bases.
	MinimumPremium *decimal.Decimal `yaml:"minimum_premium,omitempty" json:"minimum_premium,omitempty"`
	FlatPremium    *decimal.Decimal `yaml:"flat_premium,omitempty" json:"flat_premium,omitempty"`

	// TermStart/TermEnd override the inherited term. nil means inherit.
	// TermStart may be set alone; an absent TermEnd always falls back to
	// the policy or structure expiration.
	TermStart *Date `yaml:"term_start,omitempty" json:"term_start,omitempty"`
	TermEnd   *Date `yaml:"term_end,omitempty" json:"term_end,omitempty"`

	// Attachment is derived by RecalculateAttachments. It is never an
	// input: attachment is always recomputed from limits and quota
	// shares, so stale stored values cannot leak through.
	Attachment decimal.Decimal `yaml:"attachment,omitempty" json:"attachment,omitempty"`
}

// RawLayer is the persisted shape of a layer, including the legacy single
// premium field that predates the annual/actual split. The normalizer maps
// RawLayer to Layer and back; nothing else in the engine touches Premium.
type RawLayer struct {
	Limit          decimal.Decimal  `yaml:"limit" json:"limit"`
	QuotaShare     *decimal.Decimal `yaml:"quota_share,omitempty" json:"quota_share,omitempty"`
	Retention      *decimal.Decimal `yaml:"retention,omitempty" json:"retention,omitempty"`
	Carrier        string           `yaml:"carrier,omitempty" json:"carrier,omitempty"`
	Premium        *decimal.Decimal `yaml:"premium,omitempty" json:"premium,omitempty"`
	AnnualPremium  *decimal.Decimal `yaml:"annual_premium,omitempty" json:"annual_premium,omitempty"`
	ActualPremium  *decimal.Decimal `yaml:"actual_premium,omitempty" json:"actual_premium,omitempty"`
	PremiumBasis   PremiumBasis     `yaml:"premium_basis,omitempty" json:"premium_basis,omitempty"`
	MinimumPremium *decimal.Decimal `yaml:"minimum_premium,omitempty" json:"minimum_premium,omitempty"`
	FlatPremium    *decimal.Decimal `yaml:"flat_premium,omitempty" json:"flat_premium,omitempty"`
	TermStart      *Date            `yaml:"term_start,omitempty" json:"term_start,omitempty"`
	TermEnd        *Date            `yaml:"term_end,omitempty" json:"term_end,omitempty"`
	Attachment     decimal.Decimal  `yaml:"attachment,omitempty" json:"attachment,omitempty"`
}

// HasQuotaShare reports whether the layer participates in a quota-share
// group.
func (l *Layer) HasQuotaShare() bool { return l.QuotaShare != nil }

// SharesQuotaWith reports whether two layers belong to the same quota-share
// group, i.e. both carry an equal QuotaShare value.
func (l *Layer) SharesQuotaWith(other *Layer) bool {
	return l.QuotaShare != nil && other.QuotaShare != nil && l.QuotaShare.Equal(*other.QuotaShare)
}

// AnnualizedPremium returns the premium figure suitable for cross-layer
// ratios: the annual baseline when present, otherwise the actual premium.
// ILF math must never use a prorated actual when an annual exists, since
// layers with different term lengths would produce meaningless ratios.
func (l *Layer) AnnualizedPremium() *decimal.Decimal {
	if l.AnnualPremium != nil && !l.AnnualPremium.IsZero() {
		return l.AnnualPremium
	}
	if l.ActualPremium != nil && !l.ActualPremium.IsZero() {
		return l.ActualPremium
	}
	return nil
}

// DecimalPtr returns a pointer copy, for optional money fields.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
