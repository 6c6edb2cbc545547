package domain

import (
	"github.com/shopspring/decimal"
)

// Treatment describes how an excess sub-coverage relates to the same
// coverage on the underlying primary layer.
type Treatment string

const (
	// TreatmentFollowForm derives the excess limit and attachment
	// proportionally from the primary sublimit.
	TreatmentFollowForm Treatment = "follow_form"
	// TreatmentDifferent uses explicit our_limit/our_attachment values.
	TreatmentDifferent Treatment = "different"
	// TreatmentExclude removes the coverage from the excess layer.
	TreatmentExclude Treatment = "exclude"
)

// Valid reports whether t is a known treatment.
func (t Treatment) Valid() bool {
	switch t {
	case TreatmentFollowForm, TreatmentDifferent, TreatmentExclude:
		return true
	}
	return false
}

// Sublimit is one named coverage row on an excess structure.
type Sublimit struct {
	Coverage     string          `yaml:"coverage" json:"coverage"`
	PrimaryLimit decimal.Decimal `yaml:"primary_limit" json:"primary_limit"`
	Treatment    Treatment       `yaml:"treatment" json:"treatment"`

	// OurLimit/OurAttachment are honored only under TreatmentDifferent.
	// Switching back to follow_form discards them: the values become
	// derived, not stored.
	OurLimit      *decimal.Decimal `yaml:"our_limit,omitempty" json:"our_limit,omitempty"`
	OurAttachment *decimal.Decimal `yaml:"our_attachment,omitempty" json:"our_attachment,omitempty"`
}

// Structure is a single quote option: its tower of layers, its dates, and
// its coverage rows.
type Structure struct {
	EffectiveDate  *Date `yaml:"effective_date,omitempty" json:"effective_date,omitempty"`
	ExpirationDate *Date `yaml:"expiration_date,omitempty" json:"expiration_date,omitempty"`

	// The override pair takes precedence over the plain dates when
	// resolving a layer's effective term.
	EffectiveDateOverride  *Date `yaml:"effective_date_override,omitempty" json:"effective_date_override,omitempty"`
	ExpirationDateOverride *Date `yaml:"expiration_date_override,omitempty" json:"expiration_date_override,omitempty"`

	Tower []RawLayer `yaml:"tower" json:"tower"`

	// Coverages holds aggregate/sublimit amounts for a primary
	// structure; Sublimits holds the excess rows.
	Coverages map[string]decimal.Decimal `yaml:"coverages,omitempty" json:"coverages,omitempty"`
	Sublimits []Sublimit                 `yaml:"sublimits,omitempty" json:"sublimits,omitempty"`
}

// Submission carries the fallback policy dates used when neither a layer
// nor its structure supplies a term.
type Submission struct {
	EffectiveDate  *Date `yaml:"effective_date,omitempty" json:"effective_date,omitempty"`
	ExpirationDate *Date `yaml:"expiration_date,omitempty" json:"expiration_date,omitempty"`
}

// Program is the root input record: one structure plus the submission it
// belongs to and the identifier of the carrier whose layer the allocation
// engine treats as "ours".
type Program struct {
	Name       string      `yaml:"name,omitempty" json:"name,omitempty"`
	OwnCarrier string      `yaml:"own_carrier,omitempty" json:"own_carrier,omitempty"`
	Submission *Submission `yaml:"submission,omitempty" json:"submission,omitempty"`
	Structure  Structure   `yaml:"structure" json:"structure"`
}

// Configuration is the top-level shape of an input file.
type Configuration struct {
	Program Program `yaml:"program" json:"program"`
}

// EffectiveStart returns the structure-level start date: the override when
// present, else the plain effective date.
func (s *Structure) EffectiveStart() *Date {
	if s.EffectiveDateOverride != nil {
		return s.EffectiveDateOverride
	}
	return s.EffectiveDate
}

// EffectiveEnd returns the structure-level end date: the override when
// present, else the plain expiration date.
func (s *Structure) EffectiveEnd() *Date {
	if s.ExpirationDateOverride != nil {
		return s.ExpirationDateOverride
	}
	return s.ExpirationDate
}
