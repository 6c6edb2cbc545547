package domain

import (
	"github.com/shopspring/decimal"
)

// LayerRow is one computed line of a program report.
type LayerRow struct {
	Index      int              `json:"index"`
	Carrier    string           `json:"carrier,omitempty"`
	Limit      decimal.Decimal  `json:"limit"`
	QuotaShare *decimal.Decimal `json:"quota_share,omitempty"`
	Attachment decimal.Decimal  `json:"attachment"`
	IsOwn      bool             `json:"is_own,omitempty"`

	Term Term `json:"term"`

	AnnualPremium      *decimal.Decimal `json:"annual_premium,omitempty"`
	ActualPremium      *decimal.Decimal `json:"actual_premium,omitempty"`
	TheoreticalProRata *decimal.Decimal `json:"theoretical_pro_rata,omitempty"`
	Variance           decimal.Decimal  `json:"variance"`

	ILF           *decimal.Decimal `json:"ilf,omitempty"`
	CumulativeILF *decimal.Decimal `json:"cumulative_ilf,omitempty"`
}

// SublimitRow is one resolved sub-coverage line of a program report.
type SublimitRow struct {
	Coverage   string           `json:"coverage"`
	Treatment  Treatment        `json:"treatment"`
	Limit      *decimal.Decimal `json:"limit"`
	Attachment *decimal.Decimal `json:"attachment"`
}

// ProgramReport is the full computed view of one program: every derived
// value the engine produces, as plain data for the caller to render or
// persist.
type ProgramReport struct {
	Name string `json:"name,omitempty"`

	Layers []LayerRow  `json:"layers"`
	Blocks []DateBlock `json:"blocks"`

	// Tower-level term metrics, taken from the primary layer's resolved
	// term.
	ProRataFactor decimal.Decimal `json:"pro_rata_factor"`
	ShortTerm     bool            `json:"short_term"`

	Sublimits []SublimitRow `json:"sublimits,omitempty"`
}
