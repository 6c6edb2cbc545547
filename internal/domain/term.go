package domain

// TermSource names the level of the inheritance chain that supplied a
// resolved term.
type TermSource string

const (
	TermSourceLayer      TermSource = "layer"
	TermSourceStructure  TermSource = "structure"
	TermSourceSubmission TermSource = "submission"
	// TermSourceNone means no level supplied both dates; the term is TBD,
	// not an error.
	TermSourceNone TermSource = ""
)

// Term is a resolved effective/expiration pair plus where it came from.
type Term struct {
	Start  *Date      `json:"start"`
	End    *Date      `json:"end"`
	Source TermSource `json:"source,omitempty"`
}

// Resolved reports whether both dates are present.
func (t Term) Resolved() bool { return t.Start != nil && t.End != nil }

// InheritedDate is the result of walking a tower for a layer's effective
// date. SourceIndex is the index of the layer that supplied the date; nil
// means the policy-level fallback was used.
type InheritedDate struct {
	Date        *Date `json:"date"`
	Inherited   bool  `json:"inherited"`
	SourceIndex *int  `json:"source_index,omitempty"`
}

// DateBlock is a derived view: a contiguous index range [Start, End) of a
// tower sharing one effective date. Blocks always partition the whole
// tower; they are never persisted, only the per-layer term_start values
// that induce them are.
type DateBlock struct {
	Start         int   `json:"start"`
	End           int   `json:"end"`
	EffectiveDate *Date `json:"effective_date"`
	// IsExplicit marks a date that came from a layer's own term_start
	// rather than being inherited from the policy.
	IsExplicit bool `json:"is_explicit"`
}

// Len returns the number of layers in the block.
func (b DateBlock) Len() int { return b.End - b.Start }

// Contains reports whether the layer index falls inside the block.
func (b DateBlock) Contains(index int) bool { return index >= b.Start && index < b.End }
