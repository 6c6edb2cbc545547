package calculation

import (
	"errors"
	"fmt"

	"github.com/quotetool/towercalc/internal/domain"
)

// ErrDateBlockOrder marks a tower whose per-layer effective dates run
// backwards: a block's date must be on or after the preceding block's date
// and on or before the following one. This is user input that violates the
// tower's physical ordering and is surfaced, never silently fixed.
var ErrDateBlockOrder = errors.New("date blocks out of order")

// EffectiveTerm resolves a layer's term through the inheritance chain:
// layer dates when both are set, else the structure's dates (overrides
// taking precedence per field), else the submission's. When no level
// supplies both dates the result is an unresolved term, which callers
// treat as TBD rather than an error.
func EffectiveTerm(layer *domain.Layer, structure *domain.Structure, submission *domain.Submission) domain.Term {
	if layer != nil && layer.TermStart != nil && layer.TermEnd != nil {
		return domain.Term{Start: layer.TermStart, End: layer.TermEnd, Source: domain.TermSourceLayer}
	}
	if structure != nil {
		start, end := structure.EffectiveStart(), structure.EffectiveEnd()
		if start != nil && end != nil {
			return domain.Term{Start: start, End: end, Source: domain.TermSourceStructure}
		}
	}
	if submission != nil && submission.EffectiveDate != nil && submission.ExpirationDate != nil {
		return domain.Term{Start: submission.EffectiveDate, End: submission.ExpirationDate, Source: domain.TermSourceSubmission}
	}
	return domain.Term{}
}

// InheritedEffectiveDate resolves a layer's start date by walking down the
// tower. Only term_start participates: expiration always comes from the
// policy. The nearest lower layer with an explicit term_start wins; with
// none, the policy effective date applies and SourceIndex is nil.
func InheritedEffectiveDate(tower []domain.Layer, index int, policyEffective *domain.Date) domain.InheritedDate {
	if index >= 0 && index < len(tower) && tower[index].TermStart != nil {
		i := index
		return domain.InheritedDate{Date: tower[index].TermStart, Inherited: false, SourceIndex: &i}
	}
	if index > len(tower) {
		index = len(tower)
	}
	for i := index - 1; i >= 0; i-- {
		if tower[i].TermStart != nil {
			src := i
			return domain.InheritedDate{Date: tower[i].TermStart, Inherited: true, SourceIndex: &src}
		}
	}
	return domain.InheritedDate{Date: policyEffective, Inherited: true}
}

// DateBlocks partitions a tower into contiguous attachment ranges sharing
// one effective date. A new block opens at every layer with an explicit
// term_start; the first block covers everything below the first explicit
// date and carries the policy effective date unless layer 0 sets its own.
// The blocks always cover [0, len(tower)) contiguously.
//
// Splitting a tower at a dollar attachment point is equivalent to setting
// term_start on the first layer at or above that point.
func DateBlocks(tower []domain.Layer, policyEffective *domain.Date) []domain.DateBlock {
	if len(tower) == 0 {
		return nil
	}

	first := domain.DateBlock{Start: 0, EffectiveDate: policyEffective}
	if tower[0].TermStart != nil {
		first.EffectiveDate = tower[0].TermStart
		first.IsExplicit = true
	}
	blocks := []domain.DateBlock{first}

	for i := 1; i < len(tower); i++ {
		if tower[i].TermStart == nil {
			continue
		}
		blocks[len(blocks)-1].End = i
		blocks = append(blocks, domain.DateBlock{
			Start:         i,
			EffectiveDate: tower[i].TermStart,
			IsExplicit:    true,
		})
	}
	blocks[len(blocks)-1].End = len(tower)
	return blocks
}

// ValidateDateBlocks enforces the ordering rule across a partition: each
// block's date must be >= its predecessor's, and the last block's date must
// not pass the policy expiration. Blocks without a resolvable date are
// skipped; an unset date is TBD, not a violation.
func ValidateDateBlocks(blocks []domain.DateBlock, policyExpiration *domain.Date) error {
	var prev *domain.Date
	for i, b := range blocks {
		if b.EffectiveDate == nil {
			continue
		}
		if prev != nil && b.EffectiveDate.Before(*prev) {
			return fmt.Errorf("block %d effective date %s precedes prior block's %s: %w",
				i, b.EffectiveDate, prev, ErrDateBlockOrder)
		}
		prev = b.EffectiveDate
	}
	if prev != nil && policyExpiration != nil && prev.After(*policyExpiration) {
		return fmt.Errorf("last block effective date %s is past policy expiration %s: %w",
			prev, policyExpiration, ErrDateBlockOrder)
	}
	return nil
}
