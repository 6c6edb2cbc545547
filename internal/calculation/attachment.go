package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quotetool/towercalc/internal/domain"
)

// ErrQuotaShareGap marks a tower where two layers share a quota_share value
// but are separated by an unrelated layer. There is no defined grouping for
// that shape, so it is rejected rather than guessed at.
var ErrQuotaShareGap = errors.New("quota-share group is not contiguous")

// AttachmentAt computes the attachment point of the layer at index: the sum
// of all coverage strictly below it. Layers inside a quota-share group do
// not stack their individual limits; the group's full size counts once, so
// the whole group occupies a single attachment step.
//
// Attachment is a pure function of limits and quota shares. It never reads
// a previously stored attachment, which is what makes recalculation
// idempotent.
func AttachmentAt(tower []domain.Layer, index int) decimal.Decimal {
	if index <= 0 || len(tower) == 0 {
		return decimal.Zero
	}
	if index > len(tower) {
		index = len(tower)
	}

	// A quota-share member attaches where its group does: back up to the
	// first layer of the group before summing.
	effective := index
	if effective < len(tower) && tower[effective].HasQuotaShare() {
		for effective > 0 && tower[effective].SharesQuotaWith(&tower[effective-1]) {
			effective--
		}
	}

	sum := decimal.Zero
	for i := 0; i < effective; i++ {
		layer := tower[i]
		if layer.HasQuotaShare() {
			sum = sum.Add(*layer.QuotaShare)
			for i+1 < effective && layer.SharesQuotaWith(&tower[i+1]) {
				i++
			}
		} else {
			sum = sum.Add(layer.Limit)
		}
	}
	return sum
}

// RecalculateAttachments returns a copy of the tower with every layer's
// Attachment repopulated. Running it on its own output yields identical
// results.
func RecalculateAttachments(tower []domain.Layer) []domain.Layer {
	out := make([]domain.Layer, len(tower))
	for i := range tower {
		out[i] = tower[i]
		out[i].Attachment = AttachmentAt(tower, i)
	}
	return out
}

// ValidateTower rejects towers whose quota-share groups are not contiguous.
// Two groups with the same quota_share value separated by any other layer
// have no defined attachment semantics.
func ValidateTower(tower []domain.Layer) error {
	// closed holds quota_share values whose run has already ended, keyed
	// by value, with the index the run ended at.
	closed := map[string]int{}
	var open *decimal.Decimal
	closeOpen := func(at int) {
		if open != nil {
			closed[open.String()] = at
			open = nil
		}
	}
	for i := range tower {
		qs := tower[i].QuotaShare
		if qs == nil {
			closeOpen(i)
			continue
		}
		if open != nil && open.Equal(*qs) {
			continue
		}
		closeOpen(i)
		if endedAt, seen := closed[qs.String()]; seen {
			return fmt.Errorf("layer %d reopens quota-share group %s that ended at layer %d: %w",
				i, qs.String(), endedAt, ErrQuotaShareGap)
		}
		open = qs
	}
	return nil
}
