package calculation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotetool/towercalc/internal/domain"
)

// CarrierMatcher identifies the insurer's own layer within a multi-carrier
// tower. It is injected rather than baked in: which carrier is "ours" is a
// tenant convention, not an engine concept.
type CarrierMatcher func(carrier string) bool

// MatchCarrierSubstring matches carriers whose name contains the given
// identifier, case-insensitively.
func MatchCarrierSubstring(identifier string) CarrierMatcher {
	id := strings.ToLower(identifier)
	return func(carrier string) bool {
		if id == "" {
			return false
		}
		return strings.Contains(strings.ToLower(carrier), id)
	}
}

// TowerContext is the per-tower input to the proportional allocation
// engine, derived once and reused across sub-coverages.
type TowerContext struct {
	OurIndex               int
	OurAggregateLimit      decimal.Decimal
	OurAggregateAttachment decimal.Decimal
	PrimaryAggregateLimit  decimal.Decimal

	// below holds the layers strictly under our layer's attachment step.
	// When our layer sits inside a quota-share group the group's first
	// layer bounds the slice, same collapsing rule as AttachmentAt.
	below []domain.Layer
}

// Allocation is a proportional sub-coverage result.
type Allocation struct {
	Limit      decimal.Decimal
	Attachment decimal.Decimal
}

// BuildContext derives the allocation context for a tower. Returns nil
// when the tower has no layer matching isOwn or no primary layer; a tower
// still being edited is a normal state, not an error.
func BuildContext(tower []domain.Layer, isOwn CarrierMatcher) *TowerContext {
	if len(tower) == 0 || isOwn == nil {
		return nil
	}
	ourIndex := -1
	for i := range tower {
		if isOwn(tower[i].Carrier) {
			ourIndex = i
			break
		}
	}
	if ourIndex < 0 {
		return nil
	}

	effective := ourIndex
	for effective > 0 && tower[effective].HasQuotaShare() && tower[effective].SharesQuotaWith(&tower[effective-1]) {
		effective--
	}

	return &TowerContext{
		OurIndex:               ourIndex,
		OurAggregateLimit:      tower[ourIndex].Limit,
		OurAggregateAttachment: AttachmentAt(tower, ourIndex),
		PrimaryAggregateLimit:  tower[0].Limit,
		below:                  tower[:effective],
	}
}

// Proportional scales a primary sub-coverage limit up the tower: the
// excess sub-limit is the same fraction of our aggregate limit that the
// sublimit is of the primary's aggregate. The sub-attachment walks the
// attachment steps below us the same way AttachmentAt does: the primary's
// step counts at full size (the excess coverage sits above the whole
// primary aggregate), and every step above it contributes its ratio-scaled
// size.
//
// Each scaled term is rounded before summing, not the sum. On towers with
// many layers the two differ by a few dollars, and per-term is the
// behavior the rest of the program was reconciled against, so it stays.
//
// At ratio 1 the result is exactly {OurAggregateLimit,
// OurAggregateAttachment}.
func Proportional(primarySublimit decimal.Decimal, ctx *TowerContext) Allocation {
	if ctx == nil {
		return Allocation{}
	}
	if ctx.PrimaryAggregateLimit.IsZero() {
		return Allocation{}
	}
	ratio := primarySublimit.Div(ctx.PrimaryAggregateLimit)

	limit := ratio.Mul(ctx.OurAggregateLimit).Round(0)

	attachment := decimal.Zero
	step := 0
	for i := 0; i < len(ctx.below); i++ {
		layer := ctx.below[i]
		contribution := layer.Limit
		if layer.HasQuotaShare() {
			contribution = *layer.QuotaShare
			for i+1 < len(ctx.below) && layer.SharesQuotaWith(&ctx.below[i+1]) {
				i++
			}
		}
		if step == 0 {
			attachment = attachment.Add(contribution)
		} else {
			attachment = attachment.Add(ratio.Mul(contribution).Round(0))
		}
		step++
	}

	return Allocation{Limit: limit, Attachment: attachment}
}

// ResolveSublimit computes the effective limit and attachment of one
// excess sub-coverage row. Follow-form rows derive both values from the
// tower, ignoring any leftover overrides; different rows use the explicit
// overrides as-is; excluded rows carry neither a limit nor an attachment.
func ResolveSublimit(s domain.Sublimit, ctx *TowerContext) domain.SublimitRow {
	row := domain.SublimitRow{Coverage: s.Coverage, Treatment: s.Treatment}
	switch s.Treatment {
	case domain.TreatmentExclude:
		return row
	case domain.TreatmentDifferent:
		row.Limit = s.OurLimit
		row.Attachment = s.OurAttachment
		return row
	default:
		// Follow form. Overrides left behind by a treatment switch are
		// derived values now, never inputs.
		if ctx == nil {
			return row
		}
		alloc := Proportional(s.PrimaryLimit, ctx)
		row.Limit = domain.DecimalPtr(alloc.Limit)
		row.Attachment = domain.DecimalPtr(alloc.Attachment)
		return row
	}
}
