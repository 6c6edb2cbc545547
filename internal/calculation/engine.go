package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quotetool/towercalc/internal/domain"
)

// DefaultOwnCarrier is the carrier identifier assumed when a program does
// not name one.
const DefaultOwnCarrier = "CMAI"

// TowerEngine runs every derived-value computation for a program in one
// pass. It holds no tower state: every call takes a full snapshot and
// returns a full result, so concurrent calls over independent programs
// never interfere.
type TowerEngine struct {
	Logger  Logger
	Matcher CarrierMatcher
}

// NewTowerEngine creates an engine with a no-op logger and the default
// carrier matcher.
func NewTowerEngine() *TowerEngine {
	return &TowerEngine{
		Logger:  NopLogger{},
		Matcher: MatchCarrierSubstring(DefaultOwnCarrier),
	}
}

// SetLogger replaces the engine's logger; nil installs the no-op logger.
func (e *TowerEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// RunProgram computes the full report for one program: normalized layers
// with recalculated attachments, resolved terms, prorated premiums and
// variances, ILFs, date blocks, and resolved sub-coverages. The input is
// not mutated.
//
// The two hard failures are a non-contiguous quota-share group and a
// date-block ordering violation; everything else degrades to absent
// values.
func (e *TowerEngine) RunProgram(cfg *domain.Configuration) (*domain.ProgramReport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration")
	}
	program := &cfg.Program
	structure := &program.Structure

	tower := NormalizeTower(structure.Tower)
	if err := ValidateTower(tower); err != nil {
		return nil, err
	}
	tower = RecalculateAttachments(tower)

	policyTerm := EffectiveTerm(nil, structure, program.Submission)
	blocks := DateBlocks(tower, policyTerm.Start)
	if err := ValidateDateBlocks(blocks, policyTerm.End); err != nil {
		return nil, err
	}

	matcher := e.Matcher
	if program.OwnCarrier != "" {
		matcher = MatchCarrierSubstring(program.OwnCarrier)
	}
	ctx := BuildContext(tower, matcher)
	if ctx == nil {
		e.Logger.Debugf("no own layer in tower of %d layers; sublimit allocation skipped", len(tower))
	}

	report := &domain.ProgramReport{
		Name:   program.Name,
		Layers: make([]domain.LayerRow, len(tower)),
		Blocks: blocks,
	}

	for i := range tower {
		layer := &tower[i]
		term := EffectiveTerm(layer, structure, program.Submission)

		row := domain.LayerRow{
			Index:         i,
			Carrier:       layer.Carrier,
			Limit:         layer.Limit,
			QuotaShare:    layer.QuotaShare,
			Attachment:    layer.Attachment,
			IsOwn:         ctx != nil && i == ctx.OurIndex,
			Term:          term,
			AnnualPremium: layer.AnnualPremium,
			ActualPremium: ActualPremium(LayerPremiumTerms(layer, term)),
			Variance:      PremiumVariance(layer, structure, program.Submission),
			ILF:           NormalizedILF(tower, i),
			CumulativeILF: CumulativeILF(tower, i),
		}
		if layer.AnnualPremium != nil && term.Resolved() {
			row.TheoreticalProRata = domain.DecimalPtr(
				TheoreticalProRata(*layer.AnnualPremium, *term.Start, *term.End))
		}
		report.Layers[i] = row
	}

	if policyTerm.Resolved() {
		report.ProRataFactor = ProRataFactor(*policyTerm.Start, *policyTerm.End)
		report.ShortTerm = IsShortTerm(*policyTerm.Start, *policyTerm.End)
	} else {
		report.ProRataFactor = decimal.Zero
	}

	for _, s := range structure.Sublimits {
		report.Sublimits = append(report.Sublimits, ResolveSublimit(s, ctx))
	}

	e.Logger.Infof("computed program %q: %d layers, %d blocks, %d sublimits",
		program.Name, len(report.Layers), len(report.Blocks), len(report.Sublimits))
	return report, nil
}
