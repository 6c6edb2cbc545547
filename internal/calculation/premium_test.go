package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotetool/towercalc/internal/domain"
)

func TestProRataFactor_FullYear(t *testing.T) {
	factor := ProRataFactor(date("2024-01-01"), date("2025-01-01"))

	// 366 days over the fixed 365 denominator.
	assert.True(t, factor.GreaterThan(decimal.NewFromInt(1)))
	assert.True(t, factor.LessThan(decimal.NewFromFloat(1.01)))

	factor = ProRataFactor(date("2023-01-01"), date("2024-01-01"))
	assert.True(t, factor.Equal(decimal.NewFromInt(1)))
}

func TestProRataFactor_HalfYear(t *testing.T) {
	// 182 days from Jan 1 to Jul 1 of a leap year.
	factor := ProRataFactor(date("2024-01-01"), date("2024-07-01"))
	want := decimal.NewFromInt(182).Div(decimal.NewFromInt(365))
	assert.True(t, factor.Equal(want), "got %s want %s", factor, want)
}

func TestProRataFactor_DegenerateTerm(t *testing.T) {
	assert.True(t, ProRataFactor(date("2024-01-01"), date("2024-01-01")).IsZero())
	assert.True(t, ProRataFactor(date("2024-07-01"), date("2024-01-01")).IsZero())
}

func TestTheoreticalProRata_HalfYear(t *testing.T) {
	got := TheoreticalProRata(money(120_000), date("2024-01-01"), date("2024-07-01"))

	// 120000 * 182/365 = 59835.6..., rounded to whole money units.
	assert.True(t, got.Equal(money(59_836)), "got %s", got)
}

func TestIsShortTerm(t *testing.T) {
	assert.False(t, IsShortTerm(date("2023-01-01"), date("2024-01-01")))
	assert.True(t, IsShortTerm(date("2024-01-01"), date("2024-07-01")))

	// 347 days is factor 0.9506, just above the threshold.
	assert.False(t, IsShortTerm(date("2023-01-01"), date("2023-12-14")))
	// 346 days is factor 0.9479.
	assert.True(t, IsShortTerm(date("2023-01-01"), date("2023-12-13")))
}

func TestActualPremium_AnnualBasisIgnoresDates(t *testing.T) {
	got := ActualPremium(PremiumTerms{
		Annual: moneyPtr(120_000),
		Start:  datePtr("2024-01-01"),
		End:    datePtr("2024-07-01"),
		Basis:  domain.BasisAnnual,
	})

	require.NotNil(t, got)
	assert.True(t, got.Equal(money(120_000)))
}

func TestActualPremium_ProRataBasis(t *testing.T) {
	got := ActualPremium(PremiumTerms{
		Annual: moneyPtr(120_000),
		Start:  datePtr("2024-01-01"),
		End:    datePtr("2024-07-01"),
		Basis:  domain.BasisProRata,
	})

	require.NotNil(t, got)
	assert.True(t, got.Equal(money(59_836)), "got %s", got)
}

func TestActualPremium_MinimumBasisFloorsProRata(t *testing.T) {
	// 30 days of 100000 pro-rates to 8219; the 15000 minimum floors it.
	got := ActualPremium(PremiumTerms{
		Annual:  moneyPtr(100_000),
		Start:   datePtr("2024-01-01"),
		End:     datePtr("2024-01-31"),
		Basis:   domain.BasisMinimum,
		Minimum: moneyPtr(15_000),
	})

	require.NotNil(t, got)
	assert.True(t, got.Equal(money(15_000)), "got %s", got)
}

func TestActualPremium_MinimumBasisYieldsProRataWhenLarger(t *testing.T) {
	got := ActualPremium(PremiumTerms{
		Annual:  moneyPtr(120_000),
		Start:   datePtr("2024-01-01"),
		End:     datePtr("2024-07-01"),
		Basis:   domain.BasisMinimum,
		Minimum: moneyPtr(15_000),
	})

	require.NotNil(t, got)
	assert.True(t, got.Equal(money(59_836)), "got %s", got)
}

func TestActualPremium_MinimumBasisWithoutMinimumDefaultsToZeroFloor(t *testing.T) {
	got := ActualPremium(PremiumTerms{
		Annual: moneyPtr(120_000),
		Start:  datePtr("2024-01-01"),
		End:    datePtr("2024-07-01"),
		Basis:  domain.BasisMinimum,
	})

	require.NotNil(t, got)
	assert.True(t, got.Equal(money(59_836)))
}

func TestActualPremium_FlatBasis(t *testing.T) {
	got := ActualPremium(PremiumTerms{
		Annual: moneyPtr(120_000),
		Basis:  domain.BasisFlat,
		Flat:   moneyPtr(75_000),
	})
	require.NotNil(t, got)
	assert.True(t, got.Equal(money(75_000)))

	// Without a flat amount the annual baseline passes through.
	got = ActualPremium(PremiumTerms{Annual: moneyPtr(120_000), Basis: domain.BasisFlat})
	require.NotNil(t, got)
	assert.True(t, got.Equal(money(120_000)))
}

func TestActualPremium_NoAnnualPremium(t *testing.T) {
	assert.Nil(t, ActualPremium(PremiumTerms{Basis: domain.BasisAnnual}))
	assert.Nil(t, ActualPremium(PremiumTerms{Annual: moneyPtr(0), Basis: domain.BasisProRata}))
}

func TestActualPremium_MissingDatesPassAnnualThrough(t *testing.T) {
	got := ActualPremium(PremiumTerms{Annual: moneyPtr(120_000), Basis: domain.BasisProRata})
	require.NotNil(t, got)
	assert.True(t, got.Equal(money(120_000)))
}

func TestPremiumVariance(t *testing.T) {
	structure := &domain.Structure{
		EffectiveDate:  datePtr("2024-01-01"),
		ExpirationDate: datePtr("2024-07-01"),
	}
	layer := &domain.Layer{
		AnnualPremium: moneyPtr(120_000),
		ActualPremium: moneyPtr(62_000),
	}

	variance := PremiumVariance(layer, structure, nil)

	// 62000 actual against 59836 theoretical.
	assert.True(t, variance.Equal(money(2_164)), "got %s", variance)
}

func TestPremiumVariance_MissingPremiumYieldsZero(t *testing.T) {
	structure := &domain.Structure{
		EffectiveDate:  datePtr("2024-01-01"),
		ExpirationDate: datePtr("2024-07-01"),
	}

	assert.True(t, PremiumVariance(&domain.Layer{AnnualPremium: moneyPtr(120_000)}, structure, nil).IsZero())
	assert.True(t, PremiumVariance(&domain.Layer{ActualPremium: moneyPtr(62_000)}, structure, nil).IsZero())
	assert.True(t, PremiumVariance(nil, structure, nil).IsZero())
}

func TestPremiumVariance_UnresolvedTermYieldsZero(t *testing.T) {
	layer := &domain.Layer{
		AnnualPremium: moneyPtr(120_000),
		ActualPremium: moneyPtr(62_000),
	}
	assert.True(t, PremiumVariance(layer, &domain.Structure{}, nil).IsZero())
}
