package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotetool/towercalc/internal/domain"
)

func premiumLayer(limit, annual int64) domain.Layer {
	return domain.Layer{Limit: money(limit), AnnualPremium: moneyPtr(annual)}
}

func TestNormalizedILF_UnityAtPrimary(t *testing.T) {
	tower := []domain.Layer{premiumLayer(1_000_000, 100_000), premiumLayer(4_000_000, 60_000)}

	got := NormalizedILF(tower, 0)

	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(1)), "ILF of a layer against itself is unity")
}

func TestNormalizedILF_ExcessLayer(t *testing.T) {
	tower := []domain.Layer{premiumLayer(1_000_000, 100_000), premiumLayer(4_000_000, 60_000)}

	got := NormalizedILF(tower, 1)

	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.6)), "got %s", got)
}

func TestNormalizedILF_UsesAnnualizedNotActualPremium(t *testing.T) {
	// The excess layer ran a short term: actual is prorated. The ratio
	// must still come from annual baselines.
	tower := []domain.Layer{
		premiumLayer(1_000_000, 100_000),
		{Limit: money(4_000_000), AnnualPremium: moneyPtr(60_000), ActualPremium: moneyPtr(30_000)},
	}

	got := NormalizedILF(tower, 1)

	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.6)), "got %s", got)
}

func TestNormalizedILF_FallsBackToActualWhenNoAnnual(t *testing.T) {
	tower := []domain.Layer{
		premiumLayer(1_000_000, 100_000),
		{Limit: money(4_000_000), ActualPremium: moneyPtr(50_000)},
	}

	got := NormalizedILF(tower, 1)

	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.5)))
}

func TestNormalizedILF_NoPrimaryPremium(t *testing.T) {
	tower := []domain.Layer{plainLayer(1_000_000), premiumLayer(4_000_000, 60_000)}

	assert.Nil(t, NormalizedILF(tower, 1))
}

func TestNormalizedILF_ZeroPrimaryPremium(t *testing.T) {
	tower := []domain.Layer{premiumLayer(1_000_000, 0), premiumLayer(4_000_000, 60_000)}

	assert.Nil(t, NormalizedILF(tower, 1))
}

func TestNormalizedILF_OutOfRange(t *testing.T) {
	tower := []domain.Layer{premiumLayer(1_000_000, 100_000)}

	assert.Nil(t, NormalizedILF(tower, 5))
	assert.Nil(t, NormalizedILF(nil, 0))
}

func TestCumulativeILF(t *testing.T) {
	tower := []domain.Layer{
		premiumLayer(1_000_000, 100_000),
		premiumLayer(4_000_000, 60_000),
		premiumLayer(5_000_000, 40_000),
	}

	got := CumulativeILF(tower, 2)

	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(2)), "(100k+60k+40k)/100k, got %s", got)

	got = CumulativeILF(tower, 0)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(1)))
}

func TestCumulativeILF_SkipsLayersWithoutPremium(t *testing.T) {
	tower := []domain.Layer{
		premiumLayer(1_000_000, 100_000),
		plainLayer(4_000_000),
		premiumLayer(5_000_000, 50_000),
	}

	got := CumulativeILF(tower, 2)

	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromFloat(1.5)), "got %s", got)
}

func TestRateChange(t *testing.T) {
	got := RateChange(moneyPtr(100_000), moneyPtr(112_000))
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(12)), "got %s", got)

	got = RateChange(moneyPtr(100_000), moneyPtr(88_000))
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(-12)))
}

func TestRateChange_NoPrior(t *testing.T) {
	assert.Nil(t, RateChange(nil, moneyPtr(112_000)))
	assert.Nil(t, RateChange(moneyPtr(0), moneyPtr(112_000)))
	assert.Nil(t, RateChange(moneyPtr(100_000), nil))
}

func TestLayerRateChange(t *testing.T) {
	prior := []domain.Layer{premiumLayer(1_000_000, 100_000), premiumLayer(4_000_000, 50_000)}
	current := []domain.Layer{premiumLayer(1_000_000, 110_000), premiumLayer(4_000_000, 60_000)}

	got := LayerRateChange(prior, current, 1)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(20)), "got %s", got)

	assert.Nil(t, LayerRateChange(prior, current[:1], 1))
	assert.Nil(t, LayerRateChange(prior, current, -1))
}
