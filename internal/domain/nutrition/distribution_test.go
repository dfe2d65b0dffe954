package nutrition

import (
	"math"
	"testing"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetShares(t *testing.T) {
	tests := []struct {
		policy DistributionPolicy
		want   MealShares
	}{
		{Balanced, MealShares{0.30, 0.40, 0.30}},
		{FrontLoaded, MealShares{0.40, 0.35, 0.25}},
		{BackLoaded, MealShares{0.25, 0.35, 0.40}},
		{DistributionPolicy{}, MealShares{0.30, 0.40, 0.30}},
	}

	for _, tt := range tests {
		t.Run(tt.policy.Name(), func(t *testing.T) {
			shares, err := tt.policy.Shares()
			require.NoError(t, err)
			assert.Equal(t, tt.want, shares)
			assert.InDelta(t, 1.0, shares.Sum(), 1e-9)
		})
	}
}

func TestCustomDistribution(t *testing.T) {
	for _, w := range [][3]float64{{1, 1, 1}, {2, 5, 3}, {0, 0, 7}, {0.1, 0.2, 0.3}, {1e6, 3, 1e-3}} {
		p, err := NewCustomDistribution(w[0], w[1], w[2])
		require.NoError(t, err)
		assert.Equal(t, PolicyCustom, p.Kind())

		shares, err := p.Shares()
		require.NoError(t, err)
		assert.InDelta(t, 1.0, shares.Sum(), 1e-9)
	}

	p, err := NewCustomDistribution(2, 5, 3)
	require.NoError(t, err)
	shares, _ := p.Shares()
	assert.InDelta(t, 0.2, shares.Breakfast, 1e-12)
	assert.InDelta(t, 0.5, shares.Lunch, 1e-12)
	assert.InDelta(t, 0.3, shares.Dinner, 1e-12)

	b, l, d := p.Weights()
	assert.Equal(t, [3]float64{2, 5, 3}, [3]float64{b, l, d})
}

func TestCustomDistribution_Rejected(t *testing.T) {
	bad := [][3]float64{
		{0, 0, 0},
		{-1, 0, 0},
		{-1, 2, 3},
		{math.NaN(), 1, 1},
		{math.Inf(1), 1, 1},
	}
	for _, w := range bad {
		_, err := NewCustomDistribution(w[0], w[1], w[2])
		assert.ErrorIs(t, err, ErrInvalidDistribution, "%v", w)
	}

	// A hand-built custom policy still fails when resolved.
	_, err := Distribute(2000, DistributionPolicy{kind: PolicyCustom})
	assert.ErrorIs(t, err, ErrInvalidDistribution)
}

func TestParseDistributionPolicy(t *testing.T) {
	tests := map[string]PolicyKind{
		"":             PolicyBalanced,
		"balanced":     PolicyBalanced,
		"Front-Loaded": PolicyFrontLoaded,
		"front_loaded": PolicyFrontLoaded,
		"back loaded":  PolicyBackLoaded,
		"BACKLOADED":   PolicyBackLoaded,
	}
	for name, kind := range tests {
		p, err := ParseDistributionPolicy(name)
		require.NoError(t, err, name)
		assert.Equal(t, kind, p.Kind(), name)
	}

	_, err := ParseDistributionPolicy("intermittent")
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	_, err = ParseDistributionPolicy("custom")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestDistribute_Balanced(t *testing.T) {
	meals, err := Distribute(2104, Balanced)
	require.NoError(t, err)

	assert.InDelta(t, 631.2, meals[recipe.MealTypeBreakfast], 1e-9)
	assert.InDelta(t, 841.6, meals[recipe.MealTypeLunch], 1e-9)
	assert.InDelta(t, 631.2, meals[recipe.MealTypeDinner], 1e-9)
	assert.InDelta(t, 2104.0, meals.Total(), 1e-9)
	assert.Len(t, meals, 3)
}
