package nutrition

import (
	"fmt"
	"math"
	"strings"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
)

// PolicyKind tags the variant of a DistributionPolicy.
type PolicyKind int

const (
	PolicyBalanced PolicyKind = iota
	PolicyFrontLoaded
	PolicyBackLoaded
	PolicyCustom
)

// String returns the canonical policy name
func (k PolicyKind) String() string {
	switch k {
	case PolicyBalanced:
		return "balanced"
	case PolicyFrontLoaded:
		return "front_loaded"
	case PolicyBackLoaded:
		return "back_loaded"
	case PolicyCustom:
		return "custom"
	default:
		return fmt.Sprintf("policy(%d)", int(k))
	}
}

// DistributionPolicy splits daily calories across breakfast, lunch and
// dinner. The zero value is the balanced policy.
type DistributionPolicy struct {
	kind    PolicyKind
	weights [3]float64
}

// Preset policies.
var (
	Balanced    = DistributionPolicy{kind: PolicyBalanced}
	FrontLoaded = DistributionPolicy{kind: PolicyFrontLoaded}
	BackLoaded  = DistributionPolicy{kind: PolicyBackLoaded}
)

var presetShares = map[PolicyKind]MealShares{
	PolicyBalanced:    {Breakfast: 0.30, Lunch: 0.40, Dinner: 0.30},
	PolicyFrontLoaded: {Breakfast: 0.40, Lunch: 0.35, Dinner: 0.25},
	PolicyBackLoaded:  {Breakfast: 0.25, Lunch: 0.35, Dinner: 0.40},
}

// NewCustomDistribution builds a custom policy from relative weights. The
// weights are normalised to sum to one; a non-positive sum is rejected.
func NewCustomDistribution(breakfast, lunch, dinner float64) (DistributionPolicy, error) {
	p := DistributionPolicy{kind: PolicyCustom, weights: [3]float64{breakfast, lunch, dinner}}
	if _, err := p.Shares(); err != nil {
		return DistributionPolicy{}, err
	}
	return p, nil
}

// ParseDistributionPolicy resolves a preset policy by name. Case, dashes and
// spaces are ignored ("Front-Loaded" == "front_loaded"). An empty name is
// the balanced policy.
func ParseDistributionPolicy(name string) (DistributionPolicy, error) {
	switch strings.ReplaceAll(normalizeLabel(name), " ", "_") {
	case "", "balanced":
		return Balanced, nil
	case "front_loaded", "frontloaded":
		return FrontLoaded, nil
	case "back_loaded", "backloaded":
		return BackLoaded, nil
	}
	return DistributionPolicy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Kind returns the policy variant.
func (p DistributionPolicy) Kind() PolicyKind { return p.kind }

// Name returns the canonical policy name.
func (p DistributionPolicy) Name() string { return p.kind.String() }

// Weights returns the raw custom weights; zero for presets.
func (p DistributionPolicy) Weights() (breakfast, lunch, dinner float64) {
	return p.weights[0], p.weights[1], p.weights[2]
}

// Shares resolves the policy to fractions that sum to one.
func (p DistributionPolicy) Shares() (MealShares, error) {
	if p.kind != PolicyCustom {
		shares, ok := presetShares[p.kind]
		if !ok {
			return MealShares{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, p.kind)
		}
		return shares, nil
	}

	sum := 0.0
	for _, w := range p.weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return MealShares{}, ErrInvalidDistribution
		}
		sum += w
	}
	if sum <= 0 {
		return MealShares{}, ErrInvalidDistribution
	}
	return MealShares{
		Breakfast: p.weights[0] / sum,
		Lunch:     p.weights[1] / sum,
		Dinner:    p.weights[2] / sum,
	}, nil
}

// MealShares holds the fraction of daily calories assigned to each meal.
type MealShares struct {
	Breakfast float64 `json:"breakfast"`
	Lunch     float64 `json:"lunch"`
	Dinner    float64 `json:"dinner"`
}

// Sum returns the total of the three shares.
func (s MealShares) Sum() float64 {
	return s.Breakfast + s.Lunch + s.Dinner
}

// MealCalories maps each meal slot to its calorie target.
type MealCalories map[recipe.MealType]float64

// Total returns the summed calorie targets.
func (m MealCalories) Total() float64 {
	total := 0.0
	for _, kcal := range m {
		total += kcal
	}
	return total
}

// Distribute splits dailyCalories across the meal slots by policy.
func Distribute(dailyCalories float64, policy DistributionPolicy) (MealCalories, error) {
	shares, err := policy.Shares()
	if err != nil {
		return nil, err
	}
	return MealCalories{
		recipe.MealTypeBreakfast: dailyCalories * shares.Breakfast,
		recipe.MealTypeLunch:     dailyCalories * shares.Lunch,
		recipe.MealTypeDinner:    dailyCalories * shares.Dinner,
	}, nil
}
