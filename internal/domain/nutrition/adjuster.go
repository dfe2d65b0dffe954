package nutrition

import (
	"math"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"go.uber.org/zap"
)

// ScaleFactor returns the multiplier that brings totalCalories to target.
// A group without positive calories cannot be scaled and gets 1 (ok=false).
func ScaleFactor(target float64, totalCalories int) (factor float64, ok bool) {
	if totalCalories <= 0 {
		return 1.0, false
	}
	return target / float64(totalCalories), true
}

// Adjuster rescales recipes so each meal group meets its calorie target.
// It is safe for concurrent use.
type Adjuster struct {
	logger *zap.Logger
}

// NewAdjuster creates a recipe adjuster
func NewAdjuster(logger *zap.Logger) *Adjuster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adjuster{logger: logger}
}

// Adjust scales every meal group of recipes by one uniform factor so the
// group total matches targets[meal]. Groups whose meal has no target are
// dropped. The input slice and its recipes are left untouched.
func (a *Adjuster) Adjust(recipes []recipe.Recipe, targets MealCalories) []recipe.Recipe {
	adjusted := make([]recipe.Recipe, 0, len(recipes))

	for _, group := range recipe.GroupByMeal(recipes) {
		target, ok := targets[group.MealType]
		if !ok {
			a.logger.Debug("Dropping recipes without meal target",
				zap.String("meal_type", group.MealType.String()),
				zap.Int("recipes", len(group.Recipes)),
			)
			continue
		}

		total := group.Calories()
		factor, ok := ScaleFactor(target, total)
		if !ok {
			a.logger.Warn("Meal group has no calories, leaving unscaled",
				zap.String("meal_type", group.MealType.String()),
				zap.Int("total_calories", total),
			)
		}

		for _, r := range group.Recipes {
			adjusted = append(adjusted, a.ScaleRecipe(r, factor))
		}

		a.logger.Debug("Adjusted meal group",
			zap.String("meal_type", group.MealType.String()),
			zap.Float64("target", target),
			zap.Int("original_calories", total),
			zap.Float64("factor", factor),
		)
	}

	return adjusted
}

// ScaleRecipe returns a copy of r with calories and ingredients multiplied
// by factor.
func (a *Adjuster) ScaleRecipe(r recipe.Recipe, factor float64) recipe.Recipe {
	var ingredients []recipe.Ingredient
	if r.Ingredients != nil {
		ingredients = make([]recipe.Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ingredients[i] = a.ScaleIngredient(ing, factor)
		}
	}
	calories := int(math.Round(float64(r.Calories) * factor))
	return r.WithScaled(calories, ingredients)
}

// ScaleIngredient multiplies the ingredient quantity by factor. Gram
// quantities of known produce are rendered as whole pieces.
func (a *Adjuster) ScaleIngredient(ing recipe.Ingredient, factor float64) recipe.Ingredient {
	amount, unit, ok := ParseQuantity(ing.Quantity)
	if !ok {
		a.logger.Debug("Quantity has no leading number, scaling from 1",
			zap.String("ingredient", ing.Name),
			zap.String("quantity", ing.Quantity),
		)
	}

	scaled := amount * factor
	if isGramUnit(unit) {
		return ing.WithQuantity(ToDiscreteUnitsIfKnown(ing.Name, scaled))
	}
	return ing.WithQuantity(FormatQuantity(scaled, unit))
}
