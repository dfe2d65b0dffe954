// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

var (
	genderLabels   = []string{"male", "Male", "M", "hombre", "female", "woman", "F", "", "non-binary"}
	activityLabels = []string{"sedentary", "light", "moderate", "active", "very active", "Moderately Active", "", "couch"}
	goalLabels     = []string{"lose weight", "cut", "maintain", "gain muscle", "bulk", "", "stay healthy"}
	unitWords      = []string{"g", "gr", "grams", "ml", "tbsp", "cup", "pieces", ""}
	produceNames   = []string{"tomato", "potato", "onion", "carrot", "apple", "banana", "egg", "rice", "chicken breast"}
)

// ProfileFactory provides methods to create test profiles
type ProfileFactory struct {
	faker *gofakeit.Faker
}

// NewProfileFactory creates a new profile factory with seeded faker
func NewProfileFactory(seed int64) *ProfileFactory {
	return &ProfileFactory{faker: gofakeit.New(seed)}
}

// Profile returns a plausible profile with randomly chosen free-text labels,
// including ones that exercise the fallback paths
func (f *ProfileFactory) Profile() nutrition.UserProfile {
	return nutrition.UserProfile{
		Gender:        f.faker.RandomString(genderLabels),
		WeightKg:      f.faker.Float64Range(35, 160),
		HeightCm:      f.faker.Float64Range(140, 210),
		BirthYear:     fmt.Sprintf("%d", f.faker.IntRange(1930, 2015)),
		ActivityLevel: f.faker.RandomString(activityLabels),
		Goal:          f.faker.RandomString(goalLabels),
	}
}

// EdgeProfile returns a profile with values outside the normal ranges:
// negative or zero weight, missing height, garbage birth year
func (f *ProfileFactory) EdgeProfile() nutrition.UserProfile {
	p := f.Profile()
	p.WeightKg = f.faker.Float64Range(-20, 0)
	p.HeightCm = 0
	p.BirthYear = f.faker.RandomString([]string{"", "abc", "1850", "19x0", "3000"})
	return p
}

// Record wraps a profile in a stored record with a fresh ID
func (f *ProfileFactory) Record() *outbound.ProfileRecord {
	now := time.Now().UTC().Truncate(time.Second)
	return &outbound.ProfileRecord{
		ID:        uuid.New(),
		Profile:   f.Profile(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Recipe returns a random recipe for the given meal type
func (f *RecipeFactory) Recipe(mealType recipe.MealType) recipe.Recipe {
	count := f.faker.IntRange(1, 6)
	ingredients := make([]recipe.Ingredient, 0, count)
	for i := 0; i < count; i++ {
		ingredients = append(ingredients, f.Ingredient())
	}

	return NewRecipeBuilder().
		WithTitle(f.faker.Sentence(3)).
		WithMealType(mealType).
		WithCalories(f.faker.IntRange(0, 1200)).
		WithIngredients(ingredients...).
		WithInstructions(f.faker.Sentence(8), f.faker.Sentence(6)).
		Build()
}

// Day returns a random day of recipes covering every meal type
func (f *RecipeFactory) Day() []recipe.Recipe {
	var day []recipe.Recipe
	for _, mt := range recipe.MealTypes() {
		for i := f.faker.IntRange(1, 3); i > 0; i-- {
			day = append(day, f.Recipe(mt))
		}
	}
	f.faker.ShuffleAnySlice(day)
	return day
}

// Ingredient returns a random ingredient; some quantities carry no number
func (f *RecipeFactory) Ingredient() recipe.Ingredient {
	quantity := "to taste"
	if f.faker.Number(0, 9) > 1 {
		unit := f.faker.RandomString(unitWords)
		quantity = fmt.Sprintf("%g", float64(f.faker.IntRange(1, 500))/float64(f.faker.RandomInt([]int{1, 2, 4})))
		if unit != "" {
			quantity += " " + unit
		}
	}
	return recipe.Ingredient{
		Name:     f.faker.RandomString(produceNames),
		Quantity: quantity,
		Checked:  f.faker.Bool(),
	}
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	recipe recipe.Recipe
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{recipe: recipe.Recipe{
		Title:        "Test recipe",
		MealType:     recipe.MealTypeLunch,
		Ingredients:  []recipe.Ingredient{{Name: "rice", Quantity: "100 g"}},
		Instructions: []string{"Cook."},
		Calories:     500,
	}}
}

// WithTitle sets the recipe title
func (rb *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	rb.recipe.Title = title
	return rb
}

// WithMealType sets the meal slot
func (rb *RecipeBuilder) WithMealType(mealType recipe.MealType) *RecipeBuilder {
	rb.recipe.MealType = mealType
	return rb
}

// WithCalories sets the calories
func (rb *RecipeBuilder) WithCalories(calories int) *RecipeBuilder {
	rb.recipe.Calories = calories
	return rb
}

// WithIngredients replaces the ingredients
func (rb *RecipeBuilder) WithIngredients(ingredients ...recipe.Ingredient) *RecipeBuilder {
	rb.recipe.Ingredients = append([]recipe.Ingredient(nil), ingredients...)
	return rb
}

// WithInstructions replaces the instructions
func (rb *RecipeBuilder) WithInstructions(steps ...string) *RecipeBuilder {
	rb.recipe.Instructions = append([]string(nil), steps...)
	return rb
}

// WithImage sets the image reference
func (rb *RecipeBuilder) WithImage(image string) *RecipeBuilder {
	rb.recipe.Image = image
	return rb
}

// Build returns a copy of the recipe
func (rb *RecipeBuilder) Build() recipe.Recipe {
	return rb.recipe.Clone()
}
