// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/google/uuid"
)

// NutritionService defines the nutrition planning use cases
type NutritionService interface {
	// Profiles
	CreateProfile(ctx context.Context, cmd CreateProfileCommand) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*ProfileDTO, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*ProfileDTO, error)

	// Planning
	Plan(ctx context.Context, cmd PlanCommand) (*ReportDTO, error)
	PlanForProfile(ctx context.Context, profileID uuid.UUID, policy PolicyParams) (*ReportDTO, error)

	// Recipe adjustment
	AdjustRecipes(ctx context.Context, cmd AdjustRecipesCommand) (*AdjustedRecipesDTO, error)
	AdjustDay(ctx context.Context, profileID uuid.UUID, week, day int, policy PolicyParams) (*AdjustedDayDTO, error)
	AdjustWeek(ctx context.Context, profileID uuid.UUID, week int, policy PolicyParams) (*AdjustedWeekDTO, error)

	// Catalog
	AddRecipe(ctx context.Context, cmd AddRecipeCommand) (*CatalogRecipeDTO, error)
}

// Command objects for operations

// ProfileInput carries raw profile fields as supplied by onboarding.
// Height is given either in centimetres or in feet and inches.
type ProfileInput struct {
	Gender        string
	WeightKg      float64
	HeightCm      float64
	HeightFeet    float64
	HeightInches  float64
	BirthYear     string
	ActivityLevel string
	Goal          string
}

// CreateProfileCommand contains data for storing a profile
type CreateProfileCommand struct {
	ProfileInput
}

// UpdateProfileCommand contains data for updating a profile.
// Nil fields are left unchanged.
type UpdateProfileCommand struct {
	ProfileID     uuid.UUID
	Gender        *string
	WeightKg      *float64
	HeightCm      *float64
	BirthYear     *string
	ActivityLevel *string
	Goal          *string
}

// CustomWeights are relative breakfast/lunch/dinner weights
type CustomWeights struct {
	Breakfast float64
	Lunch     float64
	Dinner    float64
}

// PolicyParams selects a meal distribution policy. Custom takes precedence
// over Name; an empty Name falls back to the configured default.
type PolicyParams struct {
	Name   string
	Custom *CustomWeights
}

// PlanCommand plans for an inline profile
type PlanCommand struct {
	Profile ProfileInput
	Policy  PolicyParams
}

// AdjustRecipesCommand adjusts inline recipes for an inline profile
type AdjustRecipesCommand struct {
	Profile ProfileInput
	Policy  PolicyParams
	Recipes []recipe.Recipe
}

// AddRecipeCommand schedules a recipe in the catalog
type AddRecipeCommand struct {
	Week   int
	Day    int
	Recipe recipe.Recipe
}

// Response DTOs

// ProfileDTO is the data transfer object for profiles
type ProfileDTO struct {
	ID            uuid.UUID `json:"id"`
	Gender        string    `json:"gender"`
	WeightKg      float64   `json:"weight_kg"`
	HeightCm      float64   `json:"height_cm"`
	BirthYear     string    `json:"birth_year"`
	ActivityLevel string    `json:"activity_level"`
	Goal          string    `json:"goal"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

// MacrosDTO for macro targets
type MacrosDTO struct {
	Calories       float64 `json:"calories"`
	ProteinGrams   float64 `json:"protein_g"`
	FatGrams       float64 `json:"fat_g"`
	CarbsGrams     float64 `json:"carbs_g"`
	ProteinPercent float64 `json:"protein_pct"`
	FatPercent     float64 `json:"fat_pct"`
	CarbsPercent   float64 `json:"carbs_pct"`
}

// ReportDTO for nutrition reports
type ReportDTO struct {
	ID            uuid.UUID          `json:"id"`
	ProfileID     *uuid.UUID         `json:"profile_id,omitempty"`
	BMR           float64            `json:"bmr"`
	TDEE          float64            `json:"tdee"`
	DailyCalories float64            `json:"daily_calories"`
	Macros        MacrosDTO          `json:"macros"`
	MealCalories  map[string]float64 `json:"meal_calories"`
	Policy        string             `json:"policy"`
	GeneratedAt   string             `json:"generated_at"`
}

// AdjustedRecipesDTO for stateless adjustment results
type AdjustedRecipesDTO struct {
	MealCalories  map[string]float64 `json:"meal_calories"`
	Recipes       []recipe.Recipe    `json:"recipes"`
	TotalCalories int                `json:"total_calories"`
}

// AdjustedDayDTO for one catalog day scaled to a profile
type AdjustedDayDTO struct {
	Week          int                `json:"week"`
	Day           int                `json:"day"`
	MealCalories  map[string]float64 `json:"meal_calories"`
	Recipes       []recipe.Recipe    `json:"recipes"`
	TotalCalories int                `json:"total_calories"`
}

// AdjustedWeekDTO for a full catalog week
type AdjustedWeekDTO struct {
	ProfileID uuid.UUID        `json:"profile_id"`
	Week      int              `json:"week"`
	Report    ReportDTO        `json:"report"`
	Days      []AdjustedDayDTO `json:"days"`
}

// CatalogRecipeDTO for stored catalog recipes
type CatalogRecipeDTO struct {
	ID     uuid.UUID     `json:"id"`
	Week   int           `json:"week"`
	Day    int           `json:"day"`
	Recipe recipe.Recipe `json:"recipe"`
}
