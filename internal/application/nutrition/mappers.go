package nutrition

import (
	"time"

	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/ports/inbound"
	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/google/uuid"
)

func toUserProfile(in inbound.ProfileInput) nutrition.UserProfile {
	return nutrition.NewUserProfile(
		in.Gender,
		in.WeightKg,
		nutrition.HeightInput{Cm: in.HeightCm, Feet: in.HeightFeet, Inches: in.HeightInches},
		in.BirthYear,
		in.ActivityLevel,
		in.Goal,
	)
}

func profileToDTO(r *outbound.ProfileRecord) *inbound.ProfileDTO {
	return &inbound.ProfileDTO{
		ID:            r.ID,
		Gender:        r.Profile.Gender,
		WeightKg:      r.Profile.WeightKg,
		HeightCm:      r.Profile.HeightCm,
		BirthYear:     r.Profile.BirthYear,
		ActivityLevel: r.Profile.ActivityLevel,
		Goal:          r.Profile.Goal,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
}

func reportToDTO(r nutrition.NutritionReport, profileID *uuid.UUID) *inbound.ReportDTO {
	return &inbound.ReportDTO{
		ID:            uuid.New(),
		ProfileID:     profileID,
		BMR:           r.BMR,
		TDEE:          r.TDEE,
		DailyCalories: r.DailyCalories,
		Macros: inbound.MacrosDTO{
			Calories:       r.Macros.Calories,
			ProteinGrams:   r.Macros.Protein,
			FatGrams:       r.Macros.Fat,
			CarbsGrams:     r.Macros.Carbs,
			ProteinPercent: r.Macros.ProteinPercent(),
			FatPercent:     r.Macros.FatPercent(),
			CarbsPercent:   r.Macros.CarbsPercent(),
		},
		MealCalories: mealCaloriesToMap(r.MealCalories),
		Policy:       r.Policy,
		GeneratedAt:  r.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

func mealCaloriesToMap(m nutrition.MealCalories) map[string]float64 {
	out := make(map[string]float64, len(m))
	for meal, kcal := range m {
		out[meal.String()] = kcal
	}
	return out
}
