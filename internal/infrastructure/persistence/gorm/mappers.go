// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
)

// ProfileToModel converts a stored profile to a GORM model
func ProfileToModel(r *outbound.ProfileRecord) *ProfileModel {
	return &ProfileModel{
		ID:            r.ID,
		Gender:        r.Profile.Gender,
		WeightKg:      r.Profile.WeightKg,
		HeightCm:      r.Profile.HeightCm,
		BirthYear:     r.Profile.BirthYear,
		ActivityLevel: r.Profile.ActivityLevel,
		Goal:          r.Profile.Goal,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ModelToProfile converts a GORM model to a stored profile
func ModelToProfile(m *ProfileModel) *outbound.ProfileRecord {
	return &outbound.ProfileRecord{
		ID: m.ID,
		Profile: nutrition.UserProfile{
			Gender:        m.Gender,
			WeightKg:      m.WeightKg,
			HeightCm:      m.HeightCm,
			BirthYear:     m.BirthYear,
			ActivityLevel: m.ActivityLevel,
			Goal:          m.Goal,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CatalogEntryToModel converts a catalog entry to a GORM model
func CatalogEntryToModel(e *outbound.CatalogEntry) *CatalogRecipeModel {
	r := e.Recipe.Clone()
	return &CatalogRecipeModel{
		ID:           e.ID,
		Week:         e.Week,
		Day:          e.Day,
		Title:        r.Title,
		MealType:     r.MealType.String(),
		Image:        r.Image,
		Calories:     r.Calories,
		Ingredients:  IngredientList(r.Ingredients),
		Instructions: StringSlice(r.Instructions),
		CreatedAt:    e.CreatedAt,
	}
}

// ModelToCatalogEntry converts a GORM model to a catalog entry
func ModelToCatalogEntry(m *CatalogRecipeModel) outbound.CatalogEntry {
	return outbound.CatalogEntry{
		ID:   m.ID,
		Week: m.Week,
		Day:  m.Day,
		Recipe: recipe.Recipe{
			Title:        m.Title,
			MealType:     recipe.MealType(m.MealType),
			Image:        m.Image,
			Ingredients:  []recipe.Ingredient(m.Ingredients),
			Instructions: []string(m.Instructions),
			Calories:     m.Calories,
		},
		CreatedAt: m.CreatedAt,
	}
}
