// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gormModels "github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/gorm"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// SetupDatabase creates and configures the SQLite database and migrates the schema
func SetupDatabase(dbPath, logLevel string, log *zap.Logger) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = MemoryPath
	}

	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         gormModels.NewLogger(log, logLevel, 100*time.Millisecond),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every pooled connection to :memory: would see its own empty database
	if dbPath == MemoryPath {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// DemoProfileID identifies the seeded demo profile
var DemoProfileID = uuid.MustParse("6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f")

// SeedDatabase loads a demo profile and one week of catalog recipes
func SeedDatabase(ctx context.Context, db *gorm.DB) error {
	var profileCount int64
	if err := db.WithContext(ctx).Model(&gormModels.ProfileModel{}).Count(&profileCount).Error; err != nil {
		return fmt.Errorf("failed to count profiles: %w", err)
	}
	if profileCount > 0 {
		return nil // Already seeded
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		demo := gormModels.ProfileModel{
			ID:            DemoProfileID,
			Gender:        "female",
			WeightKg:      64,
			HeightCm:      165,
			BirthYear:     "1992",
			ActivityLevel: "moderate",
			Goal:          "maintain",
		}
		if err := tx.Create(&demo).Error; err != nil {
			return fmt.Errorf("failed to create demo profile: %w", err)
		}

		for _, r := range demoWeek() {
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("failed to create demo recipe %q: %w", r.Title, err)
			}
		}
		return nil
	})
}

type demoRecipe struct {
	title        string
	mealType     string
	calories     int
	ingredients  gormModels.IngredientList
	instructions gormModels.StringSlice
}

var demoBreakfasts = []demoRecipe{
	{
		title: "Oatmeal with banana", mealType: "breakfast", calories: 380,
		ingredients: gormModels.IngredientList{
			{Name: "rolled oats", Quantity: "60 g"},
			{Name: "milk", Quantity: "250 ml"},
			{Name: "banana", Quantity: "120 g"},
			{Name: "honey", Quantity: "1 tbsp"},
		},
		instructions: gormModels.StringSlice{"Simmer the oats in milk for 5 minutes.", "Top with sliced banana and honey."},
	},
	{
		title: "Spinach omelette", mealType: "breakfast", calories: 320,
		ingredients: gormModels.IngredientList{
			{Name: "egg", Quantity: "150 g"},
			{Name: "spinach", Quantity: "40 g"},
			{Name: "olive oil", Quantity: "1 tsp"},
			{Name: "salt", Quantity: "to taste"},
		},
		instructions: gormModels.StringSlice{"Beat the eggs.", "Wilt the spinach in oil, add the eggs and fold."},
	},
	{
		title: "Greek yogurt bowl", mealType: "breakfast", calories: 300,
		ingredients: gormModels.IngredientList{
			{Name: "greek yogurt", Quantity: "200 g"},
			{Name: "apple", Quantity: "180 g"},
			{Name: "walnuts", Quantity: "15 g"},
		},
		instructions: gormModels.StringSlice{"Dice the apple.", "Layer yogurt, apple and walnuts."},
	},
}

var demoLunches = []demoRecipe{
	{
		title: "Chicken and sweet potato", mealType: "lunch", calories: 560,
		ingredients: gormModels.IngredientList{
			{Name: "chicken breast", Quantity: "150 g"},
			{Name: "sweet potato", Quantity: "260 g"},
			{Name: "olive oil", Quantity: "1 tbsp"},
		},
		instructions: gormModels.StringSlice{"Roast the sweet potato at 200C for 30 minutes.", "Grill the chicken and serve together."},
	},
	{
		title: "Lentil salad", mealType: "lunch", calories: 480,
		ingredients: gormModels.IngredientList{
			{Name: "cooked lentils", Quantity: "200 g"},
			{Name: "tomato", Quantity: "120 g"},
			{Name: "cucumber", Quantity: "150 g"},
			{Name: "lemon", Quantity: "50 g"},
		},
		instructions: gormModels.StringSlice{"Chop the vegetables.", "Toss with lentils and lemon juice."},
	},
}

var demoDinners = []demoRecipe{
	{
		title: "Salmon with vegetables", mealType: "dinner", calories: 520,
		ingredients: gormModels.IngredientList{
			{Name: "salmon fillet", Quantity: "140 g"},
			{Name: "zucchini", Quantity: "200 g"},
			{Name: "carrot", Quantity: "60 g"},
		},
		instructions: gormModels.StringSlice{"Bake the salmon for 15 minutes.", "Saute the vegetables and plate."},
	},
	{
		title: "Vegetable stir fry", mealType: "dinner", calories: 450,
		ingredients: gormModels.IngredientList{
			{Name: "tofu", Quantity: "150 g"},
			{Name: "bell pepper", Quantity: "150 g"},
			{Name: "onion", Quantity: "110 g"},
			{Name: "soy sauce", Quantity: "2 tbsp"},
		},
		instructions: gormModels.StringSlice{"Fry the tofu until golden.", "Add the vegetables and soy sauce and cook for 5 minutes."},
	},
	{
		title: "Baked potato with beans", mealType: "dinner", calories: 490,
		ingredients: gormModels.IngredientList{
			{Name: "potato", Quantity: "340 g"},
			{Name: "black beans", Quantity: "120 g"},
			{Name: "cheddar", Quantity: "20 g"},
		},
		instructions: gormModels.StringSlice{"Bake the potatoes for 50 minutes.", "Fill with warm beans and cheese."},
	},
}

// demoWeek rotates the demo recipes across days 1..7 of week 1
func demoWeek() []gormModels.CatalogRecipeModel {
	models := make([]gormModels.CatalogRecipeModel, 0, 21)
	for day := 1; day <= 7; day++ {
		picks := []demoRecipe{
			demoBreakfasts[(day-1)%len(demoBreakfasts)],
			demoLunches[(day-1)%len(demoLunches)],
			demoDinners[(day-1)%len(demoDinners)],
		}
		for pos, r := range picks {
			models = append(models, gormModels.CatalogRecipeModel{
				Week:         1,
				Day:          day,
				Position:     pos,
				Title:        r.title,
				MealType:     r.mealType,
				Calories:     r.calories,
				Ingredients:  append(gormModels.IngredientList(nil), r.ingredients...),
				Instructions: append(gormModels.StringSlice(nil), r.instructions...),
			})
		}
	}
	return models
}
