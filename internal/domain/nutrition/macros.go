package nutrition

import "math"

const (
	proteinGramsPerKg = 1.6
	fatCalorieShare   = 0.25

	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// MacroTargets is the daily macronutrient allocation. Gram values are never
// negative.
type MacroTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Fat      float64 `json:"fat_g"`
	Carbs    float64 `json:"carbs_g"`
}

// Macros allocates protein by body weight, a fixed share of calories to fat
// and the remainder to carbohydrates. When protein and fat already exceed the
// target, carbohydrates saturate at zero.
func Macros(p UserProfile, dailyCalories float64) MacroTargets {
	protein := math.Max(p.WeightKg*proteinGramsPerKg, 0)
	proteinKcal := protein * kcalPerGramProtein

	fatKcal := dailyCalories * fatCalorieShare
	carbKcal := math.Max(dailyCalories-proteinKcal-fatKcal, 0)

	return MacroTargets{
		Calories: dailyCalories,
		Protein:  protein,
		Fat:      fatKcal / kcalPerGramFat,
		Carbs:    carbKcal / kcalPerGramCarbs,
	}
}

func (m MacroTargets) share(kcal float64) float64 {
	if m.Calories <= 0 {
		return 0
	}
	return kcal / m.Calories * 100
}

// ProteinPercent is the share of calories from protein, in percent.
func (m MacroTargets) ProteinPercent() float64 { return m.share(m.Protein * kcalPerGramProtein) }

// FatPercent is the share of calories from fat, in percent.
func (m MacroTargets) FatPercent() float64 { return m.share(m.Fat * kcalPerGramFat) }

// CarbsPercent is the share of calories from carbohydrates, in percent.
func (m MacroTargets) CarbsPercent() float64 { return m.share(m.Carbs * kcalPerGramCarbs) }
