package nutrition

import "math"

// MinimumDailyCalories is the hard floor for any daily target.
const MinimumDailyCalories = 1200.0

// BMR computes the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(p UserProfile, currentYear int) float64 {
	age, _ := Age(p.BirthYear, currentYear)
	base := 10*p.WeightKg + 6.25*p.EffectiveHeightCm() - 5*float64(age)

	if g, _ := ResolveGender(p.Gender); g == GenderMale {
		return base + 5
	}
	return base - 161
}

// TDEE scales a BMR by the profile's activity factor.
func TDEE(bmr float64, p UserProfile) float64 {
	factor, _ := ResolveActivityFactor(p.ActivityLevel)
	return bmr * factor
}

// AdjustForGoal applies the goal's deficit or surplus to a TDEE.
func AdjustForGoal(tdee float64, p UserProfile) float64 {
	goal, _ := ResolveGoal(p.Goal)
	return tdee + goal.CalorieAdjustment()
}

// DailyCalories is the goal-adjusted TDEE, never below MinimumDailyCalories.
func DailyCalories(p UserProfile, currentYear int) float64 {
	adjusted := AdjustForGoal(TDEE(BMR(p, currentYear), p), p)
	return math.Max(adjusted, MinimumDailyCalories)
}
