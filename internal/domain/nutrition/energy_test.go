package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testYear = 2026

func referenceProfile() UserProfile {
	return UserProfile{
		Gender:        "male",
		WeightKg:      80,
		HeightCm:      180,
		BirthYear:     "1996",
		ActivityLevel: "moderate",
		Goal:          "lose weight",
	}
}

func TestAge(t *testing.T) {
	age, ok := Age("1996", testYear)
	assert.True(t, ok)
	assert.Equal(t, 30, age)

	age, ok = Age(" 1980 ", testYear)
	assert.True(t, ok)
	assert.Equal(t, 46, age)

	age, ok = Age("2015", testYear)
	assert.True(t, ok)
	assert.Equal(t, MinimumAge, age, "minors are floored")

	for _, bad := range []string{"", "nineteen", "1900", "0", "-5"} {
		age, ok = Age(bad, testYear)
		assert.False(t, ok, bad)
		assert.Equal(t, DefaultAge, age, bad)
	}
}

func TestResolveHeight(t *testing.T) {
	cm, ok := ResolveHeight(HeightInput{Cm: 165})
	assert.True(t, ok)
	assert.Equal(t, 165.0, cm)

	cm, ok = ResolveHeight(HeightInput{Feet: 5, Inches: 11})
	assert.True(t, ok)
	assert.InDelta(t, 180.34, cm, 1e-9)

	cm, ok = ResolveHeight(HeightInput{Cm: 172, Feet: 6})
	assert.True(t, ok)
	assert.Equal(t, 172.0, cm, "centimetres take precedence")

	cm, ok = ResolveHeight(HeightInput{})
	assert.False(t, ok)
	assert.Equal(t, DefaultHeightCm, cm)

	p := NewUserProfile("f", 60, HeightInput{}, "1990", "low", "maintain")
	assert.Equal(t, DefaultHeightCm, p.HeightCm)
	assert.Equal(t, DefaultHeightCm, UserProfile{}.EffectiveHeightCm())
}

func TestEnergyModel_ReferenceProfile(t *testing.T) {
	p := referenceProfile()

	bmr := BMR(p, testYear)
	assert.InDelta(t, 10*80+6.25*180-5*30+5, bmr, 1e-9)
	assert.InDelta(t, 1780.0, bmr, 1e-9)

	tdee := TDEE(bmr, p)
	assert.InDelta(t, 2759.0, tdee, 1e-9)

	assert.InDelta(t, 2259.0, AdjustForGoal(tdee, p), 1e-9)
	assert.InDelta(t, 2259.0, DailyCalories(p, testYear), 1e-9)
}

func TestBMR_NonMaleEquation(t *testing.T) {
	p := referenceProfile()
	male := BMR(p, testYear)

	for _, g := range []string{"female", "F", "", "other"} {
		p.Gender = g
		assert.InDelta(t, male-166, BMR(p, testYear), 1e-9, g)
	}
}

func TestAdjustForGoal(t *testing.T) {
	p := referenceProfile()

	p.Goal = "Gain muscle"
	assert.Equal(t, 2300.0, AdjustForGoal(2000, p))

	p.Goal = "maintain"
	assert.Equal(t, 2000.0, AdjustForGoal(2000, p))

	p.Goal = "whatever"
	assert.Equal(t, 2000.0, AdjustForGoal(2000, p))
}

func TestDailyCalories_Floor(t *testing.T) {
	p := UserProfile{
		Gender:        "female",
		WeightKg:      40,
		HeightCm:      145,
		BirthYear:     "1940",
		ActivityLevel: "sedentary",
		Goal:          "lose",
	}
	assert.Equal(t, MinimumDailyCalories, DailyCalories(p, testYear))

	p.WeightKg = -20
	assert.Equal(t, MinimumDailyCalories, DailyCalories(p, testYear))
}

func TestMacros(t *testing.T) {
	m := Macros(referenceProfile(), 2104)

	assert.Equal(t, 2104.0, m.Calories)
	assert.InDelta(t, 128.0, m.Protein, 1e-9)
	assert.InDelta(t, 526.0/9, m.Fat, 1e-9)
	assert.InDelta(t, (2104.0-512-526)/4, m.Carbs, 1e-9)

	total := m.ProteinPercent() + m.FatPercent() + m.CarbsPercent()
	assert.InDelta(t, 100.0, total, 1e-9)
	assert.InDelta(t, 25.0, m.FatPercent(), 1e-9)
}

func TestMacros_CarbsSaturateAtZero(t *testing.T) {
	heavy := UserProfile{WeightKg: 200}
	m := Macros(heavy, 1200)

	assert.InDelta(t, 320.0, m.Protein, 1e-9)
	assert.Zero(t, m.Carbs)
	assert.GreaterOrEqual(t, m.Fat, 0.0)
}

func TestMacros_NonPositiveWeight(t *testing.T) {
	m := Macros(UserProfile{WeightKg: -10}, 1500)
	assert.Zero(t, m.Protein)
	assert.InDelta(t, 1500*0.75/4, m.Carbs, 1e-9)

	assert.Zero(t, MacroTargets{}.ProteinPercent())
}
