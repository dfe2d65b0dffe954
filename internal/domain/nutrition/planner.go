package nutrition

import (
	"time"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"go.uber.org/zap"
)

// NutritionReport is an immutable snapshot of one planning request.
type NutritionReport struct {
	BMR           float64      `json:"bmr"`
	TDEE          float64      `json:"tdee"`
	DailyCalories float64      `json:"daily_calories"`
	Macros        MacroTargets `json:"macros"`
	MealCalories  MealCalories `json:"meal_calories"`
	Policy        string       `json:"policy"`
	Profile       UserProfile  `json:"profile"`
	GeneratedAt   time.Time    `json:"generated_at"`
}

// Planner is the entry point of the engine. It holds no mutable state and may
// be shared between goroutines.
type Planner struct {
	adjuster *Adjuster
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Planner
type Option func(*Planner)

// WithClock overrides the clock used to derive ages and report timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) {
		p.now = now
	}
}

// NewPlanner creates a nutrition planner
func NewPlanner(logger *zap.Logger, opts ...Option) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Planner{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.adjuster = NewAdjuster(p.logger)
	return p
}

// DailyCalories returns the daily calorie target for profile.
func (p *Planner) DailyCalories(profile UserProfile) float64 {
	p.logFallbacks(profile)
	return DailyCalories(profile, p.now().Year())
}

// PlanFor computes the daily target, macros and per-meal calories for a
// profile. The only error is an invalid distribution policy.
func (p *Planner) PlanFor(profile UserProfile, policy DistributionPolicy) (NutritionReport, error) {
	now := p.now()
	p.logFallbacks(profile)

	bmr := BMR(profile, now.Year())
	tdee := TDEE(bmr, profile)
	daily := DailyCalories(profile, now.Year())

	meals, err := Distribute(daily, policy)
	if err != nil {
		return NutritionReport{}, err
	}

	if adjusted := AdjustForGoal(tdee, profile); adjusted < MinimumDailyCalories {
		p.logger.Warn("Calorie target raised to floor",
			zap.Float64("computed", adjusted),
			zap.Float64("floor", MinimumDailyCalories),
		)
	}

	return NutritionReport{
		BMR:           bmr,
		TDEE:          tdee,
		DailyCalories: daily,
		Macros:        Macros(profile, daily),
		MealCalories:  meals,
		Policy:        policy.Name(),
		Profile:       profile,
		GeneratedAt:   now,
	}, nil
}

// AdjustRecipes scales recipes to the per-meal targets of profile under
// policy. Recipes whose meal type has no target are dropped.
func (p *Planner) AdjustRecipes(profile UserProfile, policy DistributionPolicy, recipes []recipe.Recipe) ([]recipe.Recipe, error) {
	meals, err := Distribute(p.DailyCalories(profile), policy)
	if err != nil {
		return nil, err
	}
	return p.adjuster.Adjust(recipes, meals), nil
}

// AdjustToTargets scales recipes to targets taken from an existing report.
func (p *Planner) AdjustToTargets(recipes []recipe.Recipe, targets MealCalories) []recipe.Recipe {
	return p.adjuster.Adjust(recipes, targets)
}

// logFallbacks reports every profile field that fell back to a default.
func (p *Planner) logFallbacks(profile UserProfile) {
	if _, ok := ResolveGender(profile.Gender); !ok {
		p.logger.Debug("Unrecognised gender, using non-male equation", zap.String("gender", profile.Gender))
	}
	if _, ok := Age(profile.BirthYear, p.now().Year()); !ok {
		p.logger.Debug("Invalid birth year, using default age",
			zap.String("birth_year", profile.BirthYear),
			zap.Int("default_age", DefaultAge),
		)
	}
	if profile.HeightCm <= 0 {
		p.logger.Debug("Missing height, using default", zap.Float64("default_height_cm", DefaultHeightCm))
	}
	if profile.WeightKg <= 0 {
		p.logger.Warn("Non-positive body weight", zap.Float64("weight_kg", profile.WeightKg))
	}
	if _, ok := ResolveActivityLevel(profile.ActivityLevel); !ok {
		p.logger.Debug("Unrecognised activity level, using default factor",
			zap.String("activity_level", profile.ActivityLevel),
			zap.Float64("default_factor", DefaultActivityFactor),
		)
	}
	if _, ok := ResolveGoal(profile.Goal); !ok {
		p.logger.Debug("Unrecognised goal, planning for maintenance", zap.String("goal", profile.Goal))
	}
}
