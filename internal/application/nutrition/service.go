// Package nutrition provides the application layer for nutrition planning
// This implements the use cases defined in the inbound ports
package nutrition

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"time"

	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/alchemorsel/nutriplan/internal/ports/inbound"
	"github.com/alchemorsel/nutriplan/internal/ports/outbound"
	"github.com/alchemorsel/nutriplan/pkg/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const reportKeyPrefix = "nutrition:report:"

// Metrics receives operation measurements
type Metrics interface {
	ObserveOperation(operation string, start time.Time, err error)
	ReportCache(result string)
	DailyCalories(kcal float64)
	RecipesAdjusted(mealType string, n int)
}

// Config holds the planning defaults of the service
type Config struct {
	DefaultPolicy   string
	ReportTTL       time.Duration
	WeekConcurrency int
	DaysPerWeek     int
}

// NutritionService implements the nutrition planning use cases
type NutritionService struct {
	profiles outbound.ProfileRepository
	catalog  outbound.RecipeCatalogRepository
	cache    outbound.CacheRepository
	planner  *nutrition.Planner
	metrics  Metrics
	tracer   trace.Tracer
	logger   *zap.Logger
	config   Config
	now      func() time.Time
}

// NewNutritionService creates a new nutrition service. A nil metrics or
// tracer disables that concern.
func NewNutritionService(
	profiles outbound.ProfileRepository,
	catalog outbound.RecipeCatalogRepository,
	cache outbound.CacheRepository,
	planner *nutrition.Planner,
	metrics Metrics,
	tracer trace.Tracer,
	logger *zap.Logger,
	config Config,
) *NutritionService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("nutrition-service")
	}
	if config.WeekConcurrency < 1 {
		config.WeekConcurrency = 1
	}
	if config.DaysPerWeek < 1 || config.DaysPerWeek > 7 {
		config.DaysPerWeek = 7
	}

	return &NutritionService{
		profiles: profiles,
		catalog:  catalog,
		cache:    cache,
		planner:  planner,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger.Named("nutrition-service"),
		config:   config,
		now:      time.Now,
	}
}

var _ inbound.NutritionService = (*NutritionService)(nil)

// CreateProfile stores a new profile
func (s *NutritionService) CreateProfile(ctx context.Context, cmd inbound.CreateProfileCommand) (dto *inbound.ProfileDTO, err error) {
	ctx, finish := s.begin(ctx, "CreateProfile")
	defer func() { finish(err) }()

	if err := validateNumbers(cmd.WeightKg, cmd.HeightCm, cmd.HeightFeet, cmd.HeightInches); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &outbound.ProfileRecord{
		ID:        uuid.New(),
		Profile:   toUserProfile(cmd.ProfileInput),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.profiles.Create(ctx, record); err != nil {
		return nil, errors.NewDatabaseError("create profile", err)
	}

	s.logger.Info("Profile created", zap.String("profile_id", record.ID.String()))

	return profileToDTO(record), nil
}

// UpdateProfile applies the non-nil fields of cmd and drops cached reports
func (s *NutritionService) UpdateProfile(ctx context.Context, cmd inbound.UpdateProfileCommand) (dto *inbound.ProfileDTO, err error) {
	ctx, finish := s.begin(ctx, "UpdateProfile", attribute.String("profile.id", cmd.ProfileID.String()))
	defer func() { finish(err) }()

	record, err := s.loadProfile(ctx, cmd.ProfileID)
	if err != nil {
		return nil, err
	}

	p := &record.Profile
	if cmd.Gender != nil {
		p.Gender = *cmd.Gender
	}
	if cmd.WeightKg != nil {
		p.WeightKg = *cmd.WeightKg
	}
	if cmd.HeightCm != nil {
		p.HeightCm = *cmd.HeightCm
	}
	if cmd.BirthYear != nil {
		p.BirthYear = *cmd.BirthYear
	}
	if cmd.ActivityLevel != nil {
		p.ActivityLevel = *cmd.ActivityLevel
	}
	if cmd.Goal != nil {
		p.Goal = *cmd.Goal
	}
	if err := validateNumbers(p.WeightKg, p.HeightCm); err != nil {
		return nil, err
	}
	record.UpdatedAt = s.now().UTC()

	if err := s.profiles.Update(ctx, record); err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewProfileNotFoundError(cmd.ProfileID.String())
		}
		return nil, errors.NewDatabaseError("update profile", err)
	}

	// Stale reports expire with their TTL if invalidation fails
	if err := s.cache.DeleteByPrefix(ctx, reportKeyPrefix+record.ID.String()+":"); err != nil {
		s.logger.Warn("Failed to invalidate cached reports",
			zap.String("profile_id", record.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Profile updated", zap.String("profile_id", record.ID.String()))

	return profileToDTO(record), nil
}

// GetProfile returns a stored profile
func (s *NutritionService) GetProfile(ctx context.Context, profileID uuid.UUID) (dto *inbound.ProfileDTO, err error) {
	ctx, finish := s.begin(ctx, "GetProfile", attribute.String("profile.id", profileID.String()))
	defer func() { finish(err) }()

	record, err := s.loadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return profileToDTO(record), nil
}

// Plan computes a report for an inline profile
func (s *NutritionService) Plan(ctx context.Context, cmd inbound.PlanCommand) (dto *inbound.ReportDTO, err error) {
	_, finish := s.begin(ctx, "Plan")
	defer func() { finish(err) }()

	if err := validateNumbers(cmd.Profile.WeightKg, cmd.Profile.HeightCm, cmd.Profile.HeightFeet, cmd.Profile.HeightInches); err != nil {
		return nil, err
	}

	policy, _, err := s.resolvePolicy(cmd.Policy)
	if err != nil {
		return nil, err
	}

	report, err := s.plan(toUserProfile(cmd.Profile), policy)
	if err != nil {
		return nil, err
	}
	return reportToDTO(report, nil), nil
}

// PlanForProfile returns the report of a stored profile, cache first
func (s *NutritionService) PlanForProfile(ctx context.Context, profileID uuid.UUID, params inbound.PolicyParams) (dto *inbound.ReportDTO, err error) {
	ctx, finish := s.begin(ctx, "PlanForProfile", attribute.String("profile.id", profileID.String()))
	defer func() { finish(err) }()

	policy, policyKey, err := s.resolvePolicy(params)
	if err != nil {
		return nil, err
	}

	key := reportKey(profileID, policyKey)
	if cached, ok := s.cachedReport(ctx, key); ok {
		return cached, nil
	}

	record, err := s.loadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	report, err := s.plan(record.Profile, policy)
	if err != nil {
		return nil, err
	}
	dto = reportToDTO(report, &record.ID)

	s.storeReport(ctx, key, dto)

	return dto, nil
}

// AdjustRecipes scales inline recipes to an inline profile
func (s *NutritionService) AdjustRecipes(ctx context.Context, cmd inbound.AdjustRecipesCommand) (dto *inbound.AdjustedRecipesDTO, err error) {
	_, finish := s.begin(ctx, "AdjustRecipes", attribute.Int("recipes.count", len(cmd.Recipes)))
	defer func() { finish(err) }()

	if err := validateNumbers(cmd.Profile.WeightKg, cmd.Profile.HeightCm, cmd.Profile.HeightFeet, cmd.Profile.HeightInches); err != nil {
		return nil, err
	}
	if err := validateRecipes(cmd.Recipes); err != nil {
		return nil, err
	}

	policy, _, err := s.resolvePolicy(cmd.Policy)
	if err != nil {
		return nil, err
	}

	report, err := s.plan(toUserProfile(cmd.Profile), policy)
	if err != nil {
		return nil, err
	}

	adjusted := s.adjust(cmd.Recipes, report.MealCalories)

	return &inbound.AdjustedRecipesDTO{
		MealCalories:  mealCaloriesToMap(report.MealCalories),
		Recipes:       adjusted,
		TotalCalories: recipe.TotalCalories(adjusted),
	}, nil
}

// AdjustDay scales one catalog day to a stored profile
func (s *NutritionService) AdjustDay(ctx context.Context, profileID uuid.UUID, week, day int, params inbound.PolicyParams) (dto *inbound.AdjustedDayDTO, err error) {
	ctx, finish := s.begin(ctx, "AdjustDay",
		attribute.String("profile.id", profileID.String()),
		attribute.Int("catalog.week", week),
		attribute.Int("catalog.day", day),
	)
	defer func() { finish(err) }()

	if err := s.validateSlot(week, day); err != nil {
		return nil, err
	}

	policy, _, err := s.resolvePolicy(params)
	if err != nil {
		return nil, err
	}

	record, err := s.loadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	entries, err := s.catalog.FindByDay(ctx, week, day)
	if err != nil {
		return nil, errors.NewDatabaseError("load catalog day", err)
	}
	if len(entries) == 0 {
		return nil, errors.NewRecipeNotFoundError(week, day)
	}

	report, err := s.plan(record.Profile, policy)
	if err != nil {
		return nil, err
	}

	return s.adjustDay(week, day, entries, report.MealCalories), nil
}

// AdjustWeek scales every day of a catalog week concurrently. Days are
// returned in order; days without recipes are returned empty.
func (s *NutritionService) AdjustWeek(ctx context.Context, profileID uuid.UUID, week int, params inbound.PolicyParams) (dto *inbound.AdjustedWeekDTO, err error) {
	ctx, finish := s.begin(ctx, "AdjustWeek",
		attribute.String("profile.id", profileID.String()),
		attribute.Int("catalog.week", week),
	)
	defer func() { finish(err) }()

	if err := s.validateSlot(week, 1); err != nil {
		return nil, err
	}

	policy, _, err := s.resolvePolicy(params)
	if err != nil {
		return nil, err
	}

	record, err := s.loadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	entries, err := s.catalog.FindByWeek(ctx, week)
	if err != nil {
		return nil, errors.NewDatabaseError("load catalog week", err)
	}
	if len(entries) == 0 {
		return nil, errors.NewAppError(errors.CodeRecipeNotFound, "No recipes scheduled",
			fmt.Sprintf("No catalog recipes for week %d", week)).WithMetadata("week", week)
	}

	report, err := s.plan(record.Profile, policy)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int][]outbound.CatalogEntry, s.config.DaysPerWeek)
	for _, e := range entries {
		byDay[e.Day] = append(byDay[e.Day], e)
	}

	days := make([]inbound.AdjustedDayDTO, s.config.DaysPerWeek)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.WeekConcurrency)

	for i := range days {
		day := i + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			days[day-1] = *s.adjustDay(week, day, byDay[day], report.MealCalories)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "weekly adjustment interrupted")
	}

	s.logger.Debug("Adjusted catalog week",
		zap.String("profile_id", profileID.String()),
		zap.Int("week", week),
		zap.Int("recipes", len(entries)),
	)

	return &inbound.AdjustedWeekDTO{
		ProfileID: record.ID,
		Week:      week,
		Report:    *reportToDTO(report, &record.ID),
		Days:      days,
	}, nil
}

// AddRecipe schedules a recipe in the catalog
func (s *NutritionService) AddRecipe(ctx context.Context, cmd inbound.AddRecipeCommand) (dto *inbound.CatalogRecipeDTO, err error) {
	ctx, finish := s.begin(ctx, "AddRecipe",
		attribute.Int("catalog.week", cmd.Week),
		attribute.Int("catalog.day", cmd.Day),
	)
	defer func() { finish(err) }()

	if err := s.validateSlot(cmd.Week, cmd.Day); err != nil {
		return nil, err
	}

	r := cmd.Recipe.Clone()
	if mt, err := recipe.ParseMealType(string(r.MealType)); err == nil {
		r.MealType = mt
	}
	if err := r.Validate(); err != nil {
		return nil, errors.NewInvalidRecipeError(err)
	}

	entry := &outbound.CatalogEntry{
		ID:        uuid.New(),
		Week:      cmd.Week,
		Day:       cmd.Day,
		Recipe:    r,
		CreatedAt: s.now().UTC(),
	}
	if err := s.catalog.Create(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("create catalog recipe", err)
	}

	s.logger.Info("Catalog recipe added",
		zap.String("recipe_id", entry.ID.String()),
		zap.String("title", r.Title),
		zap.Int("week", cmd.Week),
		zap.Int("day", cmd.Day),
	)

	return &inbound.CatalogRecipeDTO{
		ID:     entry.ID,
		Week:   entry.Week,
		Day:    entry.Day,
		Recipe: entry.Recipe,
	}, nil
}

// Helper methods

// begin starts the span of an operation and returns a function that ends
// it and records metrics
func (s *NutritionService) begin(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "NutritionService."+operation, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.Debug("Operation failed", zap.String("operation", operation), zap.Error(err))
		}
		span.End()
		s.metrics.ObserveOperation(operation, start, err)
	}
}

func (s *NutritionService) loadProfile(ctx context.Context, id uuid.UUID) (*outbound.ProfileRecord, error) {
	record, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, outbound.ErrNotFound) {
			return nil, errors.NewProfileNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find profile", err)
	}
	return record, nil
}

// resolvePolicy returns the policy selected by params and its cache key segment
func (s *NutritionService) resolvePolicy(params inbound.PolicyParams) (nutrition.DistributionPolicy, string, error) {
	if c := params.Custom; c != nil {
		policy, err := nutrition.NewCustomDistribution(c.Breakfast, c.Lunch, c.Dinner)
		if err != nil {
			return nutrition.DistributionPolicy{}, "", errors.NewInvalidDistributionError(err)
		}
		return policy, fmt.Sprintf("custom-%g-%g-%g", c.Breakfast, c.Lunch, c.Dinner), nil
	}

	name := params.Name
	if name == "" {
		name = s.config.DefaultPolicy
	}
	policy, err := nutrition.ParseDistributionPolicy(name)
	if err != nil {
		return nutrition.DistributionPolicy{}, "", errors.NewUnknownPolicyError(name).WithCause(err)
	}
	return policy, policy.Name(), nil
}

func (s *NutritionService) plan(profile nutrition.UserProfile, policy nutrition.DistributionPolicy) (nutrition.NutritionReport, error) {
	report, err := s.planner.PlanFor(profile, policy)
	if err != nil {
		if stderrors.Is(err, nutrition.ErrInvalidDistribution) {
			return nutrition.NutritionReport{}, errors.NewInvalidDistributionError(err)
		}
		return nutrition.NutritionReport{}, errors.Wrap(err, "planning failed")
	}
	s.metrics.DailyCalories(report.DailyCalories)
	return report, nil
}

func (s *NutritionService) adjust(recipes []recipe.Recipe, targets nutrition.MealCalories) []recipe.Recipe {
	adjusted := s.planner.AdjustToTargets(recipes, targets)
	for _, group := range recipe.GroupByMeal(adjusted) {
		s.metrics.RecipesAdjusted(group.MealType.String(), len(group.Recipes))
	}
	return adjusted
}

func (s *NutritionService) adjustDay(week, day int, entries []outbound.CatalogEntry, targets nutrition.MealCalories) *inbound.AdjustedDayDTO {
	recipes := make([]recipe.Recipe, 0, len(entries))
	for _, e := range entries {
		recipes = append(recipes, e.Recipe)
	}

	adjusted := s.adjust(recipes, targets)

	return &inbound.AdjustedDayDTO{
		Week:          week,
		Day:           day,
		MealCalories:  mealCaloriesToMap(targets),
		Recipes:       adjusted,
		TotalCalories: recipe.TotalCalories(adjusted),
	}
}

func (s *NutritionService) cachedReport(ctx context.Context, key string) (*inbound.ReportDTO, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if stderrors.Is(err, outbound.ErrCacheMiss) {
			s.metrics.ReportCache("miss")
		} else {
			s.metrics.ReportCache("error")
			s.logger.Warn("Report cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var dto inbound.ReportDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		s.metrics.ReportCache("error")
		s.logger.Warn("Discarding undecodable cached report", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	s.metrics.ReportCache("hit")
	return &dto, true
}

func (s *NutritionService) storeReport(ctx context.Context, key string, dto *inbound.ReportDTO) {
	data, err := json.Marshal(dto)
	if err != nil {
		s.logger.Error("Failed to encode report for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.config.ReportTTL); err != nil {
		s.logger.Warn("Failed to cache report", zap.String("key", key), zap.Error(err))
	}
}

func (s *NutritionService) validateSlot(week, day int) error {
	if week < 1 {
		return errors.NewValidationError(fmt.Sprintf("week must be at least 1, got %d", week))
	}
	if day < 1 || day > s.config.DaysPerWeek {
		return errors.NewValidationError(fmt.Sprintf("day must be between 1 and %d, got %d", s.config.DaysPerWeek, day))
	}
	return nil
}

func validateNumbers(values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewValidationError("profile measurements must be finite numbers")
		}
	}
	return nil
}

func validateRecipes(recipes []recipe.Recipe) error {
	for _, r := range recipes {
		if r.Calories < 0 {
			return errors.NewInvalidRecipeError(fmt.Errorf("%q: %w", r.Title, recipe.ErrNegativeCalories))
		}
	}
	return nil
}

func reportKey(profileID uuid.UUID, policyKey string) string {
	return reportKeyPrefix + profileID.String() + ":" + policyKey
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, time.Time, error) {}
func (nopMetrics) ReportCache(string)                        {}
func (nopMetrics) DailyCalories(float64)                     {}
func (nopMetrics) RecipesAdjusted(string, int)               {}
