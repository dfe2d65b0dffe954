package handlers

import (
	"net/http"
	"strconv"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/alchemorsel/nutriplan/internal/ports/inbound"
	"github.com/alchemorsel/nutriplan/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NutritionAPIHandlers handles the nutrition planning endpoints
type NutritionAPIHandlers struct {
	service   inbound.NutritionService
	validator *RequestValidator
	logger    *zap.Logger
}

// NewNutritionAPIHandlers creates a new nutrition handlers instance
func NewNutritionAPIHandlers(service inbound.NutritionService, logger *zap.Logger) *NutritionAPIHandlers {
	return &NutritionAPIHandlers{
		service:   service,
		validator: NewRequestValidator(),
		logger:    logger.Named("nutrition-api"),
	}
}

// Request DTOs

// ProfileRequest carries the profile fields of onboarding. Missing or zero
// values fall back to the planner defaults.
type ProfileRequest struct {
	Gender        string  `json:"gender" validate:"max=32,no_xss"`
	WeightKg      float64 `json:"weight_kg" validate:"gte=0,lte=500"`
	HeightCm      float64 `json:"height_cm" validate:"gte=0,lte=300"`
	HeightFeet    float64 `json:"height_feet" validate:"gte=0,lte=9"`
	HeightInches  float64 `json:"height_inches" validate:"gte=0,lte=119"`
	BirthYear     string  `json:"birth_year" validate:"max=8"`
	ActivityLevel string  `json:"activity_level" validate:"max=64,no_xss"`
	Goal          string  `json:"goal" validate:"max=64,no_xss"`
}

// UpdateProfileRequest changes the supplied fields only
type UpdateProfileRequest struct {
	Gender        *string  `json:"gender" validate:"omitempty,max=32,no_xss"`
	WeightKg      *float64 `json:"weight_kg" validate:"omitempty,gte=0,lte=500"`
	HeightCm      *float64 `json:"height_cm" validate:"omitempty,gte=0,lte=300"`
	BirthYear     *string  `json:"birth_year" validate:"omitempty,max=8"`
	ActivityLevel *string  `json:"activity_level" validate:"omitempty,max=64,no_xss"`
	Goal          *string  `json:"goal" validate:"omitempty,max=64,no_xss"`
}

// PolicyRequest selects a preset by name or supplies custom weights
type PolicyRequest struct {
	Name   string                `json:"name" validate:"max=32"`
	Custom *CustomWeightsRequest `json:"custom"`
}

// CustomWeightsRequest are relative breakfast/lunch/dinner weights
type CustomWeightsRequest struct {
	Breakfast float64 `json:"breakfast"`
	Lunch     float64 `json:"lunch"`
	Dinner    float64 `json:"dinner"`
}

// IngredientRequest is one ingredient line
type IngredientRequest struct {
	Name     string `json:"name" validate:"required,max=200,no_xss"`
	Quantity string `json:"quantity" validate:"max=100,no_xss"`
	Checked  bool   `json:"checked"`
}

// RecipeRequest is a recipe supplied by the client
type RecipeRequest struct {
	Title        string              `json:"title" validate:"required,max=200,no_xss"`
	MealType     string              `json:"meal_type" validate:"required,meal_type"`
	Image        string              `json:"image" validate:"max=2048"`
	Ingredients  []IngredientRequest `json:"ingredients" validate:"max=100,dive"`
	Instructions []string            `json:"instructions" validate:"max=100,dive,required,max=2000"`
	Calories     int                 `json:"calories" validate:"gte=0,lte=10000"`
}

// PlanRequest is the body of POST /plan
type PlanRequest struct {
	Profile ProfileRequest `json:"profile"`
	Policy  PolicyRequest  `json:"policy"`
}

// AdjustRequest is the body of POST /adjust
type AdjustRequest struct {
	Profile ProfileRequest  `json:"profile"`
	Policy  PolicyRequest   `json:"policy"`
	Recipes []RecipeRequest `json:"recipes" validate:"required,min=1,max=50,dive"`
}

// AddRecipeRequest is the body of POST /recipes
type AddRecipeRequest struct {
	Week   int           `json:"week" validate:"required,gte=1"`
	Day    int           `json:"day" validate:"required,gte=1,lte=7"`
	Recipe RecipeRequest `json:"recipe"`
}

// Plan handles POST /api/v1/plan
func (h *NutritionAPIHandlers) Plan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if !h.bind(w, r, &req) {
		return
	}

	report, err := h.service.Plan(r.Context(), inbound.PlanCommand{
		Profile: req.Profile.toInput(),
		Policy:  req.Policy.toParams(),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: report})
}

// Adjust handles POST /api/v1/adjust
func (h *NutritionAPIHandlers) Adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if !h.bind(w, r, &req) {
		return
	}

	recipes := make([]recipe.Recipe, 0, len(req.Recipes))
	for _, rr := range req.Recipes {
		recipes = append(recipes, rr.toRecipe())
	}

	result, err := h.service.AdjustRecipes(r.Context(), inbound.AdjustRecipesCommand{
		Profile: req.Profile.toInput(),
		Policy:  req.Policy.toParams(),
		Recipes: recipes,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: result})
}

// CreateProfile handles POST /api/v1/profiles
func (h *NutritionAPIHandlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if !h.bind(w, r, &req) {
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), inbound.CreateProfileCommand{ProfileInput: req.toInput()})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/v1/profiles/"+profile.ID.String())
	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    profile,
		Message: "Profile created successfully",
	})
}

// GetProfile handles GET /api/v1/profiles/{id}
func (h *NutritionAPIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: profile})
}

// UpdateProfile handles PUT /api/v1/profiles/{id}
func (h *NutritionAPIHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req UpdateProfileRequest
	if !h.bind(w, r, &req) {
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), inbound.UpdateProfileCommand{
		ProfileID:     id,
		Gender:        req.Gender,
		WeightKg:      req.WeightKg,
		HeightCm:      req.HeightCm,
		BirthYear:     req.BirthYear,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    profile,
		Message: "Profile updated successfully",
	})
}

// GetReport handles GET /api/v1/profiles/{id}/report
func (h *NutritionAPIHandlers) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	policy, err := policyFromQuery(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	report, err := h.service.PlanForProfile(r.Context(), id, policy)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: report})
}

// AdjustDay handles GET /api/v1/profiles/{id}/weeks/{week}/days/{day}
func (h *NutritionAPIHandlers) AdjustDay(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	week, err := intParam(r, "week")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	day, err := intParam(r, "day")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	policy, err := policyFromQuery(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.service.AdjustDay(r.Context(), id, week, day, policy)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: result})
}

// AdjustWeek handles GET /api/v1/profiles/{id}/weeks/{week}
func (h *NutritionAPIHandlers) AdjustWeek(w http.ResponseWriter, r *http.Request) {
	id, err := profileID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	week, err := intParam(r, "week")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	policy, err := policyFromQuery(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.service.AdjustWeek(r.Context(), id, week, policy)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: result})
}

// AddRecipe handles POST /api/v1/recipes
func (h *NutritionAPIHandlers) AddRecipe(w http.ResponseWriter, r *http.Request) {
	var req AddRecipeRequest
	if !h.bind(w, r, &req) {
		return
	}

	entry, err := h.service.AddRecipe(r.Context(), inbound.AddRecipeCommand{
		Week:   req.Week,
		Day:    req.Day,
		Recipe: req.Recipe.toRecipe(),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    entry,
		Message: "Recipe added to catalog",
	})
}

// Helper methods

// bind decodes and validates a request body, writing the error response
// itself when it fails
func (h *NutritionAPIHandlers) bind(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeError(w, r, h.logger, err)
		return false
	}
	if err := h.validator.Validate(dst); err != nil {
		writeError(w, r, h.logger, err)
		return false
	}
	return true
}

func profileID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewValidationError("profile id must be a UUID").WithMetadata("id", raw)
	}
	return id, nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name + " must be an integer").WithMetadata(name, raw)
	}
	return n, nil
}

// policyFromQuery reads ?policy=name, or custom weights from
// ?breakfast=&lunch=&dinner= when any of them is present
func policyFromQuery(r *http.Request) (inbound.PolicyParams, error) {
	q := r.URL.Query()
	params := inbound.PolicyParams{Name: q.Get("policy")}

	if !q.Has("breakfast") && !q.Has("lunch") && !q.Has("dinner") {
		return params, nil
	}

	weights := make([]float64, 3)
	for i, meal := range []string{"breakfast", "lunch", "dinner"} {
		raw := q.Get(meal)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return inbound.PolicyParams{}, errors.NewValidationError(meal + " weight must be a number").WithMetadata(meal, raw)
		}
		weights[i] = v
	}
	params.Custom = &inbound.CustomWeights{Breakfast: weights[0], Lunch: weights[1], Dinner: weights[2]}
	return params, nil
}

func (p ProfileRequest) toInput() inbound.ProfileInput {
	return inbound.ProfileInput{
		Gender:        p.Gender,
		WeightKg:      p.WeightKg,
		HeightCm:      p.HeightCm,
		HeightFeet:    p.HeightFeet,
		HeightInches:  p.HeightInches,
		BirthYear:     p.BirthYear,
		ActivityLevel: p.ActivityLevel,
		Goal:          p.Goal,
	}
}

func (p PolicyRequest) toParams() inbound.PolicyParams {
	params := inbound.PolicyParams{Name: p.Name}
	if p.Custom != nil {
		params.Custom = &inbound.CustomWeights{
			Breakfast: p.Custom.Breakfast,
			Lunch:     p.Custom.Lunch,
			Dinner:    p.Custom.Dinner,
		}
	}
	return params
}

func (rr RecipeRequest) toRecipe() recipe.Recipe {
	mealType, _ := recipe.ParseMealType(rr.MealType)

	ingredients := make([]recipe.Ingredient, 0, len(rr.Ingredients))
	for _, ing := range rr.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Checked: ing.Checked})
	}

	return recipe.Recipe{
		Title:        rr.Title,
		MealType:     mealType,
		Image:        rr.Image,
		Ingredients:  ingredients,
		Instructions: append([]string(nil), rr.Instructions...),
		Calories:     rr.Calories,
	}
}
