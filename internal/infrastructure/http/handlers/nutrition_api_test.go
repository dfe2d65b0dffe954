package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	app "github.com/alchemorsel/nutriplan/internal/application/nutrition"
	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/gorm"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/nutriplan/internal/infrastructure/persistence/sqlite"
	"github.com/alchemorsel/nutriplan/internal/ports/inbound"
	"github.com/alchemorsel/nutriplan/test/testutils"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// NutritionAPITestSuite drives the handlers through a chi router backed by
// a seeded SQLite catalog
type NutritionAPITestSuite struct {
	suite.Suite
	router http.Handler
	http   *testutils.HTTPAssertions
}

func (s *NutritionAPITestSuite) SetupTest() {
	db := testutils.SetupSeededTestDatabase(s.T())
	cache := memory.NewCacheRepository(0)
	s.T().Cleanup(func() { _ = cache.Close() })

	service := app.NewNutritionService(
		gorm.NewProfileRepository(db),
		gorm.NewRecipeCatalogRepository(db),
		cache,
		nutrition.NewPlanner(zap.NewNop(), nutrition.WithClock(func() time.Time {
			return time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
		})),
		nil,
		nil,
		zap.NewNop(),
		app.Config{DefaultPolicy: "balanced", ReportTTL: time.Minute, WeekConcurrency: 2, DaysPerWeek: 7},
	)

	h := NewNutritionAPIHandlers(service, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/plan", h.Plan)
	r.Post("/adjust", h.Adjust)
	r.Post("/profiles", h.CreateProfile)
	r.Get("/profiles/{id}", h.GetProfile)
	r.Put("/profiles/{id}", h.UpdateProfile)
	r.Get("/profiles/{id}/report", h.GetReport)
	r.Get("/profiles/{id}/weeks/{week}", h.AdjustWeek)
	r.Get("/profiles/{id}/weeks/{week}/days/{day}", h.AdjustDay)
	r.Post("/recipes", h.AddRecipe)

	s.router = r
	s.http = testutils.NewHTTPAssertions(s.T())
}

func (s *NutritionAPITestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *NutritionAPITestSuite) TestPlan() {
	rec := s.do(http.MethodPost, "/plan", `{
		"profile": {"gender": "male", "weight_kg": 80, "height_cm": 180, "birth_year": "1996",
		            "activity_level": "moderate", "goal": "lose weight"},
		"policy": {"name": "front_loaded"}
	}`)

	s.http.StatusCode(rec, http.StatusOK)
	var resp envelope[inbound.ReportDTO]
	s.http.JSONResponse(rec, &resp)
	s.True(resp.Success)
	s.InDelta(2259, resp.Data.DailyCalories, 0.01)
	s.Equal("front_loaded", resp.Data.Policy)
	s.InDelta(0.40*2259, resp.Data.MealCalories["breakfast"], 0.01)
}

func (s *NutritionAPITestSuite) TestPlan_Errors() {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "empty body", body: "", status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "malformed", body: `{"profile":`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "unknown field", body: `{"profil": {}}`, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "negative weight", body: `{"profile": {"weight_kg": -3}}`, status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
		{name: "unknown policy", body: `{"policy": {"name": "midnight"}}`, status: http.StatusBadRequest, code: "UNKNOWN_POLICY"},
		{name: "zero custom weights", body: `{"policy": {"custom": {"breakfast": 0, "lunch": 0, "dinner": 0}}}`, status: http.StatusBadRequest, code: "INVALID_DISTRIBUTION"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/plan", tt.body)
			s.http.StatusCode(rec, tt.status)
			s.http.ErrorCode(rec, tt.code)
		})
	}
}

func (s *NutritionAPITestSuite) TestAdjust() {
	rec := s.do(http.MethodPost, "/adjust", `{
		"profile": {"gender": "female", "weight_kg": 60, "height_cm": 165, "birth_year": "1990"},
		"recipes": [
			{"title": "Oats", "meal_type": "Breakfast", "calories": 300,
			 "ingredients": [{"name": "oats", "quantity": "50 g"}], "instructions": ["Soak."]},
			{"title": "Soup", "meal_type": "dinner", "calories": 400}
		]
	}`)

	s.http.StatusCode(rec, http.StatusOK)
	var resp envelope[inbound.AdjustedRecipesDTO]
	s.http.JSONResponse(rec, &resp)
	s.Require().Len(resp.Data.Recipes, 2)
	s.Equal("breakfast", string(resp.Data.Recipes[0].MealType))
	s.InDelta(resp.Data.MealCalories["breakfast"], float64(resp.Data.Recipes[0].Calories), 1)
}

func (s *NutritionAPITestSuite) TestAdjust_ValidationErrors() {
	rec := s.do(http.MethodPost, "/adjust", `{"recipes": [{"title": "", "meal_type": "brunch", "calories": 100}]}`)

	s.http.StatusCode(rec, http.StatusBadRequest)
	var body struct {
		Error struct {
			Code     string `json:"code"`
			Metadata struct {
				ValidationErrors []struct {
					Field string `json:"field"`
					Tag   string `json:"tag"`
				} `json:"validation_errors"`
			} `json:"metadata"`
		} `json:"error"`
	}
	s.http.JSONResponse(rec, &body)
	s.Equal("VALIDATION_FAILED", body.Error.Code)

	fields := map[string]string{}
	for _, fe := range body.Error.Metadata.ValidationErrors {
		fields[fe.Field] = fe.Tag
	}
	s.Equal("required", fields["recipes[0].title"])
	s.Equal("meal_type", fields["recipes[0].meal_type"])
}

func (s *NutritionAPITestSuite) TestProfileLifecycle() {
	rec := s.do(http.MethodPost, "/profiles", `{"gender": "F", "weight_kg": 58, "height_feet": 5, "height_inches": 4,
		"birth_year": "1988", "activity_level": "light", "goal": "maintain"}`)
	s.http.StatusCode(rec, http.StatusCreated)

	var created envelope[inbound.ProfileDTO]
	s.http.JSONResponse(rec, &created)
	id := created.Data.ID.String()
	s.Equal("/api/v1/profiles/"+id, rec.Header().Get("Location"))
	s.InDelta(162.56, created.Data.HeightCm, 0.01)

	rec = s.do(http.MethodGet, "/profiles/"+id+"/report", "")
	s.http.StatusCode(rec, http.StatusOK)
	var first envelope[inbound.ReportDTO]
	s.http.JSONResponse(rec, &first)

	rec = s.do(http.MethodPut, "/profiles/"+id, `{"goal": "bulk"}`)
	s.http.StatusCode(rec, http.StatusOK)

	rec = s.do(http.MethodGet, "/profiles/"+id, "")
	var fetched envelope[inbound.ProfileDTO]
	s.http.JSONResponse(rec, &fetched)
	s.Equal("bulk", fetched.Data.Goal)
	s.Equal("light", fetched.Data.ActivityLevel)

	rec = s.do(http.MethodGet, "/profiles/"+id+"/report", "")
	var second envelope[inbound.ReportDTO]
	s.http.JSONResponse(rec, &second)
	s.InDelta(first.Data.DailyCalories+nutrition.SurplusCalories, second.Data.DailyCalories, 0.01)
}

func (s *NutritionAPITestSuite) TestProfile_BadAndMissingIDs() {
	rec := s.do(http.MethodGet, "/profiles/not-a-uuid", "")
	s.http.StatusCode(rec, http.StatusBadRequest)
	s.http.ErrorCode(rec, "VALIDATION_FAILED")

	rec = s.do(http.MethodGet, "/profiles/00000000-0000-0000-0000-000000000001", "")
	s.http.StatusCode(rec, http.StatusNotFound)
	s.http.ErrorCode(rec, "PROFILE_NOT_FOUND")
}

func (s *NutritionAPITestSuite) TestReport_CustomWeightsFromQuery() {
	rec := s.do(http.MethodGet, "/profiles/"+sqlite.DemoProfileID.String()+"/report?breakfast=1&lunch=1&dinner=2", "")

	s.http.StatusCode(rec, http.StatusOK)
	var resp envelope[inbound.ReportDTO]
	s.http.JSONResponse(rec, &resp)
	s.Equal("custom", resp.Data.Policy)
	s.InDelta(resp.Data.DailyCalories/2, resp.Data.MealCalories["dinner"], 1e-6)

	rec = s.do(http.MethodGet, "/profiles/"+sqlite.DemoProfileID.String()+"/report?lunch=abc", "")
	s.http.StatusCode(rec, http.StatusBadRequest)
}

func (s *NutritionAPITestSuite) TestCatalogDayAndWeek() {
	base := "/profiles/" + sqlite.DemoProfileID.String() + "/weeks/1"

	rec := s.do(http.MethodGet, base+"/days/2?policy=back_loaded", "")
	s.http.StatusCode(rec, http.StatusOK)
	var day envelope[inbound.AdjustedDayDTO]
	s.http.JSONResponse(rec, &day)
	s.Len(day.Data.Recipes, 3)
	s.Equal(2, day.Data.Day)

	rec = s.do(http.MethodGet, base, "")
	s.http.StatusCode(rec, http.StatusOK)
	var week envelope[inbound.AdjustedWeekDTO]
	s.http.JSONResponse(rec, &week)
	s.Len(week.Data.Days, 7)

	rec = s.do(http.MethodGet, base+"/days/9", "")
	s.http.StatusCode(rec, http.StatusBadRequest)

	rec = s.do(http.MethodGet, "/profiles/"+sqlite.DemoProfileID.String()+"/weeks/5/days/1", "")
	s.http.StatusCode(rec, http.StatusNotFound)
	s.http.ErrorCode(rec, "RECIPE_NOT_FOUND")

	rec = s.do(http.MethodGet, "/profiles/"+sqlite.DemoProfileID.String()+"/weeks/one", "")
	s.http.StatusCode(rec, http.StatusBadRequest)
}

func (s *NutritionAPITestSuite) TestAddRecipe() {
	body, err := json.Marshal(map[string]interface{}{
		"week": 2,
		"day":  1,
		"recipe": map[string]interface{}{
			"title":        "Shakshuka",
			"meal_type":    "breakfast",
			"calories":     420,
			"ingredients":  []map[string]string{{"name": "tomato", "quantity": "400 g"}},
			"instructions": []string{"Simmer.", "Crack eggs."},
		},
	})
	s.Require().NoError(err)

	rec := s.do(http.MethodPost, "/recipes", string(body))
	s.http.StatusCode(rec, http.StatusCreated)

	rec = s.do(http.MethodGet, "/profiles/"+sqlite.DemoProfileID.String()+"/weeks/2/days/1", "")
	s.http.StatusCode(rec, http.StatusOK)
	var day envelope[inbound.AdjustedDayDTO]
	s.http.JSONResponse(rec, &day)
	s.Require().Len(day.Data.Recipes, 1)
	s.Equal("Shakshuka", day.Data.Recipes[0].Title)
}

func (s *NutritionAPITestSuite) TestAddRecipe_Rejected() {
	rec := s.do(http.MethodPost, "/recipes", `{"week": 0, "day": 8, "recipe": {"title": "<script>x</script>", "meal_type": "lunch"}}`)

	s.http.StatusCode(rec, http.StatusBadRequest)
	s.http.ErrorCode(rec, "VALIDATION_FAILED")
}

func TestNutritionAPISuite(t *testing.T) {
	suite.Run(t, new(NutritionAPITestSuite))
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	big := bytes.Repeat([]byte("a"), maxBodyBytes+10)
	body := append(append([]byte(`{"gender":"`), big...), []byte(`"}`)...)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	var dst ProfileRequest
	err := decodeJSON(rec, req, &dst)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
