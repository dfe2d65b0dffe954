// Package testutils provides custom assertions for testing
package testutils

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alchemorsel/nutriplan/internal/domain/nutrition"
	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RecipeAssertions provides recipe-specific assertions
type RecipeAssertions struct {
	t *testing.T
}

// NewRecipeAssertions creates a new recipe assertions helper
func NewRecipeAssertions(t *testing.T) *RecipeAssertions {
	return &RecipeAssertions{t: t}
}

// MatchesTargets checks that every meal group in adjusted sums to its target
// within one kilocalorie per recipe. Groups whose original calories were
// zero are left unscaled and are skipped.
func (ra *RecipeAssertions) MatchesTargets(adjusted []recipe.Recipe, targets nutrition.MealCalories, msgAndArgs ...interface{}) {
	ra.t.Helper()

	for _, group := range recipe.GroupByMeal(adjusted) {
		target, ok := targets[group.MealType]
		if !assert.True(ra.t, ok, "adjusted recipes contain unplanned meal %s", group.MealType) {
			continue
		}
		if group.Calories() == 0 {
			continue
		}
		tolerance := float64(len(group.Recipes))
		diff := math.Abs(float64(group.Calories()) - target)
		assert.LessOrEqual(ra.t, diff, tolerance, msgAndArgs...)
	}
}

// PreservesShape checks that adjustment kept titles, instructions and
// ingredient names and checked flags
func (ra *RecipeAssertions) PreservesShape(original, adjusted recipe.Recipe) {
	ra.t.Helper()

	assert.Equal(ra.t, original.Title, adjusted.Title)
	assert.Equal(ra.t, original.MealType, adjusted.MealType)
	assert.Equal(ra.t, original.Image, adjusted.Image)
	assert.Equal(ra.t, original.Instructions, adjusted.Instructions)
	require.Len(ra.t, adjusted.Ingredients, len(original.Ingredients))
	for i := range original.Ingredients {
		assert.Equal(ra.t, original.Ingredients[i].Name, adjusted.Ingredients[i].Name)
		assert.Equal(ra.t, original.Ingredients[i].Checked, adjusted.Ingredients[i].Checked)
	}
}

// HTTPAssertions provides HTTP-specific assertions
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the response status code
func (ha *HTTPAssertions) StatusCode(rec *httptest.ResponseRecorder, expectedCode int, msgAndArgs ...interface{}) {
	ha.t.Helper()
	if len(msgAndArgs) == 0 {
		msgAndArgs = []interface{}{"body: %s", rec.Body.String()}
	}
	assert.Equal(ha.t, expectedCode, rec.Code, msgAndArgs...)
}

// JSONResponse decodes the response body into target
func (ha *HTTPAssertions) JSONResponse(rec *httptest.ResponseRecorder, target interface{}) {
	ha.t.Helper()
	assert.Contains(ha.t, rec.Header().Get("Content-Type"), "application/json")
	require.NoError(ha.t, json.Unmarshal(rec.Body.Bytes(), target), "body: %s", rec.Body.String())
}

// ErrorCode asserts the API error code of an error response
func (ha *HTTPAssertions) ErrorCode(rec *httptest.ResponseRecorder, expectedCode string) {
	ha.t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	ha.JSONResponse(rec, &body)
	assert.Equal(ha.t, expectedCode, body.Error.Code)
}

// SecurityHeaders checks the headers set by the security middleware
func (ha *HTTPAssertions) SecurityHeaders(header http.Header) {
	ha.t.Helper()

	assert.Equal(ha.t, "nosniff", header.Get("X-Content-Type-Options"))
	assert.Equal(ha.t, "DENY", header.Get("X-Frame-Options"))
	assert.NotEmpty(ha.t, header.Get("Referrer-Policy"))
}
