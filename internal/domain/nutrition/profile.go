// Package nutrition implements the nutrition planning engine: energy
// expenditure, macro allocation, meal distribution and recipe scaling.
//
// Every function in this package is pure. Free-text profile fields are
// normalised through lookup tables with an explicit unknown variant so each
// fallback can be tested on its own; the Planner logs those fallbacks.
package nutrition

import (
	"strconv"
	"strings"
)

const (
	// DefaultHeightCm is used when the profile carries no usable height.
	DefaultHeightCm = 170.0
	// DefaultAge is used when the birth year cannot be parsed.
	DefaultAge = 30
	// MinimumAge is the floor applied to every computed age.
	MinimumAge = 18

	cmPerFoot = 30.48
	cmPerInch = 2.54
)

// UserProfile is the biometric and activity input of a planning request.
// Text fields are stored as supplied; they are normalised when used.
type UserProfile struct {
	Gender        string  `json:"gender"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	BirthYear     string  `json:"birth_year"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

// HeightInput carries a height either in centimetres or in feet and inches.
type HeightInput struct {
	Cm     float64
	Feet   float64
	Inches float64
}

// ResolveHeight converts a height input to centimetres. Centimetres win when
// positive, then feet/inches; otherwise DefaultHeightCm with ok=false.
func ResolveHeight(h HeightInput) (cm float64, ok bool) {
	if h.Cm > 0 {
		return h.Cm, true
	}
	if total := h.Feet*cmPerFoot + h.Inches*cmPerInch; total > 0 {
		return total, true
	}
	return DefaultHeightCm, false
}

// NewUserProfile builds a profile, resolving the height from either unit system.
func NewUserProfile(gender string, weightKg float64, height HeightInput, birthYear, activity, goal string) UserProfile {
	cm, _ := ResolveHeight(height)
	return UserProfile{
		Gender:        gender,
		WeightKg:      weightKg,
		HeightCm:      cm,
		BirthYear:     birthYear,
		ActivityLevel: activity,
		Goal:          goal,
	}
}

// EffectiveHeightCm returns the stored height, or the default when absent.
func (p UserProfile) EffectiveHeightCm() float64 {
	if p.HeightCm > 0 {
		return p.HeightCm
	}
	return DefaultHeightCm
}

// Age derives an age from a birth year string. Unparseable years and years
// at or before 1900 give DefaultAge with ok=false. The result is never below
// MinimumAge.
func Age(birthYear string, currentYear int) (age int, ok bool) {
	year, err := strconv.Atoi(strings.TrimSpace(birthYear))
	if err != nil || year <= 1900 {
		return DefaultAge, false
	}
	age = currentYear - year
	if age < MinimumAge {
		age = MinimumAge
	}
	return age, true
}

// normalizeLabel lowercases, trims and collapses separators so "Very_Active"
// and "  very   active " compare equal.
func normalizeLabel(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
