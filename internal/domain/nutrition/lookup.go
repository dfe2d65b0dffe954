package nutrition

import "strings"

// LookupTableVersion identifies the revision of the token tables below.
// Bump it whenever a label is added or remapped.
const LookupTableVersion = 2

// Gender is the normalised gender used by the BMR equation.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

var genderTokens = map[string]Gender{
	"male":      GenderMale,
	"m":         GenderMale,
	"man":       GenderMale,
	"hombre":    GenderMale,
	"masculino": GenderMale,
	"female":    GenderFemale,
	"f":         GenderFemale,
	"woman":     GenderFemale,
	"mujer":     GenderFemale,
	"femenino":  GenderFemale,
}

// ResolveGender maps free text to a Gender. Unmatched text is GenderUnknown,
// which the energy model treats as non-male.
func ResolveGender(s string) (Gender, bool) {
	g, ok := genderTokens[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return GenderUnknown, false
	}
	return g, true
}

// ActivityLevel is the normalised physical activity level.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
	ActivityUnknown          ActivityLevel = "unknown"
)

// DefaultActivityFactor applies to unrecognised activity labels.
const DefaultActivityFactor = 1.55

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
	ActivityExtremelyActive:  1.9,
	ActivityUnknown:          DefaultActivityFactor,
}

var activityLabels = map[string]ActivityLevel{
	"sedentary":         ActivitySedentary,
	"low":               ActivitySedentary,
	"none":              ActivitySedentary,
	"light":             ActivityLightlyActive,
	"lightly active":    ActivityLightlyActive,
	"light active":      ActivityLightlyActive,
	"moderate":          ActivityModeratelyActive,
	"moderately active": ActivityModeratelyActive,
	"medium":            ActivityModeratelyActive,
	"active":            ActivityVeryActive,
	"high":              ActivityVeryActive,
	"very active":       ActivityVeryActive,
	"extremely active":  ActivityExtremelyActive,
	"extra active":      ActivityExtremelyActive,
	"very high":         ActivityExtremelyActive,
	"athlete":           ActivityExtremelyActive,
}

// ResolveActivityLevel maps a free-text label to an ActivityLevel.
func ResolveActivityLevel(label string) (ActivityLevel, bool) {
	level, ok := activityLabels[normalizeLabel(label)]
	if !ok {
		return ActivityUnknown, false
	}
	return level, true
}

// Factor returns the TDEE multiplier of the level.
func (a ActivityLevel) Factor() float64 {
	if f, ok := activityFactors[a]; ok {
		return f
	}
	return DefaultActivityFactor
}

// ResolveActivityFactor returns the TDEE multiplier for a free-text label,
// DefaultActivityFactor with ok=false when the label is unknown.
func ResolveActivityFactor(label string) (float64, bool) {
	level, ok := ResolveActivityLevel(label)
	return level.Factor(), ok
}

// Goal is the normalised weight goal.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
	GoalMaintain Goal = "maintain"
	GoalUnknown  Goal = "unknown"
)

const (
	// DeficitCalories is subtracted from TDEE for weight-loss goals.
	DeficitCalories = 500.0
	// SurplusCalories is added to TDEE for weight-gain goals.
	SurplusCalories = 300.0
)

// goalTokens is scanned in order; loss intents take precedence.
var goalTokens = []struct {
	token string
	goal  Goal
}{
	{"lose", GoalLose},
	{"cut", GoalLose},
	{"deficit", GoalLose},
	{"gain", GoalGain},
	{"bulk", GoalGain},
	{"muscle", GoalGain},
	{"maint", GoalMaintain},
}

// ResolveGoal substring-matches a goal label. Labels with no known intent
// resolve to GoalUnknown, which is planned as maintenance.
func ResolveGoal(label string) (Goal, bool) {
	lower := strings.ToLower(label)
	for _, t := range goalTokens {
		if strings.Contains(lower, t.token) {
			return t.goal, true
		}
	}
	return GoalUnknown, false
}

// CalorieAdjustment returns the kcal offset applied to TDEE for the goal.
func (g Goal) CalorieAdjustment() float64 {
	switch g {
	case GoalLose:
		return -DeficitCalories
	case GoalGain:
		return SurplusCalories
	default:
		return 0
	}
}
