// Package recipe contains the recipe value objects consumed by nutrition
// planning. Recipes are never edited in place: every transform returns a new
// value so the caller's catalog stays canonical between planning requests.
package recipe

// Recipe is a catalog recipe assigned to a meal slot.
type Recipe struct {
	Title        string       `json:"title"`
	MealType     MealType     `json:"meal_type"`
	Image        string       `json:"image,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Calories     int          `json:"calories"`
}

// Validate checks the recipe before it enters the catalog
func (r Recipe) Validate() error {
	if r.Title == "" {
		return ErrTitleRequired
	}
	if len(r.Title) > 200 {
		return ErrTitleTooLong
	}
	if r.Calories < 0 {
		return ErrNegativeCalories
	}
	if !r.MealType.IsValid() {
		return ErrUnknownMealType
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	for _, step := range r.Instructions {
		if step == "" {
			return ErrInstructionsEmpty
		}
	}
	return nil
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		copy(out.Ingredients, r.Ingredients)
	}
	if r.Instructions != nil {
		out.Instructions = make([]string, len(r.Instructions))
		copy(out.Instructions, r.Instructions)
	}
	return out
}

// WithScaled returns a copy with new calories and ingredient lines. Title,
// image, instructions and meal type are carried over unchanged.
func (r Recipe) WithScaled(calories int, ingredients []Ingredient) Recipe {
	out := r.Clone()
	out.Calories = calories
	out.Ingredients = ingredients
	return out
}

// MealGroup holds the recipes of a single meal slot.
type MealGroup struct {
	MealType MealType
	Recipes  []Recipe
}

// Calories returns the summed calories of the group.
func (g MealGroup) Calories() int {
	return TotalCalories(g.Recipes)
}

// GroupByMeal groups recipes by meal type. Groups appear in order of first
// appearance and keep input order inside each group.
func GroupByMeal(recipes []Recipe) []MealGroup {
	index := make(map[MealType]int)
	var groups []MealGroup
	for _, r := range recipes {
		i, ok := index[r.MealType]
		if !ok {
			i = len(groups)
			index[r.MealType] = i
			groups = append(groups, MealGroup{MealType: r.MealType})
		}
		groups[i].Recipes = append(groups[i].Recipes, r)
	}
	return groups
}

// TotalCalories sums recipe calories.
func TotalCalories(recipes []Recipe) int {
	total := 0
	for _, r := range recipes {
		total += r.Calories
	}
	return total
}
