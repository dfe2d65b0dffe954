package recipe

import (
	"fmt"
	"strings"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient represents an ingredient line of a recipe. Quantity is kept as
// the free text the catalog supplies ("250 g", "2 pcs").
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Checked  bool   `json:"checked"`
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrIngredientName
	}
	return nil
}

// WithQuantity returns a copy of the ingredient carrying a new quantity text.
func (i Ingredient) WithQuantity(quantity string) Ingredient {
	i.Quantity = quantity
	return i
}

// MealType represents the meal slot a recipe belongs to
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes returns the closed set of meal slots in display order.
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner}
}

// IsValid reports whether m is one of the known meal slots.
func (m MealType) IsValid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner:
		return true
	}
	return false
}

// String returns the meal type label
func (m MealType) String() string {
	return string(m)
}

// ParseMealType maps free text (any case, surrounding spaces) to a MealType.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMealType, s)
	}
	return m, nil
}
