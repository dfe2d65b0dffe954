package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleRequired     = errors.New("recipe title is required")
	ErrTitleTooLong      = errors.New("recipe title must not exceed 200 characters")
	ErrNegativeCalories  = errors.New("recipe calories cannot be negative")
	ErrUnknownMealType   = errors.New("unknown meal type")
	ErrIngredientName    = errors.New("ingredient name is required")
	ErrInstructionsEmpty = errors.New("instruction step cannot be empty")
)
