package handlers

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/alchemorsel/nutriplan/internal/domain/recipe"
	"github.com/alchemorsel/nutriplan/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// RequestValidator validates request DTOs with struct tags
type RequestValidator struct {
	validator *validator.Validate
}

// NewRequestValidator creates a validator with the custom API rules
func NewRequestValidator() *RequestValidator {
	validate := validator.New()

	// Report JSON field names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("meal_type", validateMealType)
	_ = validate.RegisterValidation("no_xss", validateNoXSS)

	return &RequestValidator{validator: validate}
}

// Validate returns a VALIDATION_FAILED AppError listing every failed field
func (v *RequestValidator) Validate(req interface{}) error {
	err := v.validator.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError(err.Error())
	}

	out := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, errors.ValidationError{
			Field:   fieldPath(fe.Namespace()),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return errors.NewValidationErrors(out)
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "meal_type":
		return fmt.Sprintf("%s must be one of breakfast, lunch or dinner", field)
	case "no_xss":
		return fmt.Sprintf("%s contains disallowed markup", field)
	default:
		return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
	}
}

func validateMealType(fl validator.FieldLevel) bool {
	_, err := recipe.ParseMealType(fl.Field().String())
	return err == nil
}

var xssPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:",
	"onload=", "onerror=", "onclick=", "onmouseover=",
	"eval(", "document.cookie", "document.write",
}

func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	for _, pattern := range xssPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
