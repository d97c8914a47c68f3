package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yourorg/catalogadmin/internal/apperrors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)
}

// fieldName reports fields by their wire name: form tag first, then json.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

// ValidateStruct returns nil or an *apperrors.ValidationError whose Field is
// the first failing field and whose Message lists every failure.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var messages []string
			for _, fieldError := range validationErrors {
				messages = append(messages, formatValidationError(fieldError))
			}
			return apperrors.NewValidationError(validationErrors[0].Field(), strings.Join(messages, "; "))
		}
		return err
	}
	return nil
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	case "numeric":
		return fmt.Sprintf("%s must be a number", field)
	case "number":
		return fmt.Sprintf("%s must be a whole number", field)
	case "boolean":
		return fmt.Sprintf("%s must be true or false", field)
	case "iso4217":
		return fmt.Sprintf("%s must be an ISO 4217 currency code", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
