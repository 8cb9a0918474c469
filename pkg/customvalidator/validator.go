package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var nitRegex = regexp.MustCompile(`^\d{5,15}(-\d)?$`)

// RegisterCustomValidations registers the domain validation tags used in the
// request DTOs.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("nit", isNIT)
}

// isNIT accepts the tax id digits with an optional verification digit.
func isNIT(fl validator.FieldLevel) bool {
	return nitRegex.MatchString(fl.Field().String())
}
