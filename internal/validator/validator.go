package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Stripe expects lowercase ISO 4217 codes, e.g. "usd".
var currencyRgx = regexp.MustCompile(`^[a-z]{3}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("currency", validateCurrency)

	return validator
}

func validateCurrency(fl validator.FieldLevel) bool {
	return currencyRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "currency":
		return "must be a lowercase three-letter currency code"
	default:
		return "is invalid"
	}
}
