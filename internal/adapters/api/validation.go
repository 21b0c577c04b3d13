package api

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"weatherdialog.app/internal/core/dialog"
)

var languageTag = regexp.MustCompile(`^[a-zA-Z]{2,3}([-_][a-zA-Z0-9]{2,8})*$`)

// RegisterValidators adds the intent query validations to v
func RegisterValidators(v *validator.Validate) error {
	validations := map[string]validator.Func{
		"language": validateLanguage,
		"unit":     validateUnit,
		"aspect":   validateAspect,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateLanguage(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || languageTag.MatchString(value)
}

func validateUnit(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "", "celsius", "fahrenheit":
		return true
	default:
		return false
	}
}

// validateAspect accepts a temperature qualifier or a condition word
func validateAspect(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || dialog.ParseQualifier(value) != dialog.QualifierNone {
		return true
	}
	_, ok := dialog.RequestedCondition(value)
	return ok
}
