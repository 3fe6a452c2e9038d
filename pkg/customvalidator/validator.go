package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the project-specific validation rules
// on the given validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("shortcode", isCompanyShortCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone", isPhoneNumber); err != nil {
		return err
	}
	return nil
}

var shortCodeRe = regexp.MustCompile(`^[A-Z0-9]{2,6}$`)

// Company short codes end up inside order numbers (CC/ON/<code>/<NN>),
// so they must stay short, upper-case and slash-free.
func isCompanyShortCode(fl validator.FieldLevel) bool {
	return shortCodeRe.MatchString(fl.Field().String())
}

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func isPhoneNumber(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}
