package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	dateRE    = regexp.MustCompile(`^\d{4}-(0[0-9]|1[0-2])-(0[0-9]|1[0-9]|2[0-9]|3[0-1])$`)
	telefonRE = regexp.MustCompile(`^\d{9,}$`)
)

// dateValidator ensures the value matches the format YYYY-MM-DD or the empty
// string. The empty string is allowed so that this validator can be used to
// clear out values; combine with `required` when the field is mandatory.
func dateValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return dateRE.MatchString(value)
}

// telefonValidator ensures the value is all digits and at least 9 of them.
// Empty values pass so that optional phone fields can be cleared.
func telefonValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return telefonRE.MatchString(value)
}
