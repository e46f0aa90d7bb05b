package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "date":
		return fmt.Sprintf("%q should be in the format of YYYY-MM-DD", field)
	case "telefon":
		return fmt.Sprintf("%q must contain at least 9 digits", field)
	case "email":
		return fmt.Sprintf("%q is not a valid email", field)
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be greater than or equal to %s characters", field, err.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be less than or equal to %s characters", field, err.Param())
		}
		return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
	case "oneof":
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
