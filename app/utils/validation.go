package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validate tags of a request payload and, on failure,
// returns one human-readable error listing every failing field.
func ValidateStruct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var messages []string
	for _, e := range fieldErrs {
		switch e.ActualTag() {
		case "required":
			messages = append(messages, fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "min", "gte":
			messages = append(messages, fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "max", "lte":
			messages = append(messages, fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}
	return errors.New(strings.Join(messages, ", "))
}
