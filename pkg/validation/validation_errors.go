package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// MissingFields lists the fields that failed a "required" rule
func MissingFields(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	var fields []string
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			fields = append(fields, e.Field())
		}
	}
	return fields
}
