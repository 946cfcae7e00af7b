package httpserver

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages holds the client-facing message for each validated field.
var fieldMessages = map[string]string{
	"name":          "Name is required",
	"city":          "City is required",
	"country":       "Country is required",
	"description":   "Description is required",
	"type":          "Hotel type is required",
	"pricePerNight": "Price per night is required and must be a number",
	"facilities":    "Facilities are required",
	"email":         "Email is required",
	"password":      "Password with 6 or more characters required",
	"firstName":     "First Name is required",
	"lastName":      "Last Name is required",
}

// check validates v and returns one error per failing field, in field order.
func check(v any) []fieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []fieldError{{Field: "body", Message: err.Error()}}
	}
	seen := map[string]bool{}
	var out []fieldError
	for _, fe := range ves {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i]
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		msg, ok := fieldMessages[field]
		if !ok {
			msg = field + " is invalid"
		}
		out = append(out, fieldError{Field: field, Message: msg})
	}
	return out
}
