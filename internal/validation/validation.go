// Package validation wraps go-playground/validator with the conventions the
// API uses everywhere: JSON field names in error keys and a flat field-keyed
// message map for 400 responses.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator. Struct fields are reported under their
// JSON names so error keys match what the client actually sent.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Fields flattens a validator error into a field-keyed message map, e.g.
// {"customer.name": "name is required", "items[0].quantity": "quantity must be at least 1"}.
// A non-validation error yields a single "_" entry with the raw message.
func Fields(err error) map[string]string {
	if err == nil {
		return nil
	}

	out := make(map[string]string)

	verrs, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		out[fieldKey(fe)] = message(fe)
	}
	return out
}

// fieldKey strips the top-level struct name from the namespace, leaving the
// JSON path to the offending field.
func fieldKey(fe validatorv10.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validatorv10.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s entry", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be less than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
