package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Field names in errors use
// the json tag so messages match the request payload.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

// ValidationError is returned when a payload fails field validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return &ValidationError{Fields: FormatValidationErrors(validationErrs)}
	}
	return err
}

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = fmt.Sprintf("%s is required", field)
			case "url":
				errors[field] = fmt.Sprintf("%s must be a valid URL", field)
			case "min":
				if e.Kind() == reflect.String {
					errors[field] = fmt.Sprintf("%s must be at least %s characters", field, e.Param())
				} else {
					errors[field] = fmt.Sprintf("%s must be at least %s", field, e.Param())
				}
			case "max":
				if e.Kind() == reflect.String {
					errors[field] = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
				} else {
					errors[field] = fmt.Sprintf("%s must be at most %s", field, e.Param())
				}
			case "gte":
				errors[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
			case "lte":
				errors[field] = fmt.Sprintf("%s must be less than or equal to %s", field, e.Param())
			default:
				errors[field] = fmt.Sprintf("%s is invalid", field)
			}
		}
	}

	return errors
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}

// SanitizeOptional applies SanitizeString to an optional value, mapping
// blank results to nil
func SanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeString(*s)
	if clean == "" {
		return nil
	}
	return &clean
}
