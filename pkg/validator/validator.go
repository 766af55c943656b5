package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Validator defines the interface for validation operations
type Validator interface {
	ValidateStruct(s any) map[string]string
}

// validatorImpl implements the Validator interface
type validatorImpl struct {
	validate *validator.Validate
}

// NewValidator creates a new instance of the go-playground validator
func NewValidator() Validator {
	return &validatorImpl{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct and returns field-specific errors.
// Nested fields are keyed by their path below the root, e.g. "Orders[0].OrderID".
func (v *validatorImpl) ValidateStruct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{InputKey: err.Error()}
	}

	validationErrors := make(map[string]string)
	for _, fieldErr := range fieldErrs {
		fieldName := prettifyFieldName(fieldErr.Field())
		validationErrors[fieldKey(fieldErr)] = formatValidationError(fieldErr, fieldName)
	}

	return validationErrors
}

// InputKey holds the message when the value itself cannot be validated, e.g. nil.
const InputKey = "input"

// fieldKey drops the root struct name from the error namespace.
func fieldKey(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

// ValidateStruct validates a struct and returns field-specific errors (package-level function for backward compatibility)
func ValidateStruct(s any) map[string]string {
	v := NewValidator()
	return v.ValidateStruct(s)
}

// formatValidationError returns a more descriptive error message based on the validation tag
func formatValidationError(err validator.FieldError, fieldName string) string {
	switch err.Tag() {
	case "required":
		return fieldName + " is required"
	case "email":
		return fieldName + " must be a valid email address"
	case "required_without_all", "required_without":
		return fieldName + " is required when " + strings.Join(strings.Fields(err.Param()), ", ") + " are empty"
	case "min":
		return fieldName + " must be at least " + err.Param() + unitSuffix(err.Kind())
	case "max":
		return fieldName + " must be at most " + err.Param() + unitSuffix(err.Kind())
	case "len":
		return fieldName + " must be exactly " + err.Param() + unitSuffix(err.Kind())
	case "numeric":
		return fieldName + " must be a numeric value"
	case "alpha":
		return fieldName + " must contain only letters"
	case "alphanum":
		return fieldName + " must contain only letters and numbers"
	case "eq":
		return fieldName + " must be equal to " + err.Param()
	case "ne":
		return fieldName + " must not be equal to " + err.Param()
	case "lt":
		return fieldName + " must be less than " + err.Param()
	case "lte":
		return fieldName + " must be less than or equal to " + err.Param()
	case "gt":
		return fieldName + " must be greater than " + err.Param()
	case "gte":
		return fieldName + " must be greater than or equal to " + err.Param()
	case "oneof":
		return fieldName + " must be one of the following: " + err.Param()
	default:
		return fieldName + " is invalid"
	}
}

func unitSuffix(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return " characters long"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}

// prettifyFieldName turns a camelCase or PascalCase field into a human-readable string
func prettifyFieldName(field string) string {
	var result []rune
	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' {
			// Check if the previous character is lowercase (indicating a camelCase transition)
			if i > 0 && field[i-1] >= 'a' && field[i-1] <= 'z' {
				result = append(result, ' ')
			}
		}
		result = append(result, r)
	}
	return cases.Title(language.Und, cases.NoLower).String(string(result))
}
