package validation

import (
	"fmt"
	"strings"
)

// CustomMessage returns per-field overrides for validation messages,
// keyed by validator tag. Returns nil when the field has no overrides.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email is required",
			"email":    "email must be a valid address",
		},
		"Password": {
			"required": "password is required",
			"min":      "password must be at least 8 characters",
		},
		"SKU": {
			"required": "sku is required",
		},
		"Name": {
			"required": "name is required",
		},
		"Price": {
			"required": "price is required",
			"gte":      "price must not be negative",
		},
	}
	return customValidationMessages[field]
}

// DefaultMessage builds a generic message for a failed validator tag.
func DefaultMessage(field, tag string) string {
	field = strings.ToLower(field)

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	case "min":
		return fmt.Sprintf("%s is below the minimum length or value", field)
	case "max":
		return fmt.Sprintf("%s exceeds the maximum length or value", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to the minimum", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than the minimum", field)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to the maximum", field)
	case "lt":
		return fmt.Sprintf("%s must be less than the maximum", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of the allowed values", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "json":
		return fmt.Sprintf("%s must be valid JSON", field)
	case "alphanum":
		return fmt.Sprintf("%s may only contain letters and digits", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
