package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kbukum/mercurekit/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// RequiredAll checks that the slice has at least one non-blank entry.
func (v *Validator) RequiredAll(field string, values []string) *Validator {
	for _, s := range values {
		if strings.TrimSpace(s) != "" {
			return v
		}
	}
	v.AddError(field, "is required")
	return v
}

// NonNegativeInt checks that a non-empty string is an integer >= 0.
func (v *Validator) NonNegativeInt(field, value string) *Validator {
	if value == "" {
		return v
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		v.AddError(field, "must be an integer")
		return v
	}
	if n < 0 {
		v.AddError(field, "must be at least 0")
	}
	return v
}

// SingleLine checks that value holds no CR or LF characters.
func (v *Validator) SingleLine(field, value string) *Validator {
	if strings.ContainsAny(value, "\r\n") {
		v.AddError(field, "must not contain line breaks")
	}
	return v
}

// OptionalURL checks that a non-empty string is an absolute http(s) URL.
func (v *Validator) OptionalURL(field, value string) *Validator {
	if value == "" {
		return v
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.AddError(field, "must be a valid URL")
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	v := New().Required(field, value)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
