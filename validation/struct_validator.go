package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/kbukum/mercurekit/errors"
)

// singleLineTag rejects strings carrying a CR or LF. Event-stream field
// values are line-delimited, so a line break would start a new field.
const singleLineTag = "singleline"

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

func engine() *validator.Validate {
	structOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their wire name, falling back to snake_case.
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "mapstructure"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return toSnakeCase(fld.Name)
		})
		_ = structValidator.RegisterValidation(singleLineTag, func(fl validator.FieldLevel) bool {
			return !strings.ContainsAny(fl.Field().String(), "\r\n")
		})
	})
	return structValidator
}

// Validate checks a hub config or update against its `validate` tags and
// returns a Validation AppError listing every failing field.
func Validate(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("invalid " + reflect.TypeOf(s).String())
	}

	details := make([]FieldError, 0, len(fieldErrs))
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := toSnakeCase(fe.Field())
		msg := describe(fe)
		details = append(details, FieldError{Field: name, Message: msg})
		parts = append(parts, name+": "+msg)
	}

	appErr := errors.Validation(strings.Join(parts, "; "))
	appErr.Details = map[string]any{"fields": details}
	return appErr
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", "http_url":
		return "must be a valid URL"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case singleLineTag:
		return "must not contain line breaks"
	}
	return "is invalid"
}

// toSnakeCase maps Go field names like PublishTimeout to publish_timeout.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
