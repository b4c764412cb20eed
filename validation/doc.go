// Package validation checks updates and configuration before they reach the
// hub or the dispatcher.
//
// Struct tag validation uses go-playground/validator and converts failures to
// an errors.AppError with per-field details:
//
//	type Update struct {
//	    Topic string `json:"topic" validate:"required"`
//	    Retry int    `json:"retry" validate:"gte=0"`
//	}
//	err := validation.Validate(u)
//
// Form input is checked programmatically with error collection:
//
//	v := validation.New()
//	v.Required("topic", form.Get("topic")).NonNegativeInt("retry", form.Get("retry"))
//	err := v.Validate()
package validation
