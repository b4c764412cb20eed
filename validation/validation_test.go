package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/mercurekit/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"present", "https://example.com/books/1", false},
		{"empty", "", true},
		{"blank", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New().Required("topic", tt.value)
			if v.HasErrors() != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tt.wantErr)
			}
		})
	}
}

func TestValidatorRequiredAll(t *testing.T) {
	if New().RequiredAll("topic", []string{"", "a"}).HasErrors() {
		t.Error("expected no error when one value is present")
	}
	if !New().RequiredAll("topic", nil).HasErrors() {
		t.Error("expected error for no values")
	}
	if !New().RequiredAll("topic", []string{" ", ""}).HasErrors() {
		t.Error("expected error for blank values")
	}
}

func TestValidatorNonNegativeInt(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"0", false},
		{"3000", false},
		{"-1", true},
		{"soon", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := New().NonNegativeInt("retry", tt.value)
			if v.HasErrors() != tt.wantErr {
				t.Errorf("NonNegativeInt(%q) errors = %v, want %v", tt.value, v.Errors(), tt.wantErr)
			}
		})
	}
}

func TestValidatorOptionalURL(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"", false},
		{"https://hub.example.com/.well-known/mercure", false},
		{"http://localhost:3000/hub", false},
		{"/.well-known/mercure", true},
		{"ftp://example.com", true},
		{"::", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := New().OptionalURL("hub_url", tt.value)
			if v.HasErrors() != tt.wantErr {
				t.Errorf("OptionalURL(%q) errors = %v, want %v", tt.value, v.Errors(), tt.wantErr)
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"explicit", "wildcard"}
	if New().OneOf("private_policy", "explicit", allowed).HasErrors() {
		t.Error("expected no error for allowed value")
	}
	if !New().OneOf("private_policy", "any", allowed).HasErrors() {
		t.Error("expected error for unknown value")
	}
	if New().OneOf("private_policy", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New().Custom(false, "data", "custom error")
	if !v.HasErrors() || v.Errors()[0].Message != "custom error" {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Required("topic", "a").Validate() != nil {
		t.Error("expected nil for valid input")
	}

	appErr := New().Required("topic", "").NonNegativeInt("retry", "-5").Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "topic") || !strings.Contains(appErr.Message, "retry") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
	if _, ok := appErr.Details["fields"]; !ok {
		t.Error("expected field details")
	}
}

type testUpdate struct {
	Topic   string `json:"topic" validate:"required"`
	Retry   int    `json:"retry" validate:"gte=0"`
	HubURL  string `json:"hub_url" validate:"omitempty,url"`
	Policy  string `json:"private_policy" validate:"omitempty,oneof=explicit wildcard"`
	Timeout int    `validate:"gt=0"`
}

func TestValidatorSingleLine(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty", "", false},
		{"plain", "urn:uuid:1", false},
		{"lf", "a\nb", true},
		{"cr", "a\rb", true},
		{"crlf", "a\r\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New().SingleLine("id", tt.value)
			if v.HasErrors() != tt.wantErr {
				t.Errorf("HasErrors = %v, want %v", v.HasErrors(), tt.wantErr)
			}
		})
	}
}

func TestStructValidateSingleLine(t *testing.T) {
	type event struct {
		ID string `json:"id" validate:"singleline"`
	}
	if err := Validate(event{ID: "1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Validate(event{ID: "1\ndata: x"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if !strings.Contains(appErr.Message, "id: must not contain line breaks") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestStructValidate(t *testing.T) {
	valid := testUpdate{Topic: "a", Retry: 0, HubURL: "https://hub.example.com", Policy: "explicit", Timeout: 1}
	if err := Validate(valid); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := Validate(testUpdate{Retry: -1, HubURL: "nope", Policy: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	for _, field := range []string{"topic", "retry", "hub_url", "private_policy", "timeout"} {
		if !strings.Contains(appErr.Message, field) {
			t.Errorf("expected %q in message %q", field, appErr.Message)
		}
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("topic", "a"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Required("topic", ""); err == nil {
		t.Error("expected error for empty value")
	}
}
