package httpclient

import (
	"net/http"
	"testing"
)

func TestBearerAuth(t *testing.T) {
	auth := BearerAuth("my-token")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestCookieAuth(t *testing.T) {
	auth := CookieAuth("mercureAuthorization", "jwt")
	req, _ := http.NewRequest("GET", "http://example.com", nil)
	auth.apply(req)
	c, err := req.Cookie("mercureAuthorization")
	if err != nil {
		t.Fatalf("cookie not set: %v", err)
	}
	if c.Value != "jwt" {
		t.Errorf("got %q, want %q", c.Value, "jwt")
	}
}

func TestAuthSendsNothing(t *testing.T) {
	tests := []struct {
		name string
		auth *AuthConfig
	}{
		{"nil", nil},
		{"none", &AuthConfig{Type: AuthNone, Token: "x"}},
		{"empty bearer", BearerAuth("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "http://example.com", nil)
			tt.auth.apply(req)
			if req.Header.Get("Authorization") != "" || len(req.Cookies()) != 0 {
				t.Error("expected no credential on request")
			}
		})
	}
}
