package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer
	// AuthCookie sends the token as a named cookie.
	AuthCookie
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the credential value.
	Token string
	// Name is the cookie name (AuthCookie).
	Name string
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// CookieAuth creates an auth config that sends token in the named cookie.
func CookieAuth(name, token string) *AuthConfig {
	return &AuthConfig{Type: AuthCookie, Name: name, Token: token}
}

// apply applies authentication to an HTTP request. An empty token sends
// nothing.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Token == "" {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthCookie:
		req.AddCookie(&http.Cookie{Name: a.Name, Value: a.Token})
	}
}
