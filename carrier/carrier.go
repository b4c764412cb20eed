// Package carrier moves subscriber tokens between the application and the
// browser through the Mercure authorization cookie, and reads them back from
// incoming hub requests.
package carrier

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultCookieName is the cookie Mercure hubs look for.
	DefaultCookieName = "mercureAuthorization"

	// WellKnownPath is where the embedded hub is mounted.
	WellKnownPath = "/.well-known/mercure"

	// QueryParam is the query parameter carrying a token in subscription URLs.
	QueryParam = "authorization"
)

// Cookie describes an authorization cookie to set or clear.
type Cookie struct {
	// Name defaults to DefaultCookieName.
	Name string
	// Value is the signed subscriber token.
	Value string
	// Path restricts the cookie to the hub endpoint.
	Path string
	// Insecure drops the Secure attribute. Only for local development over plain HTTP.
	Insecure bool
}

func (c Cookie) httpCookie() *http.Cookie {
	name := c.Name
	if name == "" {
		name = DefaultCookieName
	}
	path := c.Path
	if path == "" {
		path = WellKnownPath
	}
	return &http.Cookie{
		Name:     name,
		Value:    c.Value,
		Path:     path,
		HttpOnly: true,
		Secure:   !c.Insecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Attach sets the authorization cookie on the response.
func Attach(w http.ResponseWriter, c Cookie) {
	http.SetCookie(w, c.httpCookie())
}

// Detach clears the authorization cookie by overwriting it with an empty,
// already expired cookie at the same name and path.
func Detach(w http.ResponseWriter, c Cookie) {
	hc := c.httpCookie()
	hc.Value = ""
	hc.MaxAge = -1
	hc.Expires = time.Unix(0, 0)
	http.SetCookie(w, hc)
}

// Extract returns the token carried by a hub request. The Authorization
// header wins over the query parameter, which wins over the cookie.
// The empty string means no token was presented.
func Extract(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if q := r.URL.Query().Get(QueryParam); q != "" {
		return q
	}
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if ck, err := r.Cookie(cookieName); err == nil {
		return ck.Value
	}
	return ""
}

// HubPath returns the cookie path for a hub. A remote hub URL contributes
// its path component; an empty URL means the embedded hub.
func HubPath(hubURL string) string {
	if hubURL == "" {
		return WellKnownPath
	}
	u, err := url.Parse(hubURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
