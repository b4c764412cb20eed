package token

import (
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/mercurekit/topic"
)

// Mercure is the "mercure" claim.
type Mercure struct {
	Publish   topic.Scope `json:"publish"`
	Subscribe topic.Scope `json:"subscribe"`
	Payload   any         `json:"payload,omitempty"`
}

// Claims is the full claim set of a capability token.
type Claims struct {
	gojwt.RegisteredClaims
	Mercure Mercure `json:"mercure"`
}

// CanPublish reports whether the publish scope covers the topic.
func (c *Claims) CanPublish(t string) bool {
	return c != nil && c.Mercure.Publish.Covers(t)
}

// CanSubscribe reports whether the subscribe scope covers the topic.
func (c *Claims) CanSubscribe(t string) bool {
	return c != nil && c.Mercure.Subscribe.Covers(t)
}

// PublishClaims returns claims granting publish on the given topics.
func PublishClaims(topics ...string) *Claims {
	return &Claims{Mercure: Mercure{Publish: topic.NewScope(topics...)}}
}

// SubscribeClaims returns claims granting subscribe on the given topics.
func SubscribeClaims(topics ...string) *Claims {
	return &Claims{Mercure: Mercure{Subscribe: topic.NewScope(topics...)}}
}
