// Package token mints and verifies Mercure capability tokens.
//
// A capability token is an HMAC-signed JWT whose "mercure" claim lists the
// topics the bearer may publish to and subscribe to:
//
//	{"mercure": {"publish": ["*"], "subscribe": ["https://example.com/books/1"]}}
//
// Publisher and subscriber tokens are signed with independent keys so a
// leaked subscriber token never verifies as a publisher token:
//
//	keys, err := token.NewKeys(token.KeysConfig{Secret: "app-secret", SubscriberSecret: "sub-secret"})
//	jwt, err := keys.Subscriber.MintSubscriber("https://example.com/books/1")
//	claims, err := keys.Subscriber.Verify(jwt)
//	claims.CanSubscribe("https://example.com/books/1") // true
//
// Every verification failure returns the same errors.InvalidToken error; the
// underlying cause is attached for logging only.
package token
