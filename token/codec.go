package token

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/mercurekit/errors"
)

// Codec signs and verifies capability tokens with one key.
type Codec struct {
	cfg Config
}

// NewCodec creates a codec. An empty key is accepted here; Mint and Verify
// report it as a configuration error so a codec can be wired before the
// secret is known.
func NewCodec(cfg Config) (*Codec, error) {
	cfg.ApplyDefaults()
	if !cfg.supported() {
		return nil, errors.Configuration(fmt.Sprintf("unsupported token signing method: %s", cfg.Method))
	}
	return &Codec{cfg: cfg}, nil
}

// HasKey reports whether the codec can sign.
func (c *Codec) HasKey() bool {
	return c != nil && c.cfg.Key != ""
}

// Mint signs the claims. When the codec has a TTL and the claims carry no
// expiry, "exp" is set to now+TTL.
func (c *Codec) Mint(claims *Claims) (string, error) {
	if !c.HasKey() {
		return "", errors.Configuration("missing token signing key")
	}
	// The TTL stamp goes on a copy; callers may reuse their claims.
	var cp Claims
	if claims != nil {
		cp = *claims
	}
	if c.cfg.TTL > 0 && cp.ExpiresAt == nil {
		now := time.Now()
		cp.IssuedAt = gojwt.NewNumericDate(now)
		cp.ExpiresAt = gojwt.NewNumericDate(now.Add(c.cfg.TTL))
	}
	signed, err := gojwt.NewWithClaims(c.cfg.signingMethod(), &cp).SignedString([]byte(c.cfg.Key))
	if err != nil {
		return "", errors.Internal(fmt.Errorf("sign token: %w", err))
	}
	return signed, nil
}

// MintPublisher mints a token granting publish on topics.
func (c *Codec) MintPublisher(topics ...string) (string, error) {
	return c.Mint(PublishClaims(topics...))
}

// MintSubscriber mints a token granting subscribe on topics.
func (c *Codec) MintSubscriber(topics ...string) (string, error) {
	return c.Mint(SubscribeClaims(topics...))
}

// Verify checks the signature, algorithm and expiry of raw and returns its
// claims. Any failure yields errors.InvalidToken.
func (c *Codec) Verify(raw string) (*Claims, error) {
	if !c.HasKey() {
		return nil, errors.Configuration("missing token verification key")
	}
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(raw, claims, c.keyFunc,
		gojwt.WithValidMethods([]string{c.cfg.signingMethod().Alg()}),
	)
	if err != nil {
		return nil, errors.InvalidToken(err)
	}
	if !parsed.Valid {
		return nil, errors.InvalidToken(fmt.Errorf("token not valid"))
	}
	return claims, nil
}

func (c *Codec) keyFunc(t *gojwt.Token) (interface{}, error) {
	if t.Method.Alg() != c.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(c.cfg.Key), nil
}
