package token

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines the supported HMAC algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures a single codec.
type Config struct {
	// Key is the HMAC secret used both to sign and verify.
	Key string

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod

	// TTL sets "exp" on minted tokens. Zero mints tokens without expiry.
	TTL time.Duration
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
}

func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

func (c *Config) supported() bool {
	switch c.Method {
	case HS256, HS384, HS512:
		return true
	}
	return false
}
