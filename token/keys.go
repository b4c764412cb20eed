package token

import "time"

// DefaultSecret is the shared application secret used by the CLI and
// examples when nothing is configured. Never use it in production.
const DefaultSecret = "secret_key"

// KeysConfig configures the publisher and subscriber codecs.
// Each direction falls back to Secret when its own key is empty.
type KeysConfig struct {
	Secret           string
	PublisherSecret  string
	SubscriberSecret string
	Method           SigningMethod
	SubscriberTTL    time.Duration
}

// Keys holds one codec per direction.
type Keys struct {
	Publisher  *Codec
	Subscriber *Codec
}

// NewKeys builds both codecs.
func NewKeys(cfg KeysConfig) (*Keys, error) {
	pubKey := cfg.PublisherSecret
	if pubKey == "" {
		pubKey = cfg.Secret
	}
	subKey := cfg.SubscriberSecret
	if subKey == "" {
		subKey = cfg.Secret
	}

	pub, err := NewCodec(Config{Key: pubKey, Method: cfg.Method})
	if err != nil {
		return nil, err
	}
	sub, err := NewCodec(Config{Key: subKey, Method: cfg.Method, TTL: cfg.SubscriberTTL})
	if err != nil {
		return nil, err
	}
	return &Keys{Publisher: pub, Subscriber: sub}, nil
}
