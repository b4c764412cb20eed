package mercure

import (
	"time"

	"github.com/kbukum/mercurekit/carrier"
	"github.com/kbukum/mercurekit/dispatch"
	"github.com/kbukum/mercurekit/hub"
	"github.com/kbukum/mercurekit/util"
	"github.com/kbukum/mercurekit/validation"
)

// Config configures the hub endpoint, keys and delivery path. It is built
// once at startup and not modified afterwards.
type Config struct {
	// HubURL is the remote hub. Empty runs the embedded broker.
	HubURL string `yaml:"hub_url" mapstructure:"hub_url"`
	// PublisherJWT authenticates remote publishes. Minted from the
	// publisher key with publish ["*"] when empty.
	PublisherJWT string `yaml:"publisher_jwt" mapstructure:"publisher_jwt"`

	SecretKey           string `yaml:"secret_key" mapstructure:"secret_key"`
	PublisherSecretKey  string `yaml:"publisher_secret_key" mapstructure:"publisher_secret_key"`
	SubscriberSecretKey string `yaml:"subscriber_secret_key" mapstructure:"subscriber_secret_key"`
	SigningMethod       string `yaml:"signing_method" mapstructure:"signing_method"`
	// SubscriberTTL sets "exp" on minted subscriber tokens. Zero means none.
	SubscriberTTL time.Duration `yaml:"subscriber_ttl" mapstructure:"subscriber_ttl" validate:"gte=0"`

	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
	// InsecureCookie drops the Secure attribute for local development. It
	// is ignored for remote hubs.
	InsecureCookie bool `yaml:"insecure_cookie" mapstructure:"insecure_cookie"`

	AllowPublish bool `yaml:"allow_publish" mapstructure:"allow_publish"`
	// AllowAnonymous defaults to true when unset.
	AllowAnonymous *bool  `yaml:"allow_anonymous" mapstructure:"allow_anonymous"`
	PrivatePolicy  string `yaml:"private_policy" mapstructure:"private_policy"`

	PublishTimeout   time.Duration `yaml:"publish_timeout" mapstructure:"publish_timeout" validate:"gte=0"`
	SubscriberBuffer int           `yaml:"subscriber_buffer" mapstructure:"subscriber_buffer" validate:"gte=0"`
	KeepAlive        time.Duration `yaml:"keep_alive" mapstructure:"keep_alive" validate:"gte=0"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.CookieName == "" {
		c.CookieName = carrier.DefaultCookieName
	}
	if c.AllowAnonymous == nil {
		c.AllowAnonymous = util.Ptr(true)
	}
	if c.PrivatePolicy == "" {
		c.PrivatePolicy = string(hub.PrivateExplicit)
	}
	if c.SigningMethod == "" {
		c.SigningMethod = "HS256"
	}
	if c.PublishTimeout == 0 {
		c.PublishTimeout = dispatch.DefaultTimeout
	}
	if c.SubscriberBuffer == 0 {
		c.SubscriberBuffer = hub.DefaultBufferSize
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = hub.DefaultKeepAlive
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New().
		OptionalURL("hub_url", c.HubURL).
		OneOf("private_policy", c.PrivatePolicy, []string{string(hub.PrivateExplicit), string(hub.PrivateWildcard)}).
		OneOf("signing_method", c.SigningMethod, []string{"HS256", "HS384", "HS512"})
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Embedded reports whether updates go to the in-process broker.
func (c *Config) Embedded() bool {
	return c.HubURL == ""
}

func (c *Config) anonymousAllowed() bool {
	return util.ValueOr(c.AllowAnonymous, true)
}
