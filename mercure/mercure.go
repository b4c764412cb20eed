package mercure

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mercurekit/carrier"
	"github.com/kbukum/mercurekit/dispatch"
	"github.com/kbukum/mercurekit/hub"
	"github.com/kbukum/mercurekit/logger"
	"github.com/kbukum/mercurekit/token"
	"github.com/kbukum/mercurekit/topic"
	"github.com/kbukum/mercurekit/util"
)

// Mercure binds keys, a delivery path and cookie settings together.
type Mercure struct {
	cfg          Config
	keys         *token.Keys
	publisherJWT string
	broker       *hub.Broker
	dispatcher   *dispatch.Dispatcher
	handler      *hub.Handler
	log          *logger.Logger
}

// Option customizes New.
type Option func(*options)

type options struct {
	log        *logger.Logger
	brokerOpts []hub.Option
}

// WithLogger sets the logger used by the facade, the embedded hub and the
// dispatcher.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithBrokerOptions passes extra options to the embedded broker.
func WithBrokerOptions(opts ...hub.Option) Option {
	return func(o *options) { o.brokerOpts = append(o.brokerOpts, opts...) }
}

// New builds a Mercure from cfg. The embedded broker exists only when
// cfg.HubURL is empty.
func New(cfg Config, opts ...Option) (*Mercure, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}
	hubLog := o.log.WithComponent("hub")

	keys, err := token.NewKeys(token.KeysConfig{
		Secret:           cfg.SecretKey,
		PublisherSecret:  cfg.PublisherSecretKey,
		SubscriberSecret: cfg.SubscriberSecretKey,
		Method:           token.SigningMethod(cfg.SigningMethod),
		SubscriberTTL:    cfg.SubscriberTTL,
	})
	if err != nil {
		return nil, err
	}

	publisherJWT := cfg.PublisherJWT
	if publisherJWT == "" && keys.Publisher.HasKey() {
		if publisherJWT, err = keys.Publisher.MintPublisher(topic.Wildcard); err != nil {
			return nil, err
		}
	}

	m := &Mercure{
		cfg:          cfg,
		keys:         keys,
		publisherJWT: publisherJWT,
		log:          o.log.WithComponent("mercure"),
	}

	// A nil *hub.Broker must not reach the dispatcher as a non-nil interface.
	var local dispatch.LocalPublisher
	if cfg.Embedded() {
		policy, _ := hub.ParsePrivatePolicy(cfg.PrivatePolicy)
		brokerOpts := append([]hub.Option{
			hub.WithBufferSize(cfg.SubscriberBuffer),
			hub.WithPrivatePolicy(policy),
			hub.WithLogger(hubLog),
		}, o.brokerOpts...)
		m.broker = hub.NewBroker(brokerOpts...)
		m.handler = hub.NewHandler(m.broker, keys, hub.HandlerConfig{
			AllowPublish:   cfg.AllowPublish,
			AllowAnonymous: cfg.anonymousAllowed(),
			CookieName:     cfg.CookieName,
			KeepAlive:      cfg.KeepAlive,
			Logger:         hubLog,
		})
		local = m.broker
	}

	m.dispatcher, err = dispatch.New(dispatch.Config{
		HubURL:     cfg.HubURL,
		Credential: publisherJWT,
		Timeout:    cfg.PublishTimeout,
		Logger:     o.log.WithComponent("dispatch"),
	}, local)
	if err != nil {
		return nil, err
	}

	m.log.Info("Mercure initialized", map[string]interface{}{
		logger.FieldMode:   m.mode(),
		logger.FieldHubURL: m.HubURL(),
		"allow_publish":    cfg.AllowPublish,
		"allow_anonymous":  cfg.anonymousAllowed(),
		"private_policy":   cfg.PrivatePolicy,
		"publisher_jwt":    util.MaskSecret(publisherJWT, 10),
	})
	return m, nil
}

func (m *Mercure) mode() string {
	if m.cfg.Embedded() {
		return string(dispatch.ModeLocal)
	}
	return string(dispatch.ModeRemote)
}

// Config returns the effective configuration, defaults applied.
func (m *Mercure) Config() Config { return m.cfg }

// Keys returns the publisher and subscriber codecs.
func (m *Mercure) Keys() *token.Keys { return m.keys }

// Broker returns the embedded broker, or nil when delegating to a remote hub.
func (m *Mercure) Broker() *hub.Broker { return m.broker }

// Embedded reports whether the embedded broker is in use.
func (m *Mercure) Embedded() bool { return m.broker != nil }

// PublisherJWT returns the credential used for remote publishes.
func (m *Mercure) PublisherJWT() string { return m.publisherJWT }

// Publish delivers u to the remote hub or the embedded broker.
func (m *Mercure) Publish(ctx context.Context, u hub.Update, opts ...dispatch.Option) (dispatch.Result, error) {
	return m.dispatcher.Publish(ctx, u, opts...)
}

// SubscriberToken mints a subscriber JWT for topics.
func (m *Mercure) SubscriberToken(topics ...string) (string, error) {
	return m.keys.Subscriber.MintSubscriber(topics...)
}

// PublisherToken mints a publisher JWT for topics.
func (m *Mercure) PublisherToken(topics ...string) (string, error) {
	return m.keys.Publisher.MintPublisher(topics...)
}

// HubURL returns the URL subscribers connect to: the remote hub, or the
// embedded endpoint path.
func (m *Mercure) HubURL() string {
	if m.cfg.HubURL != "" {
		return m.cfg.HubURL
	}
	return carrier.WellKnownPath
}

// CookiePath returns the path the authorization cookie is scoped to.
func (m *Mercure) CookiePath() string {
	return carrier.HubPath(m.cfg.HubURL)
}

func (m *Mercure) cookie(value string) carrier.Cookie {
	return carrier.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     m.CookiePath(),
		Insecure: m.cfg.Embedded() && m.cfg.InsecureCookie,
	}
}

// SetAuthorizationCookie hands a subscriber token to the browser. When jwt
// is empty a token is minted for topics, or for every topic when topics is
// empty.
func (m *Mercure) SetAuthorizationCookie(w http.ResponseWriter, topics []string, jwt string) error {
	if jwt == "" {
		if len(topics) == 0 {
			topics = []string{topic.Wildcard}
		}
		var err error
		if jwt, err = m.SubscriberToken(topics...); err != nil {
			return err
		}
	}
	carrier.Attach(w, m.cookie(jwt))
	return nil
}

// ClearAuthorizationCookie removes the authorization cookie.
func (m *Mercure) ClearAuthorizationCookie(w http.ResponseWriter) {
	carrier.Detach(w, m.cookie(""))
}

// SubscriptionURL returns the hub URL with one topic parameter per topic,
// in the given order, followed by the authorization parameter when jwt is
// set.
func (m *Mercure) SubscriptionURL(topics []string, jwt string) string {
	parts := make([]string, 0, 2)
	if len(topics) > 0 {
		// A single key keeps Encode from reordering the topics.
		parts = append(parts, url.Values{"topic": topics}.Encode())
	}
	if jwt != "" {
		parts = append(parts, carrier.QueryParam+"="+url.QueryEscape(jwt))
	}

	base := m.HubURL()
	if len(parts) == 0 {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(parts, "&")
}

// Register mounts the embedded hub endpoint on r. It reports false and
// mounts nothing when delegating to a remote hub.
func (m *Mercure) Register(r gin.IRoutes) bool {
	if m.handler == nil {
		return false
	}
	m.handler.Register(r)
	return true
}

// Component returns the lifecycle component of the embedded broker, or nil
// when delegating to a remote hub.
func (m *Mercure) Component() *hub.Component {
	if m.broker == nil {
		return nil
	}
	return hub.NewComponent(m.broker, carrier.WellKnownPath)
}

// Close shuts down the embedded broker, ending every open stream.
func (m *Mercure) Close() {
	if m.broker != nil {
		m.broker.Shutdown()
	}
}
