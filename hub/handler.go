package hub

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mercurekit/carrier"
	"github.com/kbukum/mercurekit/errors"
	"github.com/kbukum/mercurekit/logger"
	"github.com/kbukum/mercurekit/server"
	"github.com/kbukum/mercurekit/token"
	"github.com/kbukum/mercurekit/topic"
	"github.com/kbukum/mercurekit/validation"
)

// DefaultKeepAlive is the interval between keep-alive comments. It should be
// shorter than proxy idle timeouts (typically 60s).
const DefaultKeepAlive = 30 * time.Second

// HandlerConfig configures the embedded hub endpoint.
type HandlerConfig struct {
	// AllowPublish enables POST on the hub endpoint.
	AllowPublish bool
	// AllowAnonymous lets subscribers connect without a token. Anonymous
	// subscribers only receive public updates.
	AllowAnonymous bool
	// CookieName is the authorization cookie name.
	CookieName string
	// KeepAlive is the keep-alive comment interval.
	KeepAlive time.Duration
	// Logger receives endpoint and stream logs. Nil uses the "hub" logger.
	Logger *logger.Logger
}

// Handler serves the Mercure protocol on top of a Broker.
type Handler struct {
	broker *Broker
	keys   *token.Keys
	cfg    HandlerConfig
	log    *logger.Logger
}

// NewHandler creates the hub endpoint. keys verifies subscriber and
// publisher tokens.
func NewHandler(broker *Broker, keys *token.Keys, cfg HandlerConfig) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = carrier.DefaultCookieName
	}
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = DefaultKeepAlive
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get("hub")
	}
	return &Handler{
		broker: broker,
		keys:   keys,
		cfg:    cfg,
		log:    log,
	}
}

// Register mounts the hub at /.well-known/mercure.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET(carrier.WellKnownPath, h.Subscribe)
	r.POST(carrier.WellKnownPath, h.Publish)
}

// Subscribe opens an event stream for the topics in the query string.
func (h *Handler) Subscribe(c *gin.Context) {
	topics := c.QueryArray("topic")
	if appErr := validation.New().RequiredAll("topic", topics).Validate(); appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}

	grant, err := h.subscriberGrant(c.Request)
	if err != nil {
		h.log.Debug("Subscriber rejected", logger.ErrorFields("subscribe", err))
		server.RespondWithError(c, err)
		return
	}

	lastEventID := c.GetHeader("Last-Event-ID")
	if lastEventID == "" {
		lastEventID = c.Query("lastEventID")
	}

	handle, err := h.broker.Subscribe(c.Request.Context(), Subscription{
		Topics:      topic.NewScope(topics...),
		Grant:       grant,
		LastEventID: lastEventID,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	defer h.broker.Close(handle)

	serveSSE(c.Writer, c.Request, handle, h.cfg.KeepAlive, h.log)
}

func (h *Handler) subscriberGrant(r *http.Request) (topic.Scope, error) {
	raw := carrier.Extract(r, h.cfg.CookieName)
	if raw == "" {
		if h.cfg.AllowAnonymous {
			return topic.Scope{}, nil
		}
		return topic.Scope{}, errors.Unauthorized("a subscriber token is required")
	}
	claims, err := h.keys.Subscriber.Verify(raw)
	if err != nil {
		return topic.Scope{}, err
	}
	return claims.Mercure.Subscribe, nil
}

// Publish accepts a form-encoded update from an authorized publisher and
// responds with the update ID.
func (h *Handler) Publish(c *gin.Context) {
	if !h.cfg.AllowPublish {
		server.RespondWithError(c, errors.MethodNotAllowed("Publishing is disabled on this hub."))
		return
	}

	raw := carrier.Extract(c.Request, h.cfg.CookieName)
	if raw == "" {
		server.RespondWithError(c, errors.Unauthorized("a publisher token is required"))
		return
	}
	claims, err := h.keys.Publisher.Verify(raw)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		server.RespondWithError(c, errors.InvalidInput("body", err.Error()))
		return
	}
	u, err := ParseForm(c.Request.PostForm)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if !claims.CanPublish(u.Topic) {
		server.RespondWithError(c, errors.Forbidden(fmt.Sprintf("token does not allow publishing to %q", u.Topic)))
		return
	}

	published, err := h.broker.Publish(c.Request.Context(), u)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.String(http.StatusOK, published.ID)
}
