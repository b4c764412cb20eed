package dispatch

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/mercurekit/errors"
	"github.com/kbukum/mercurekit/httpclient"
	"github.com/kbukum/mercurekit/hub"
	"github.com/kbukum/mercurekit/logger"
	"github.com/kbukum/mercurekit/observability"
)

const meterName = "github.com/kbukum/mercurekit/dispatch"

// Mode names the delivery path a publish took.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// LocalPublisher is the embedded broker as seen by the dispatcher.
type LocalPublisher interface {
	Publish(ctx context.Context, u hub.Update) (hub.Update, error)
}

// Result describes a delivered update.
type Result struct {
	Mode Mode
	// Body is the remote hub's response body verbatim, or the ID the local
	// broker assigned.
	Body string
	// Update is the update as sent. For local delivery it carries the
	// assigned ID.
	Update hub.Update
}

// Option overrides process configuration for a single Publish call.
type Option func(*callOptions)

type callOptions struct {
	hubURL     *string
	credential *string
}

// WithHubURL sends this update to hubURL instead of the configured hub.
func WithHubURL(hubURL string) Option {
	return func(o *callOptions) { o.hubURL = &hubURL }
}

// WithCredential authenticates this update with credential instead of the
// configured publisher JWT.
func WithCredential(credential string) Option {
	return func(o *callOptions) { o.credential = &credential }
}

// Dispatcher routes updates to a remote hub or the local broker.
type Dispatcher struct {
	cfg     Config
	local   LocalPublisher
	client  *httpclient.Client
	log     *logger.Logger
	metrics *observability.Metrics
}

// New creates a Dispatcher. local may be nil when only remote delivery is
// configured.
func New(cfg Config, local LocalPublisher) (*Dispatcher, error) {
	cfg.ApplyDefaults()

	client, err := httpclient.New(httpclient.Config{Timeout: cfg.Timeout})
	if err != nil {
		return nil, errors.Configuration(err.Error())
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Get("dispatch")
	}
	metrics, err := observability.NewMetrics(observability.Meter(meterName))
	if err != nil {
		log.Warn("Dispatch metrics disabled", logger.ErrorFields("new_metrics", err))
	}

	return &Dispatcher{
		cfg:     cfg,
		local:   local,
		client:  client,
		log:     log,
		metrics: metrics,
	}, nil
}

// Publish delivers u through exactly one path. Remote failures return a
// REMOTE_HUB_ERROR carrying the hub's status and body.
func (d *Dispatcher) Publish(ctx context.Context, u hub.Update, opts ...Option) (Result, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	hubURL := d.cfg.HubURL
	if o.hubURL != nil {
		hubURL = *o.hubURL
	}
	credential := d.cfg.Credential
	if o.credential != nil {
		credential = *o.credential
	}

	if err := u.Validate(); err != nil {
		return Result{}, err
	}

	mode := ModeLocal
	if hubURL != "" {
		mode = ModeRemote
	} else if d.local == nil {
		return Result{}, errors.Configuration("no hub URL configured and no embedded broker available")
	}

	oc := observability.NewOperationContext("mercure", "publish", logger.RequestIDFromContext(ctx), d.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanPublish,
		attribute.String(observability.AttrMode, string(mode)),
		attribute.String(observability.AttrTopic, u.Topic),
	)

	var (
		res Result
		err error
	)
	if mode == ModeRemote {
		span.SetAttributes(attribute.String(observability.AttrHubURL, hubURL))
		res, err = d.publishRemote(ctx, hubURL, credential, u)
	} else {
		res, err = d.publishLocal(ctx, u)
	}
	oc.EndOperation(ctx, span, "dispatch", err)

	log := d.log.WithContext(ctx)
	fields := map[string]interface{}{
		logger.FieldMode:     string(mode),
		logger.FieldTopic:    u.Topic,
		logger.FieldDuration: oc.Duration().Milliseconds(),
	}
	if mode == ModeRemote {
		fields[logger.FieldHubURL] = hubURL
	}
	if err != nil {
		fields[logger.FieldError] = err.Error()
		log.Error("Update dispatch failed", fields)
		return Result{}, err
	}
	fields[logger.FieldUpdateID] = res.Update.ID
	log.Debug("Update dispatched", fields)
	return res, nil
}

func (d *Dispatcher) publishRemote(ctx context.Context, hubURL, credential string, u hub.Update) (Result, error) {
	if credential == "" {
		return Result{}, errors.Configuration("missing publisher credential for remote hub")
	}

	resp, err := d.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   hubURL,
		Body:   u.Form(),
		Auth:   httpclient.BearerAuth(credential),
	})
	if err != nil {
		return Result{}, errors.RemoteHub(hubURL, httpclient.StatusCode(err), httpclient.ResponseBody(err), err)
	}

	body := string(resp.Body)
	if u.ID == "" {
		u.ID = body
	}
	return Result{Mode: ModeRemote, Body: body, Update: u}, nil
}

func (d *Dispatcher) publishLocal(ctx context.Context, u hub.Update) (Result, error) {
	sent, err := d.local.Publish(ctx, u)
	if err != nil {
		return Result{}, err
	}
	return Result{Mode: ModeLocal, Body: sent.ID, Update: sent}, nil
}
