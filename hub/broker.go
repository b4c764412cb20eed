package hub

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/kbukum/mercurekit/errors"
	"github.com/kbukum/mercurekit/logger"
	"github.com/kbukum/mercurekit/observability"
)

const (
	// DefaultBufferSize is the per-subscriber queue length.
	DefaultBufferSize = 256

	meterName = "github.com/kbukum/mercurekit/hub"
)

// Broker is the embedded in-process hub.
type Broker struct {
	registrations map[string]*registration
	mu            sync.RWMutex
	stopped       bool

	bufferSize int
	policy     PrivatePolicy
	newID      func() string
	log        *logger.Logger
	meter      metric.Meter
	metrics    *metrics
}

// Option configures a Broker.
type Option func(*Broker)

// WithBufferSize sets the per-subscriber queue length.
func WithBufferSize(n int) Option {
	return func(b *Broker) {
		if n > 0 {
			b.bufferSize = n
		}
	}
}

// WithPrivatePolicy sets how private updates are routed.
func WithPrivatePolicy(p PrivatePolicy) Option {
	return func(b *Broker) { b.policy = p }
}

// WithLogger sets the broker logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *Broker) { b.log = l }
}

// WithMeter sets the meter used for broker metrics.
func WithMeter(m metric.Meter) Option {
	return func(b *Broker) { b.meter = m }
}

// WithIDGenerator overrides how missing update IDs are filled in.
func WithIDGenerator(fn func() string) Option {
	return func(b *Broker) { b.newID = fn }
}

// NewBroker creates a broker ready to accept subscriptions.
func NewBroker(opts ...Option) *Broker {
	b := &Broker{
		registrations: make(map[string]*registration),
		bufferSize:    DefaultBufferSize,
		policy:        PrivateExplicit,
		newID:         NewID,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Get("hub")
	}
	if b.meter == nil {
		b.meter = observability.Meter(meterName)
	}
	m, err := newMetrics(b.meter)
	if err != nil {
		b.log.Warn("Hub metrics disabled", logger.ErrorFields("new_metrics", err))
	}
	b.metrics = m
	return b
}

// Policy returns the private update policy in effect.
func (b *Broker) Policy() PrivatePolicy { return b.policy }

// Subscribe registers a subscriber and returns its handle. The subscription
// closes when ctx is done or Close is called, whichever comes first.
func (b *Broker) Subscribe(ctx context.Context, sub Subscription) (*Handle, error) {
	reg := newRegistration(uuid.NewString(), sub, b.bufferSize)

	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil, errors.ServiceUnavailable("hub")
	}
	b.registrations[reg.id] = reg
	count := len(b.registrations)
	b.mu.Unlock()

	reg.open()
	b.metrics.recordSubscribe(ctx)
	h := &Handle{reg: reg}

	go func() {
		select {
		case <-ctx.Done():
			b.Close(h)
		case <-reg.done:
		}
	}()

	b.log.Debug("Subscriber registered", map[string]interface{}{
		logger.FieldSubscriberID: reg.id,
		"topics":                 sub.Topics.Patterns(),
		"last_event_id":          sub.LastEventID,
		"total_subscribers":      count,
	})
	return h, nil
}

// Close closes the subscription and removes it from the registry.
// Closing twice is a no-op.
func (b *Broker) Close(h *Handle) {
	if h == nil {
		return
	}
	b.mu.Lock()
	if cur, ok := b.registrations[h.reg.id]; ok && cur == h.reg {
		delete(b.registrations, h.reg.id)
	}
	count := len(b.registrations)
	b.mu.Unlock()

	if h.reg.close() {
		b.metrics.recordClose(context.Background())
		b.log.Debug("Subscriber closed", map[string]interface{}{
			logger.FieldSubscriberID: h.reg.id,
			"total_subscribers":      count,
		})
	}
}

// Publish fans u out to matching open subscriptions and returns it with its
// ID filled in. It never waits on subscribers; the only error is an invalid
// update.
func (b *Broker) Publish(ctx context.Context, u Update) (Update, error) {
	if err := u.Validate(); err != nil {
		return Update{}, err
	}
	if u.ID == "" {
		u.ID = b.newID()
	}

	b.mu.RLock()
	snapshot := make([]*registration, 0, len(b.registrations))
	for _, reg := range b.registrations {
		snapshot = append(snapshot, reg)
	}
	b.mu.RUnlock()

	delivered, dropped := 0, 0
	for _, reg := range snapshot {
		if !reg.wants(u, b.policy) {
			continue
		}
		ok, open := reg.send(u)
		switch {
		case ok:
			delivered++
		case open:
			dropped++
			b.log.Warn("Subscriber buffer full, dropping update", map[string]interface{}{
				logger.FieldSubscriberID: reg.id,
				logger.FieldUpdateID:     u.ID,
			})
		}
	}

	b.metrics.recordPublish(ctx, u, delivered, dropped)
	b.log.Debug("Update published", map[string]interface{}{
		logger.FieldTopic:    u.Topic,
		logger.FieldUpdateID: u.ID,
		"private":            u.Private,
		"delivered":          delivered,
		"dropped":            dropped,
	})
	return u, nil
}

// Shutdown closes every subscription. Later Subscribe calls fail with
// SERVICE_UNAVAILABLE. Safe to call multiple times.
func (b *Broker) Shutdown() {
	b.mu.Lock()
	b.stopped = true
	regs := make([]*registration, 0, len(b.registrations))
	for id, reg := range b.registrations {
		regs = append(regs, reg)
		delete(b.registrations, id)
	}
	b.mu.Unlock()

	for _, reg := range regs {
		if reg.close() {
			b.metrics.recordClose(context.Background())
		}
	}
	b.log.Debug("All subscribers closed during shutdown", map[string]interface{}{
		"closed": len(regs),
	})
}

// SubscriberCount returns the number of open subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.registrations)
}

// SubscriberIDs returns the connection IDs of open subscriptions.
func (b *Broker) SubscriberIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]string, 0, len(b.registrations))
	for id := range b.registrations {
		ids = append(ids, id)
	}
	return ids
}
