package hub

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the broker's OpenTelemetry instruments.
type metrics struct {
	subscribers metric.Int64UpDownCounter
	published   metric.Int64Counter
	delivered   metric.Int64Counter
	dropped     metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	subscribers, err := meter.Int64UpDownCounter("mercure.hub.subscribers",
		metric.WithDescription("Number of open subscriptions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mercure.hub.subscribers counter: %w", err)
	}

	published, err := meter.Int64Counter("mercure.hub.updates.published",
		metric.WithDescription("Updates accepted by the broker"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mercure.hub.updates.published counter: %w", err)
	}

	delivered, err := meter.Int64Counter("mercure.hub.updates.delivered",
		metric.WithDescription("Updates queued to a subscriber"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mercure.hub.updates.delivered counter: %w", err)
	}

	dropped, err := meter.Int64Counter("mercure.hub.updates.dropped",
		metric.WithDescription("Updates dropped because a subscriber buffer was full"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mercure.hub.updates.dropped counter: %w", err)
	}

	return &metrics{
		subscribers: subscribers,
		published:   published,
		delivered:   delivered,
		dropped:     dropped,
	}, nil
}

func (m *metrics) recordSubscribe(ctx context.Context) {
	if m != nil {
		m.subscribers.Add(ctx, 1)
	}
}

func (m *metrics) recordClose(ctx context.Context) {
	if m != nil {
		m.subscribers.Add(ctx, -1)
	}
}

func (m *metrics) recordPublish(ctx context.Context, u Update, delivered, dropped int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("private", u.Private))
	m.published.Add(ctx, 1, attrs)
	if delivered > 0 {
		m.delivered.Add(ctx, int64(delivered), attrs)
	}
	if dropped > 0 {
		m.dropped.Add(ctx, int64(dropped), attrs)
	}
}
