package hub

import (
	"context"
	"fmt"

	"github.com/kbukum/mercurekit/component"
)

// Component wraps a Broker as a lifecycle-managed component.
type Component struct {
	broker *Broker
	path   string
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent wraps broker. path is shown in the startup summary.
func NewComponent(broker *Broker, path string) *Component {
	return &Component{broker: broker, path: path}
}

// Broker returns the wrapped broker.
func (c *Component) Broker() *Broker { return c.broker }

// Name returns the component name.
func (c *Component) Name() string { return "mercure-hub" }

// Start is a no-op; the broker accepts subscriptions as soon as it exists.
func (c *Component) Start(_ context.Context) error { return nil }

// Stop closes every subscription.
func (c *Component) Stop(_ context.Context) error {
	c.broker.Shutdown()
	return nil
}

// Health reports the number of open subscriptions.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d subscribers connected", c.broker.SubscriberCount()),
	}
}

// Describe returns the startup summary entry.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Mercure Hub",
		Type:    "hub",
		Details: fmt.Sprintf("Path: %s private=%s", c.path, c.broker.Policy()),
	}
}
