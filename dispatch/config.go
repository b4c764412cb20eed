package dispatch

import (
	"time"

	"github.com/kbukum/mercurekit/logger"
)

// DefaultTimeout bounds a remote publish when Config.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// Config holds the process-level delivery settings. Per-call options
// override HubURL and Credential.
type Config struct {
	// HubURL is the remote hub endpoint. Empty selects the local broker.
	HubURL string
	// Credential is the publisher JWT sent to the remote hub.
	Credential string
	// Timeout bounds each remote publish.
	Timeout time.Duration
	// Logger receives dispatch logs. Nil uses the "dispatch" logger.
	Logger *logger.Logger
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}
