package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/mercurekit/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	output          io.Writer
	version         string
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. By default the logger is initialized
// from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithOutput redirects the startup summary. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.output = w
	}
}

// WithVersion overrides the version shown in logs and the summary.
func WithVersion(v string) Option {
	return func(o *appOptions) {
		o.version = v
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}
