package observability

import (
	"context"
	"errors"
)

// ShutdownFunc flushes and stops the providers installed by Setup.
type ShutdownFunc func(ctx context.Context) error

// Setup installs the global tracer and meter providers when cfg.Enabled is
// set. With export disabled the otel no-op providers stay in place and the
// returned ShutdownFunc does nothing.
func Setup(ctx context.Context, cfg Config, serviceName, serviceVersion string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tp, err := InitTracer(ctx, cfg.TracerConfig(serviceName, serviceVersion))
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg.MeterConfig(serviceName, serviceVersion))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
