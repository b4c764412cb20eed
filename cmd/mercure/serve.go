package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/mercurekit/bootstrap"
	"github.com/kbukum/mercurekit/logger"
	"github.com/kbukum/mercurekit/mercure"
	"github.com/kbukum/mercurekit/observability"
	"github.com/kbukum/mercurekit/server"
	"github.com/kbukum/mercurekit/version"
)

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server with the embedded hub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.load()
			if err != nil {
				return err
			}
			app, _, err := newServeApp(cmd.Context(), cfg, bootstrap.WithOutput(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}

// newServeApp wires telemetry, the HTTP server and the hub into a bootstrap
// app. Nothing is started until the app runs.
func newServeApp(ctx context.Context, cfg *AppConfig, opts ...bootstrap.Option) (*bootstrap.App[*AppConfig], *server.Server, error) {
	app, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability, cfg.Name, app.Version)
	if err != nil {
		return nil, nil, err
	}
	app.OnStop(bootstrap.Hook(shutdownTelemetry))

	m, err := mercure.New(cfg.Mercure, mercure.WithLogger(app.Logger))
	if err != nil {
		return nil, nil, err
	}

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyMiddleware()
	if !m.Register(srv.GinEngine()) {
		app.Logger.Info("Delegating to remote hub, no local endpoint mounted", map[string]interface{}{
			logger.FieldHubURL: m.HubURL(),
		})
	}
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll, func() map[string]any {
		mode := "remote"
		if m.Embedded() {
			mode = "embedded"
		}
		return map[string]any{
			"mode":        mode,
			"hub_url":     m.HubURL(),
			"version":     version.GetShortVersion(),
			"environment": cfg.Environment,
		}
	})

	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, nil, err
	}
	if hc := m.Component(); hc != nil {
		if err := app.RegisterComponent(hc); err != nil {
			return nil, nil, err
		}
	}
	return app, srv, nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
