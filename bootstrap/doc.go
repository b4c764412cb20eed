// Package bootstrap runs a mercurekit service: it starts the registered
// components, runs lifecycle hooks, prints a startup summary and shuts
// everything down in reverse order on SIGINT or SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(server.NewComponent(srv))
//	app.RegisterComponent(m.Component())
//	app.OnStop(shutdownTelemetry)
//	return app.Run(ctx)
package bootstrap
