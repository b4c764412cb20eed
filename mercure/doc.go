// Package mercure is the application-facing entry point. It turns a Config
// into signing keys, a publisher credential and a delivery path, then
// exposes the operations an application needs: publishing updates, minting
// subscriber tokens, handing them to browsers as a cookie and building
// subscription URLs.
//
// With hub_url set every update is POSTed to that hub. Without it an
// embedded broker is created and Register mounts its endpoint at
// /.well-known/mercure on a gin router.
//
//	m, err := mercure.New(mercure.Config{SecretKey: os.Getenv("SECRET_KEY")})
//	m.Register(engine)
//	_, err = m.Publish(ctx, hub.Update{Topic: "messages", Data: "<p>hi</p>"})
package mercure
