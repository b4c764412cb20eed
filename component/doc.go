// Package component defines the lifecycle contract shared by the pieces a
// mercure process runs: the HTTP server and the embedded hub.
//
// Components are started in registration order and stopped in reverse, and
// each reports its health for the /health and /ready endpoints.
//
// # Interfaces
//
//   - Component: lifecycle (Start/Stop) plus Health
//   - Describable: startup summary descriptions
//   - RouteProvider: registered HTTP routes for the startup summary
package component
