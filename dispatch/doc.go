// Package dispatch delivers updates either to a remote Mercure hub over
// HTTP or to the embedded broker.
//
// Each Publish call takes exactly one path. A resolved hub URL always means
// a remote POST, even when a broker is also configured; without a hub URL
// the update goes to the local broker; with neither the call fails with a
// CONFIGURATION_ERROR.
//
// Remote delivery sends the form fields of a Mercure publish request with
// "Authorization: Bearer <credential>", bounded by Config.Timeout and never
// retried. Callers that want retries wrap Publish.
package dispatch
