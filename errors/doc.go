// Package errors defines AppError and the codes used across mercurekit:
// CONFIGURATION_ERROR, INVALID_TOKEN and REMOTE_HUB_ERROR for the core
// publish/authorize paths, plus the request-level codes the embedded hub
// endpoint renders as JSON.
package errors
