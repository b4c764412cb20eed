// Package server provides the HTTP server that hosts the embedded hub:
// Gin for routing, served over HTTP/1.1 and h2c so browsers on HTTP/2
// proxies keep many event streams on one connection.
//
// Middleware (server/middleware) is applied around the whole mux:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - CORS: cross-origin headers and preflight handling
//   - BodySizeLimit: publish body size limit
//   - RequestLogger: request logging with duration
//
// Endpoints (server/endpoint): /health, /ready and /info.
package server
