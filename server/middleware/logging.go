package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/mercurekit/logger"
)

// RequestLogger returns middleware that logs every request with method,
// path, status code and duration. Health-check paths are skipped.
// Event streams are logged when the subscriber disconnects.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isHealthEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := recordResponse(w)
			next.ServeHTTP(rec, r)

			fields := map[string]interface{}{
				"method":             r.Method,
				"path":               r.URL.Path,
				"status":             rec.status,
				"bytes":              rec.bytes,
				logger.FieldDuration: time.Since(start).Milliseconds(),
			}
			if rec.stream {
				fields["stream"] = true
			}
			if id := r.Header.Get(RequestIDHeader); id != "" {
				fields[logger.FieldRequestID] = id
			}

			switch {
			case rec.status >= 500:
				log.Error("Request completed", fields)
			case rec.status >= 400:
				log.Warn("Request completed", fields)
			default:
				log.Debug("Request completed", fields)
			}
		})
	}
}

func isHealthEndpoint(path string) bool {
	switch path {
	case "/health", "/ready", "/info":
		return true
	}
	return false
}
