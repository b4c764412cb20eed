package middleware

import (
	"net/http"

	"github.com/kbukum/mercurekit/util"
)

const defaultMaxBodySize = 1 << 20 // 1MB

// BodySizeLimit returns middleware that restricts the request body to the given
// size string (e.g. "1MB", "512KB"). Unparseable sizes fall back to 1MB.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, size)
			}
			next.ServeHTTP(w, r)
		})
	}
}
