package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/kbukum/mercurekit/errors"
	"github.com/kbukum/mercurekit/logger"
)

// Recovery returns middleware that recovers from panics, logs the stack and
// responds with a generic INTERNAL_ERROR body.
func Recovery(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("Panic recovered", map[string]interface{}{
						logger.FieldError:     fmt.Sprintf("%v", rec),
						"stack":               string(debug.Stack()),
						"path":                r.URL.Path,
						"method":              r.Method,
						logger.FieldRequestID: r.Header.Get(RequestIDHeader),
					})
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(errors.Internal(fmt.Errorf("%v", rec)).ToResponse())
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
