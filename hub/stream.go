package hub

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kbukum/mercurekit/logger"
)

// ServeSSE streams the updates of h to w until the request ends or the
// subscription closes.
func ServeSSE(w http.ResponseWriter, r *http.Request, h *Handle, keepAlive time.Duration) {
	serveSSE(w, r, h, keepAlive, logger.Get("hub"))
}

func serveSSE(w http.ResponseWriter, r *http.Request, h *Handle, keepAlive time.Duration, base *logger.Logger) {
	log := base.WithContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("Streaming not supported", map[string]interface{}{
			logger.FieldSubscriberID: h.ID(),
		})
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Event streams are long-lived; the server WriteTimeout must not cut them.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("Could not disable write deadline", map[string]interface{}{
			logger.FieldSubscriberID: h.ID(),
			logger.FieldError:        err.Error(),
		})
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	log.Debug("Subscriber connected", map[string]interface{}{
		logger.FieldSubscriberID: h.ID(),
		"remote_addr":            r.RemoteAddr,
	})

	if keepAlive <= 0 {
		keepAlive = DefaultKeepAlive
	}
	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Subscriber disconnected", map[string]interface{}{
				logger.FieldSubscriberID: h.ID(),
				"reason":                 ctx.Err().Error(),
			})
			return

		case u, ok := <-h.Updates():
			if !ok {
				return
			}
			if err := WriteEvent(w, u); err != nil {
				log.Debug("Write failed", logger.ErrorFields("write_event", err))
				return
			}
			flusher.Flush()

		case <-ticker.C:
			_, _ = fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
