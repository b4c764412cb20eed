package middleware

import (
	"net/http"
	"strings"
)

// responseRecorder notes what the hub sent back so RequestLogger can tell
// a finished publish from a subscriber stream that just closed.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	bytes   int64
	headers bool
	stream  bool
}

func recordResponse(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rr *responseRecorder) WriteHeader(code int) {
	if !rr.headers {
		rr.headers = true
		rr.status = code
		rr.stream = strings.HasPrefix(rr.Header().Get("Content-Type"), "text/event-stream")
	}
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	if !rr.headers {
		rr.WriteHeader(http.StatusOK)
	}
	n, err := rr.ResponseWriter.Write(b)
	rr.bytes += int64(n)
	return n, err
}

// Flush pushes buffered events to the subscriber.
func (rr *responseRecorder) Flush() {
	if f, ok := rr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the connection, which the
// event stream needs to lift its write deadline.
func (rr *responseRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}
