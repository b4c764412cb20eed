// Package sse reads Server-Sent Events streams such as a Mercure hub
// subscription.
package sse

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxLineSize bounds a single event-stream line.
const maxLineSize = 1 << 20

// Event represents a single server-sent event.
type Event struct {
	// Event is the SSE event type (from "event:" line). Empty for data-only events.
	Event string
	// Data is the event payload (from "data:" line(s)). Multi-line data is joined with newlines.
	Data string
	// ID is the event ID (from "id:" line).
	ID string
	// Retry is the reconnection delay in milliseconds (from "retry:" line), 0 if unset.
	Retry int
}

// Reader reads server-sent events from a stream.
type Reader interface {
	// Next returns the next SSE event. Returns io.EOF when the stream ends.
	Next() (*Event, error)
	// Close releases the underlying resources.
	Close() error
}

type reader struct {
	scanner *bufio.Scanner
	body    io.ReadCloser
}

// NewReader creates an SSE reader from a readable stream.
func NewReader(body io.ReadCloser) Reader {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &reader{
		scanner: scanner,
		body:    body,
	}
}

// Next returns the next SSE event. Returns io.EOF when the stream ends.
func (r *reader) Next() (*Event, error) {
	var event Event
	var hasData bool

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			if hasData {
				return &event, nil
			}
			continue
		}

		// Comments carry keep-alives.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := parseSSELine(line)
		switch field {
		case "data":
			if hasData {
				event.Data += "\n" + value
			} else {
				event.Data = value
				hasData = true
			}
		case "event":
			event.Event = value
		case "id":
			event.ID = value
		case "retry":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				event.Retry = n
			}
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	// Stream ended; flush a trailing event.
	if hasData {
		return &event, nil
	}
	return nil, io.EOF
}

// Close releases the underlying stream.
func (r *reader) Close() error {
	return r.body.Close()
}

// parseSSELine parses a single SSE line into field and value.
func parseSSELine(line string) (field, value string) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return line, ""
	}
	field = line[:idx]
	value = line[idx+1:]
	// A single leading space after the colon is not part of the value.
	if value != "" && value[0] == ' ' {
		value = value[1:]
	}
	return field, value
}
