package mercure

import (
	"context"
	"encoding/json"

	"github.com/kbukum/mercurekit/dispatch"
	"github.com/kbukum/mercurekit/hub"
)

// Publisher is anything that delivers updates, typically *Mercure.
type Publisher interface {
	Publish(ctx context.Context, u hub.Update, opts ...dispatch.Option) (dispatch.Result, error)
}

// Marshaler turns an event payload into update data.
type Marshaler func(payload any) (string, error)

// JSONMarshaler encodes payloads as JSON. Strings and byte slices pass
// through unchanged.
func JSONMarshaler(payload any) (string, error) {
	switch v := payload.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Emitter publishes application events as updates on a bound topic.
type Emitter struct {
	pub       Publisher
	topic     string
	marshaler Marshaler
	typed     bool
	private   bool
	callOpts  []dispatch.Option
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithMarshaler replaces the JSON marshaler.
func WithMarshaler(fn Marshaler) EmitterOption {
	return func(e *Emitter) { e.marshaler = fn }
}

// WithEventType sets the update type to the emitted event name.
func WithEventType() EmitterOption {
	return func(e *Emitter) { e.typed = true }
}

// WithPrivate marks every emitted update private.
func WithPrivate() EmitterOption {
	return func(e *Emitter) { e.private = true }
}

// WithDispatchOptions applies per-call dispatch options to every emit.
func WithDispatchOptions(opts ...dispatch.Option) EmitterOption {
	return func(e *Emitter) { e.callOpts = append(e.callOpts, opts...) }
}

// NewEmitter creates an Emitter bound to topic. An empty topic publishes
// each event on a topic named after the event.
func NewEmitter(pub Publisher, topic string, opts ...EmitterOption) *Emitter {
	e := &Emitter{pub: pub, topic: topic, marshaler: JSONMarshaler}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit publishes payload for the named event.
func (e *Emitter) Emit(ctx context.Context, event string, payload any) (dispatch.Result, error) {
	data, err := e.marshaler(payload)
	if err != nil {
		return dispatch.Result{}, err
	}
	u := hub.Update{Topic: e.topic, Data: data, Private: e.private}
	if u.Topic == "" {
		u.Topic = event
	}
	if e.typed {
		u.Type = event
	}
	return e.pub.Publish(ctx, u, e.callOpts...)
}
