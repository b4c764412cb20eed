package mercure

import (
	"context"
	"fmt"
	"testing"

	"github.com/kbukum/mercurekit/dispatch"
	"github.com/kbukum/mercurekit/hub"
	"github.com/kbukum/mercurekit/topic"
)

type fakePublisher struct {
	updates []hub.Update
	opts    int
}

func (f *fakePublisher) Publish(_ context.Context, u hub.Update, opts ...dispatch.Option) (dispatch.Result, error) {
	f.updates = append(f.updates, u)
	f.opts = len(opts)
	return dispatch.Result{Mode: dispatch.ModeLocal, Body: "id-1", Update: u}, nil
}

func TestEmitter(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		opts    []EmitterOption
		payload any
		want    hub.Update
	}{
		{
			name:    "bound topic json",
			topic:   "books",
			payload: map[string]int{"id": 1},
			want:    hub.Update{Topic: "books", Data: `{"id":1}`},
		},
		{
			name:    "event name as topic",
			payload: "raw",
			want:    hub.Update{Topic: "book.created", Data: "raw"},
		},
		{
			name:    "typed private",
			topic:   "books",
			opts:    []EmitterOption{WithEventType(), WithPrivate()},
			payload: []byte("bytes"),
			want:    hub.Update{Topic: "books", Data: "bytes", Type: "book.created", Private: true},
		},
		{
			name:    "custom marshaler",
			topic:   "books",
			opts:    []EmitterOption{WithMarshaler(func(p any) (string, error) { return fmt.Sprint(p), nil })},
			payload: 42,
			want:    hub.Update{Topic: "books", Data: "42"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{}
			e := NewEmitter(pub, tt.topic, tt.opts...)
			res, err := e.Emit(context.Background(), "book.created", tt.payload)
			if err != nil {
				t.Fatalf("Emit: %v", err)
			}
			if res.Body != "id-1" {
				t.Errorf("unexpected result %+v", res)
			}
			if len(pub.updates) != 1 || pub.updates[0] != tt.want {
				t.Errorf("got %+v, want %+v", pub.updates, tt.want)
			}
		})
	}
}

func TestEmitterMarshalError(t *testing.T) {
	pub := &fakePublisher{}
	e := NewEmitter(pub, "books")
	if _, err := e.Emit(context.Background(), "x", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
	if len(pub.updates) != 0 {
		t.Error("nothing should be published when marshaling fails")
	}
}

func TestEmitterDispatchOptions(t *testing.T) {
	pub := &fakePublisher{}
	e := NewEmitter(pub, "books", WithDispatchOptions(dispatch.WithHubURL("https://other.example.com/hub"), dispatch.WithCredential("tok")))
	if _, err := e.Emit(context.Background(), "x", "y"); err != nil {
		t.Fatal(err)
	}
	if pub.opts != 2 {
		t.Errorf("expected 2 dispatch options forwarded, got %d", pub.opts)
	}
}

func TestEmitterThroughEmbeddedBroker(t *testing.T) {
	m := newEmbedded(t, Config{})
	h, err := m.Broker().Subscribe(context.Background(), hub.Subscription{Topics: topic.NewScope("books")})
	if err != nil {
		t.Fatal(err)
	}

	e := NewEmitter(m, "books", WithEventType())
	res, err := e.Emit(context.Background(), "book.created", map[string]string{"title": "Dune"})
	if err != nil {
		t.Fatal(err)
	}

	u := <-h.Updates()
	if u.Type != "book.created" || u.Data != `{"title":"Dune"}` || u.ID != res.Body {
		t.Errorf("unexpected update %+v", u)
	}
}
