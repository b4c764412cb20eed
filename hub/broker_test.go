package hub

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/mercurekit/errors"
	"github.com/kbukum/mercurekit/topic"
)

const waitWindow = 100 * time.Millisecond

func subscribe(t *testing.T, b *Broker, topics topic.Scope, grant topic.Scope) *Handle {
	t.Helper()
	h, err := b.Subscribe(context.Background(), Subscription{Topics: topics, Grant: grant})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	t.Cleanup(func() { b.Close(h) })
	return h
}

func publish(t *testing.T, b *Broker, u Update) Update {
	t.Helper()
	out, err := b.Publish(context.Background(), u)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	return out
}

func expectUpdate(t *testing.T, h *Handle, data string) {
	t.Helper()
	select {
	case u, ok := <-h.Updates():
		if !ok {
			t.Fatal("updates channel closed")
		}
		if u.Data != data {
			t.Errorf("expected data %q, got %q", data, u.Data)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %q", data)
	}
}

func expectNothing(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case u, ok := <-h.Updates():
		if ok {
			t.Errorf("expected no update, got %+v", u)
		}
	case <-time.After(waitWindow):
	}
}

func TestBrokerPublicRouting(t *testing.T) {
	b := NewBroker()
	literal := subscribe(t, b, topic.NewScope("messages"), topic.Scope{})
	wildcard := subscribe(t, b, topic.All(), topic.Scope{})

	publish(t, b, Update{Topic: "messages", Data: "m1"})
	expectUpdate(t, literal, "m1")
	expectUpdate(t, wildcard, "m1")

	publish(t, b, Update{Topic: "other", Data: "o1"})
	expectNothing(t, literal)
	expectUpdate(t, wildcard, "o1")
}

func TestBrokerPrivateRouting(t *testing.T) {
	tests := []struct {
		name           string
		policy         PrivatePolicy
		explicitGets   bool
		wildcardGets   bool
		anonymousGets  bool
		otherTopicGets bool
	}{
		{"explicit policy", PrivateExplicit, true, false, false, false},
		{"wildcard policy", PrivateWildcard, true, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBroker(WithPrivatePolicy(tt.policy))
			explicit := subscribe(t, b, topic.NewScope("room-1"), topic.NewScope("room-1"))
			wildcard := subscribe(t, b, topic.NewScope("room-1"), topic.All())
			anonymous := subscribe(t, b, topic.NewScope("room-1"), topic.Scope{})
			other := subscribe(t, b, topic.NewScope("room-1"), topic.NewScope("room-2"))

			publish(t, b, Update{Topic: "room-1", Data: "secret", Private: true})

			for _, c := range []struct {
				name string
				h    *Handle
				want bool
			}{
				{"explicit", explicit, tt.explicitGets},
				{"wildcard", wildcard, tt.wildcardGets},
				{"anonymous", anonymous, tt.anonymousGets},
				{"other grant", other, tt.otherTopicGets},
			} {
				if c.want {
					expectUpdate(t, c.h, "secret")
				} else {
					expectNothing(t, c.h)
				}
			}
		})
	}
}

func TestBrokerCloseThenPublish(t *testing.T) {
	b := NewBroker()
	h, err := b.Subscribe(context.Background(), Subscription{Topics: topic.NewScope("a")})
	if err != nil {
		t.Fatal(err)
	}
	if h.State() != StateOpen {
		t.Fatalf("expected open, got %s", h.State())
	}

	b.Close(h)
	b.Close(h)

	if h.State() != StateClosed {
		t.Errorf("expected closed, got %s", h.State())
	}
	if b.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", b.SubscriberCount())
	}
	if _, err := b.Publish(context.Background(), Update{Topic: "a", Data: "late"}); err != nil {
		t.Errorf("publish after close should not fail: %v", err)
	}
	if _, ok := <-h.Updates(); ok {
		t.Error("closed subscription must not receive updates")
	}
}

func TestBrokerContextCancelCloses(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	h, err := b.Subscribe(ctx, Subscription{Topics: topic.All()})
	if err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription not closed after context cancel")
	}
	if b.SubscriberCount() != 0 {
		t.Errorf("expected registration removed, got %d", b.SubscriberCount())
	}
}

func TestBrokerSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker(WithBufferSize(1))
	slow := subscribe(t, b, topic.All(), topic.Scope{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			if _, err := b.Publish(context.Background(), Update{Topic: "a", Data: fmt.Sprintf("%d", i)}); err != nil {
				t.Error(err)
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	expectUpdate(t, slow, "0")
	expectNothing(t, slow)
}

func TestBrokerAssignsIDs(t *testing.T) {
	b := NewBroker()

	out := publish(t, b, Update{Topic: "a"})
	if !strings.HasPrefix(out.ID, "urn:uuid:") {
		t.Errorf("expected generated urn:uuid id, got %q", out.ID)
	}

	out = publish(t, b, Update{Topic: "a", ID: "custom"})
	if out.ID != "custom" {
		t.Errorf("expected caller id to be kept, got %q", out.ID)
	}

	fixed := NewBroker(WithIDGenerator(func() string { return "fixed" }))
	if out := publish(t, fixed, Update{Topic: "a"}); out.ID != "fixed" {
		t.Errorf("expected generator id, got %q", out.ID)
	}
}

func TestBrokerRejectsInvalidUpdate(t *testing.T) {
	b := NewBroker()
	if _, err := b.Publish(context.Background(), Update{Data: "no topic"}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if _, err := b.Publish(context.Background(), Update{Topic: "a", Retry: -1}); err == nil {
		t.Error("expected error for negative retry")
	}
	if _, err := b.Publish(context.Background(), Update{Topic: "a", ID: "1\ndata: injected"}); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for multi-line id, got %v", err)
	}
	if _, err := b.Publish(context.Background(), Update{Topic: "a", Type: "chat\r"}); err == nil {
		t.Error("expected error for type with carriage return")
	}
}

func TestBrokerShutdown(t *testing.T) {
	b := NewBroker()
	h := subscribe(t, b, topic.All(), topic.Scope{})

	b.Shutdown()
	b.Shutdown()

	if h.State() != StateClosed {
		t.Errorf("expected closed after shutdown, got %s", h.State())
	}
	_, err := b.Subscribe(context.Background(), Subscription{Topics: topic.All()})
	if !errors.HasCode(err, errors.ErrCodeServiceUnavailable) {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %v", err)
	}
}

func TestBrokerConcurrentAccess(t *testing.T) {
	b := NewBroker(WithBufferSize(4))
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h, err := b.Subscribe(context.Background(), Subscription{Topics: topic.All()})
			if err != nil {
				t.Error(err)
				return
			}
			for j := 0; j < 5; j++ {
				select {
				case <-h.Updates():
				default:
				}
			}
			b.Close(h)
		}()
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				if _, err := b.Publish(context.Background(), Update{Topic: "t", Data: fmt.Sprintf("%d-%d", i, j)}); err != nil {
					t.Error(err)
				}
			}
		}(i)
	}
	wg.Wait()

	if b.SubscriberCount() != 0 {
		t.Errorf("expected no orphaned registrations, got %d", b.SubscriberCount())
	}
}

func TestBrokerSubscriberIDs(t *testing.T) {
	b := NewBroker()
	h1 := subscribe(t, b, topic.All(), topic.Scope{})
	h2 := subscribe(t, b, topic.All(), topic.Scope{})

	ids := b.SubscriberIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	if h1.ID() == h2.ID() {
		t.Error("connection ids must be unique")
	}
}

func TestParsePrivatePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    PrivatePolicy
		wantErr bool
	}{
		{"", PrivateExplicit, false},
		{"explicit", PrivateExplicit, false},
		{"wildcard", PrivateWildcard, false},
		{"any", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePrivatePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePrivatePolicy(%q) = %q, %v", tt.in, got, err)
		}
	}
}
