package hub

import (
	"sync"

	"github.com/kbukum/mercurekit/topic"
)

// State is the lifecycle state of a subscription.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Subscription describes what a subscriber asked for and what it may see.
type Subscription struct {
	// Topics are the topics the subscriber listens to. "*" listens to all.
	Topics topic.Scope
	// Grant is the subscribe scope of the subscriber's token. Absent for
	// anonymous subscribers, who only receive public updates.
	Grant topic.Scope
	// LastEventID is recorded for diagnostics; it does not trigger replay.
	LastEventID string
}

// registration is the broker-side entry for one subscriber connection.
type registration struct {
	id  string
	sub Subscription

	mu     sync.Mutex
	state  State
	events chan Update
	done   chan struct{}
}

func newRegistration(id string, sub Subscription, buffer int) *registration {
	return &registration{
		id:     id,
		sub:    sub,
		state:  StateConnecting,
		events: make(chan Update, buffer),
		done:   make(chan struct{}),
	}
}

func (r *registration) open() {
	r.mu.Lock()
	if r.state == StateConnecting {
		r.state = StateOpen
	}
	r.mu.Unlock()
}

func (r *registration) wants(u Update, policy PrivatePolicy) bool {
	if !r.sub.Topics.Covers(u.Topic) {
		return false
	}
	if u.Private {
		return policy.Allows(r.sub.Grant, u.Topic)
	}
	return true
}

// send delivers without blocking. It returns false when the registration is
// not open or its buffer is full.
func (r *registration) send(u Update) (delivered bool, open bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateOpen {
		return false, false
	}
	select {
	case r.events <- u:
		return true, true
	default:
		return false, true
	}
}

// close transitions to StateClosed. It returns false if already closed.
func (r *registration) close() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateClosed {
		return false
	}
	r.state = StateClosed
	close(r.events)
	close(r.done)
	return true
}

func (r *registration) currentState() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Handle is a subscriber's view of its registration.
type Handle struct {
	reg *registration
}

// ID returns the connection ID.
func (h *Handle) ID() string { return h.reg.id }

// Updates yields delivered updates. The channel is closed when the
// subscription closes.
func (h *Handle) Updates() <-chan Update { return h.reg.events }

// Done is closed when the subscription closes.
func (h *Handle) Done() <-chan struct{} { return h.reg.done }

// State returns the current lifecycle state.
func (h *Handle) State() State { return h.reg.currentState() }

// Subscription returns what the subscriber asked for.
func (h *Handle) Subscription() Subscription { return h.reg.sub }
