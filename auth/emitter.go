package auth

import (
	"sync"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls further behind than this drops events rather than blocking the
// emitter.
const subscriberBuffer = 8

// emitter holds the current auth state and broadcasts transitions to any
// number of subscribers. There is no replay: a new subscriber only sees
// states emitted after it subscribed.
type emitter struct {
	mu      sync.Mutex
	current State
	subs    map[int]chan State
	nextID  int
	closed  bool
}

func newEmitter(initial State) *emitter {
	return &emitter{
		current: initial,
		subs:    make(map[int]chan State),
	}
}

// Current returns the current auth state
func (e *emitter) Current() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Subscribe registers a new subscriber and returns its channel together with
// a cancel function. After Close, the returned channel is already closed.
func (e *emitter) Subscribe() (<-chan State, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch := make(chan State, subscriberBuffer)
	if e.closed {
		close(ch)
		return ch, func() {}
	}

	id := e.nextID
	e.nextID++
	e.subs[id] = ch

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Emit updates the current state and notifies every subscriber. Subscribers
// are always notified, even when the new state equals the current one:
// callers rely on transition notifications after login/logout operations.
// Delivery is non-blocking per subscriber.
func (e *emitter) Emit(s State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.current = s

	for _, ch := range e.subs {
		select {
		case ch <- s:
		default:
			// subscriber is saturated; drop rather than block
		}
	}
}

// Close terminates the broadcast. Idempotent. The current state remains
// readable after Close; only the notification channels die.
func (e *emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true

	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}
