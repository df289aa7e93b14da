// Package realtime provides the in-process publish/subscribe hub behind the
// live-update streams. Subscribers receive change signals, not diffs: on each
// signal the consumer re-queries and pushes its full current result set, so
// every subscriber eventually observes committed writes — including the echo
// of its own session's writes.
package realtime

import "sync"

// Topics for the three live collections.
const (
	TopicEmployees  = "employees"
	TopicAttendance = "attendance"
	TopicLoans      = "loans"
)

type subscriber struct {
	ch chan struct{}
}

// Hub fans change notifications out to subscribers keyed by (topic, owner).
// Signals coalesce: a subscriber that has not drained its pending signal will
// not queue further ones, which is safe because consumers always re-read the
// full current state.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

func key(topic, ownerID string) string {
	return topic + "/" + ownerID
}

// Subscribe registers interest in a topic for one owner's dataset. It returns
// the signal channel and a cancel function; the caller owns the cancellation
// handle and must release it exactly once when no longer interested. The
// channel is closed on cancel.
func (h *Hub) Subscribe(topic, ownerID string) (<-chan struct{}, func()) {
	sub := &subscriber{ch: make(chan struct{}, 1)}
	k := key(topic, ownerID)

	h.mu.Lock()
	if h.subs[k] == nil {
		h.subs[k] = make(map[*subscriber]struct{})
	}
	h.subs[k][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[k]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subs, k)
				}
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

// Publish signals every subscriber of (topic, ownerID). It never blocks;
// a signal already pending for a subscriber is sufficient.
func (h *Hub) Publish(topic, ownerID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[key(topic, ownerID)] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}
