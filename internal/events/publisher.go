package events

import (
	"log"
	"sync"
)

// Publisher delivers committed notifications to subscribers. The ledger
// service publishes through this interface so it never depends on the
// subscription transport.
type Publisher interface {
	// Publish delivers an event to all subscribers of its stream.
	Publish(ev Event)

	// SubscriberCount returns the number of active subscribers for a
	// stream, or for all streams when stream is empty.
	SubscriberCount(stream string) int
}

// Subscription is a live feed of events for one or more streams.
type Subscription struct {
	// C carries published events. It is closed by Unsubscribe.
	C <-chan Event

	manager *SubscriptionManager
	id      uint64
}

// Unsubscribe removes the subscription and closes its channel.
func (s *Subscription) Unsubscribe() {
	s.manager.remove(s.id)
}

type subscriber struct {
	streams map[string]bool // empty means all streams
	ch      chan Event
}

// SubscriptionManager is a channel-based Publisher. Slow subscribers are
// dropped rather than blocking the publish path.
type SubscriptionManager struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*subscriber
}

// NewSubscriptionManager creates an empty subscription manager.
func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{subs: make(map[uint64]*subscriber)}
}

// Subscribe registers a subscriber for the given streams. With no streams
// given, the subscriber receives every event.
func (m *SubscriptionManager) Subscribe(streams ...string) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := make(map[string]bool, len(streams))
	for _, s := range streams {
		set[s] = true
	}

	m.nextID++
	id := m.nextID
	sub := &subscriber{streams: set, ch: make(chan Event, 64)}
	m.subs[id] = sub

	return &Subscription{C: sub.ch, manager: m, id: id}
}

// Publish delivers an event to all matching subscribers.
func (m *SubscriptionManager) Publish(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, sub := range m.subs {
		if len(sub.streams) > 0 && !sub.streams[ev.Stream()] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			log.Printf("events: dropping %s event for slow subscriber %d", ev.Stream(), id)
		}
	}
}

// SubscriberCount returns the number of subscribers for a stream, or for
// all streams when stream is empty.
func (m *SubscriptionManager) SubscriberCount(stream string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if stream == "" {
		return len(m.subs)
	}
	count := 0
	for _, sub := range m.subs {
		if len(sub.streams) == 0 || sub.streams[stream] {
			count++
		}
	}
	return count
}

func (m *SubscriptionManager) remove(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub, ok := m.subs[id]; ok {
		delete(m.subs, id)
		close(sub.ch)
	}
}

// NopPublisher discards all events. Used where no subscribers exist.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

func (NopPublisher) SubscriberCount(string) int { return 0 }
