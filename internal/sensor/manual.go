package sensor

import (
	"sync"

	"github.com/genradar/genradar/pkg/core"
)

// Manual is a push-driven source: the host calls PushHeading and PushLocation
// from whatever feed it has. Callbacks run synchronously on the caller's goroutine.
// Pushes hold a read lock while callbacks run, so Cancel waits for any callback
// in flight. Callbacks must not push or cancel on the same Manual.
type Manual struct {
	mu        sync.RWMutex
	nextID    int
	headings  map[int]HeadingFunc
	locations map[int]LocationFunc
}

func NewManual() *Manual {
	return &Manual{
		headings:  make(map[int]HeadingFunc),
		locations: make(map[int]LocationFunc),
	}
}

func (m *Manual) SubscribeHeading(fn HeadingFunc) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.headings[id] = fn
	return newSubscription(func() {
		m.mu.Lock()
		delete(m.headings, id)
		m.mu.Unlock()
	}), nil
}

func (m *Manual) SubscribeLocation(fn LocationFunc) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.locations[id] = fn
	return newSubscription(func() {
		m.mu.Lock()
		delete(m.locations, id)
		m.mu.Unlock()
	}), nil
}

// PushHeading delivers a heading to every subscriber.
func (m *Manual) PushHeading(degrees float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, fn := range m.headings {
		fn(degrees)
	}
}

// PushLocation delivers a position to every subscriber.
func (m *Manual) PushLocation(p core.Point) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, fn := range m.locations {
		fn(p)
	}
}

// Active returns the number of live subscriptions.
func (m *Manual) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.headings) + len(m.locations)
}
