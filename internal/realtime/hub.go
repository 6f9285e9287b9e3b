// Package realtime fans collection change events out to live subscribers.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	CollectionUsers      = "users"
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionOrders     = "orders"
	CollectionProposals  = "proposals"
	CollectionUpdates    = "updates"
	CollectionSettings   = "settings"
)

type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

type Event struct {
	Collection string    `json:"collection"`
	Op         Op        `json:"op"`
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id,omitempty"`
	Data       any       `json:"data,omitempty"`
	At         time.Time `json:"at"`
}

// Filter decides whether a subscriber may see an event.
type Filter func(Event) bool

// Sink receives every published event after local fan-out.
type Sink interface {
	Forward(ctx context.Context, ev Event) error
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	buffer int
	sinks  []Sink
	logger *log.Logger
}

func NewHub(logger *log.Logger, buffer int, sinks ...Sink) *Hub {
	if buffer < 1 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[uint64]*Subscription),
		buffer: buffer,
		sinks:  sinks,
		logger: logger,
	}
}

type Subscription struct {
	id          uint64
	hub         *Hub
	collections map[string]struct{}
	filter      Filter
	events      chan Event
	once        sync.Once
}

// Subscribe registers interest in the given collections. A nil filter accepts
// every event of those collections.
func (h *Hub) Subscribe(filter Filter, collections ...string) *Subscription {
	set := make(map[string]struct{}, len(collections))
	for _, c := range collections {
		set[c] = struct{}{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	sub := &Subscription{
		id:          h.nextID,
		hub:         h,
		collections: set,
		filter:      filter,
		events:      make(chan Event, h.buffer),
	}
	h.subs[sub.id] = sub
	return sub
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close tears the subscription down. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.id)
		s.hub.mu.Unlock()
		close(s.events)
	})
}

func (s *Subscription) wants(ev Event) bool {
	if _, ok := s.collections[ev.Collection]; !ok {
		return false
	}
	return s.filter == nil || s.filter(ev)
}

// Publish delivers ev without blocking. A subscriber whose buffer is full
// misses the event.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	h.mu.RLock()
	for _, sub := range h.subs {
		if !sub.wants(ev) {
			continue
		}
		select {
		case sub.events <- ev:
		default:
			h.logger.Warnf("realtime: subscriber %d is slow, dropped %s/%s", sub.id, ev.Collection, ev.ID)
		}
	}
	h.mu.RUnlock()

	// Sinks are outside the admin audience.
	out := Redact(ev, false)
	for _, sink := range h.sinks {
		if err := sink.Forward(ctx, out); err != nil {
			h.logger.Errorf("realtime: forward %s/%s: %v", ev.Collection, ev.ID, err)
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
