// Package realtime fans service-request change events out to per-user
// subscribers inside the process.
package realtime

import (
	"sync"

	"gmrportal/internal/domain/notify"
	"gmrportal/pkg/logger"
)

const defaultBuffer = 32

type subscription struct {
	ch   chan notify.Event
	once sync.Once
}

type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscription]struct{}
	buffer int
	closed bool
}

func NewBroker() *Broker {
	return &Broker{
		subs:   make(map[string]map[*subscription]struct{}),
		buffer: defaultBuffer,
	}
}

// Subscribe returns a channel of the user's events and a cancel func that
// removes the subscription and closes the channel. Cancel is idempotent.
func (b *Broker) Subscribe(userID string) (<-chan notify.Event, func()) {
	sub := &subscription{ch: make(chan notify.Event, b.buffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[*subscription]struct{})
	}
	b.subs[userID][sub] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[userID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(b.subs, userID)
			}
		}
		b.mu.Unlock()
		sub.once.Do(func() { close(sub.ch) })
	}
	return sub.ch, cancel
}

// Publish delivers ev to every subscriber of its owner. A subscriber whose
// buffer is full misses the event rather than blocking the publisher.
func (b *Broker) Publish(ev notify.Event) {
	userID := ev.UserID()
	if userID == "" {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[userID] {
		select {
		case sub.ch <- ev:
		default:
			logger.Warn("Realtime subscriber for user %s is full, dropping %s event", userID, ev.Kind)
		}
	}
}

func (b *Broker) SubscriberCount(userID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[userID])
}

// Close ends every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for userID, set := range b.subs {
		for sub := range set {
			sub.once.Do(func() { close(sub.ch) })
		}
		delete(b.subs, userID)
	}
}
