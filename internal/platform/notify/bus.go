// Package notify carries transient user-facing failure notices from any
// component to the single display surface. Delivery is best effort: a notice
// published with no subscriber mounted is dropped.
package notify

import (
	"sync"
	"time"
)

const (
	OriginBootstrap  = "bootstrap"
	OriginOnboarding = "onboarding"
	OriginContent    = "content"
	OriginProvider   = "provider"
	OriginSettings   = "settings"
)

type Notice struct {
	UserMessage string
	Origin      string
	OccurredAt  time.Time
}

type Bus struct {
	mu          sync.Mutex
	subscribers map[int]chan Notice
	nextID      int
}

func NewBus() *Bus {
	return &Bus{subscribers: map[int]chan Notice{}}
}

// Publish broadcasts the notice to all current subscribers without blocking.
// A subscriber whose buffer is full misses the notice.
func (b *Bus) Publish(notice Notice) {
	if notice.OccurredAt.IsZero() {
		notice.OccurredAt = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- notice:
		default:
		}
	}
}

// Subscribe registers a receiver and returns its channel together with an
// unsubscribe func. Unsubscribing closes the channel.
func (b *Bus) Subscribe() (<-chan Notice, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Notice, 8)
	b.subscribers[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}
