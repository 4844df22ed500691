// Package currency provides the process-wide broadcast of display
// currency changes. Subscribers hold a typed channel for the lifetime
// of the consuming component and release it on stop.
package currency

import (
	"sync"

	"finbook/internal/core"
)

const subscriberBuffer = 8

// Broadcaster is a typed publish/subscribe channel for currency change
// events. Multiple subscribers may coexist; each sees events in publish
// order. A subscriber that stops draining loses its oldest pending
// events rather than blocking the publisher.
type Broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan core.CurrencyChange
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan core.CurrencyChange)}
}

// Subscribe registers a new subscriber and returns its id and channel.
// The channel is closed by Unsubscribe.
func (b *Broadcaster) Subscribe() (int, <-chan core.CurrencyChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan core.CurrencyChange, subscriberBuffer)
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids
// are ignored.
func (b *Broadcaster) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers the event to every subscriber.
func (b *Broadcaster) Publish(ev core.CurrencyChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		for {
			select {
			case ch <- ev:
			default:
				// Full buffer: drop the oldest pending event and retry.
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// Subscribers returns the current subscriber count.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
