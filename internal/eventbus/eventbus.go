// ABOUTME: Ordered fan-out of typed events to subscribers
// ABOUTME: Delivery follows subscription order; unsubscribing inside a handler is safe

package eventbus

import (
	"slices"
	"sync"
)

// Handler receives one published event.
type Handler[T any] func(T)

type entry[T any] struct {
	id int
	fn Handler[T]
}

// Bus delivers each published event to every subscriber, oldest first.
type Bus[T any] struct {
	mu      sync.Mutex
	entries []entry[T]
	nextID  int
}

func New[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe adds fn and returns a function that removes it. The returned
// function may be called more than once.
func (b *Bus[T]) Subscribe(fn Handler[T]) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.entries = append(b.entries, entry[T]{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.entries = slices.DeleteFunc(b.entries, func(e entry[T]) bool { return e.id == id })
	}
}

// Publish calls the handlers subscribed at the time of the call. A handler
// removed by an earlier handler in the same round is skipped.
func (b *Bus[T]) Publish(event T) {
	b.mu.Lock()
	round := slices.Clone(b.entries)
	b.mu.Unlock()

	for _, e := range round {
		if b.live(e.id) {
			e.fn(event)
		}
	}
}

func (b *Bus[T]) live(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.ContainsFunc(b.entries, func(e entry[T]) bool { return e.id == id })
}

// Len returns the number of subscribers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
