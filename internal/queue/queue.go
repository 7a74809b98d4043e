// Package queue provides a bounded FIFO buffer for producers that must never block.
package queue

import "sync"

// Ring is a thread-safe FIFO with a fixed capacity. When full, Push evicts
// the oldest items so the newest are kept.
type Ring[T any] struct {
	mu    sync.Mutex
	items []T
	head  int // index of the oldest item
	size  int

	dropped uint64
}

// New creates an empty ring. capacity < 1 is treated as 1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends items, evicting the oldest when full. It returns how many were evicted.
func (q *Ring[T]) Push(items ...T) (evicted int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, it := range items {
		if q.size == len(q.items) {
			q.items[q.head] = it
			q.head = (q.head + 1) % len(q.items)
			evicted++
			continue
		}
		q.items[(q.head+q.size)%len(q.items)] = it
		q.size++
	}
	q.dropped += uint64(evicted)
	return evicted
}

// Pop removes and returns the oldest item. ok is false when empty.
func (q *Ring[T]) Pop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.size == 0 {
		return item, false
	}
	item = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Drain returns all items oldest first and empties the ring.
func (q *Ring[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, q.size)
	var zero T
	for i := range out {
		idx := (q.head + i) % len(q.items)
		out[i] = q.items[idx]
		q.items[idx] = zero
	}
	q.head, q.size = 0, 0
	return out
}

// Len returns the number of buffered items.
func (q *Ring[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap returns the capacity.
func (q *Ring[T]) Cap() int {
	return len(q.items)
}

// Empty returns true if the ring has no items.
func (q *Ring[T]) Empty() bool {
	return q.Len() == 0
}

// Dropped returns the total number of items evicted since creation.
func (q *Ring[T]) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
