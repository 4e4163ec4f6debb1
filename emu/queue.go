package emu

import "sync"

// Capacity above which a drained queue releases its buffer.
const queueShrinkCap = 4096

// queue is an unbounded FIFO with a single consumer. push never blocks.
// ready is signaled after each push, the consumer then takes all pending
// items at once.
type queue[T any] struct {
	mu    sync.Mutex
	items []T
	ready chan struct{}
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{ready: make(chan struct{}, 1)}
}

func (q *queue[T]) push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// take appends the pending items to dst, oldest first, and empties the queue.
func (q *queue[T]) take(dst []T) []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	dst = append(dst, q.items...)
	if cap(q.items) > queueShrinkCap {
		q.items = nil
	} else {
		clear(q.items)
		q.items = q.items[:0]
	}
	return dst
}

// poll takes the pending items if ready has been signaled, without blocking.
func (q *queue[T]) poll(dst []T) []T {
	select {
	case <-q.ready:
		return q.take(dst)
	default:
		return dst
	}
}
