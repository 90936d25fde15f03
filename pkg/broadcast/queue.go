package broadcast

import "sync"

// queue is an unbounded FIFO with a single logical consumer.
// Once shut, pushes fail but buffered items stay readable.
type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	shut   bool
	ready  chan struct{} // wake-up token, capacity 1
	closed chan struct{} // closed on shutdown
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		ready:  make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (q *queue[T]) push(v T) bool {
	q.mu.Lock()
	if q.shut {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// pop returns the oldest item. open is false when the queue is empty and shut.
func (q *queue[T]) pop() (v T, ok, open bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head < len(q.items) {
		var zero T
		v = q.items[q.head]
		q.items[q.head] = zero
		q.head++
		if q.head == len(q.items) {
			q.items = q.items[:0]
			q.head = 0
		}
		return v, true, true
	}
	return v, false, !q.shut
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// close stops accepting pushes. Idempotent.
func (q *queue[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shut {
		return
	}
	q.shut = true
	close(q.closed)
}

// discard closes the queue and drops everything still buffered.
func (q *queue[T]) discard() {
	q.close()
	q.mu.Lock()
	clear(q.items)
	q.items = nil
	q.head = 0
	q.mu.Unlock()
}
