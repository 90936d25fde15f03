package broadcast

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
)

type channelKind uint8

const (
	kindUnbounded channelKind = iota
	kindBounded
)

// Channel selects the queue that backs one subscription.
// The zero value is an unbounded channel.
type Channel struct {
	kind     channelKind
	capacity int
}

// Bounded returns a channel that buffers at most capacity events.
// Delivering to a full bounded channel waits until the consumer reads, which
// applies backpressure to the notifier. It panics if capacity is less than 1.
func Bounded(capacity int) Channel {
	if capacity < 1 {
		panic("broadcast: bounded channel capacity must be at least 1")
	}
	return Channel{kind: kindBounded, capacity: capacity}
}

// Unbounded returns a channel that never blocks the notifier.
// Memory grows without limit if the consumer falls behind.
func Unbounded() Channel {
	return Channel{kind: kindUnbounded}
}

// IsBounded reports whether the channel has a capacity limit.
func (c Channel) IsBounded() bool { return c.kind == kindBounded }

// Capacity returns the buffer limit, or 0 for an unbounded channel.
func (c Channel) Capacity() int { return c.capacity }

func (c Channel) kindName() string {
	if c.kind == kindBounded {
		return "bounded"
	}
	return "unbounded"
}

func (c Channel) String() string {
	if c.kind == kindBounded {
		return "bounded(" + strconv.Itoa(c.capacity) + ")"
	}
	return "unbounded"
}

// sendResult is the outcome of a non-blocking delivery attempt.
type sendResult uint8

const (
	sendDelivered sendResult = iota
	sendFull
	sendGone
)

// pipe is the point-to-point channel shared by one sender and one Events handle.
// Exactly one of ch (bounded) or q (unbounded) is set.
type pipe[T any] struct {
	channel Channel

	ch chan T
	q  *queue[T]

	gone      chan struct{} // closed once the consumer closes or drops its end
	goneOnce  sync.Once
	dropped   atomic.Bool
	closeOnce sync.Once
}

func newPipe[T any](c Channel) *pipe[T] {
	p := &pipe[T]{
		channel: c,
		gone:    make(chan struct{}),
	}
	if c.kind == kindBounded {
		p.ch = make(chan T, c.capacity)
	} else {
		p.q = newQueue[T]()
	}
	return p
}

// ---------------------------------------------------------------------------
// producer side
// ---------------------------------------------------------------------------

// isClosed reports whether the consumer end is gone.
func (p *pipe[T]) isClosed() bool {
	select {
	case <-p.gone:
		return true
	default:
		return false
	}
}

// full reports whether a bounded buffer has no free space. Unbounded pipes are never full.
func (p *pipe[T]) full() bool {
	return p.ch != nil && len(p.ch) == cap(p.ch)
}

func (p *pipe[T]) trySend(v T) sendResult {
	if p.isClosed() {
		return sendGone
	}
	if p.ch == nil {
		if !p.q.push(v) || p.dropped.Load() {
			return sendGone
		}
		return sendDelivered
	}
	select {
	case p.ch <- v:
		if p.dropped.Load() {
			return sendGone
		}
		return sendDelivered
	default:
		return sendFull
	}
}

// send delivers v, waiting for buffer space on a bounded pipe.
// It returns ErrSend when the consumer is gone and ctx.Err() when ctx ends first.
// A send that races Unsubscribe counts as failed: the event is discarded with
// the rest of the buffer.
func (p *pipe[T]) send(ctx context.Context, v T) error {
	if p.isClosed() {
		return ErrSend
	}
	if p.ch == nil {
		if !p.q.push(v) || p.dropped.Load() {
			return ErrSend
		}
		return nil
	}
	select {
	case p.ch <- v:
		if p.dropped.Load() {
			return ErrSend
		}
		return nil
	case <-p.gone:
		return ErrSend
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close ends the stream from the producer side. Buffered events stay readable.
func (p *pipe[T]) close() {
	p.closeOnce.Do(func() {
		if p.ch != nil {
			close(p.ch)
			return
		}
		p.q.close()
	})
}

// ---------------------------------------------------------------------------
// consumer side
// ---------------------------------------------------------------------------

// stop refuses further sends but keeps the buffer readable.
func (p *pipe[T]) stop() {
	p.goneOnce.Do(func() {
		close(p.gone)
		if p.q != nil {
			p.q.close()
		}
	})
}

// detach refuses further sends and discards whatever is buffered.
func (p *pipe[T]) detach() {
	p.dropped.Store(true)
	p.stop()
	if p.q != nil {
		p.q.discard()
		return
	}
	for {
		select {
		case _, ok := <-p.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (p *pipe[T]) buffered() int {
	if p.ch != nil {
		return len(p.ch)
	}
	return p.q.len()
}

// recv returns the next event. ok is false when the stream has ended or ctx is done.
func (p *pipe[T]) recv(ctx context.Context) (v T, ok bool) {
	if p.dropped.Load() {
		return v, false
	}
	if p.ch != nil {
		return p.recvBounded(ctx)
	}
	return p.recvUnbounded(ctx)
}

func (p *pipe[T]) recvBounded(ctx context.Context) (v T, ok bool) {
	// Buffered events win over the gone signal.
	select {
	case v, ok = <-p.ch:
		return v, ok
	default:
	}

	select {
	case v, ok = <-p.ch:
		return v, ok
	case <-p.gone:
		if p.dropped.Load() {
			return v, false
		}
		select {
		case v, ok = <-p.ch:
			return v, ok
		default:
			return v, false
		}
	case <-ctx.Done():
		return v, false
	}
}

func (p *pipe[T]) recvUnbounded(ctx context.Context) (T, bool) {
	for {
		item, got, open := p.q.pop()
		if got || !open {
			return item, got
		}
		select {
		case <-p.q.ready:
		case <-p.q.closed:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}
