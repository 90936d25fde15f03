package broadcast

import (
	"context"
	"iter"
	"reflect"
	"runtime"
	"sync/atomic"
)

// Events is the consumer end of a subscription.
//
// Events are read with Next or ranged over with All. The stream ends once the
// broadcaster drops the subscription (Close, or a failed delivery after the
// consumer left) and every buffered event has been read.
//
// There are two ways to leave:
//   - Close stops new deliveries but keeps buffered events readable.
//   - Unsubscribe leaves immediately and discards buffered events.
//
// A handle that becomes unreachable without either call is unsubscribed when
// the garbage collector reclaims it.
type Events[T any] struct {
	pipe      *pipe[T]
	exhausted atomic.Bool
}

func newEvents[T any](p *pipe[T]) *Events[T] {
	e := &Events[T]{pipe: p}
	runtime.AddCleanup(e, func(p *pipe[T]) { p.detach() }, p)
	return e
}

// Next blocks until an event is available and returns it.
// It returns false once the stream has ended; every later call returns false as well.
// It also returns false when ctx is done, in which case the stream is still live.
func (e *Events[T]) Next(ctx context.Context) (T, bool) {
	var zero T
	if e.exhausted.Load() {
		return zero, false
	}

	v, ok := e.pipe.recv(ctx)
	if ok {
		return v, true
	}
	if ctx.Err() == nil {
		e.exhausted.Store(true)
	}
	return zero, false
}

// All returns a lazy sequence of events that stops when the stream ends or ctx is done.
//
//	for evt := range events.All(ctx) {
//		handle(evt)
//	}
func (e *Events[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := e.Next(ctx)
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close tells the broadcaster to stop delivering to this subscriber.
// Events already buffered can still be read with Next; after the last one
// Next returns false. Close does not block and is safe to call more than once.
func (e *Events[T]) Close() {
	e.pipe.stop()
}

// Unsubscribe leaves the subscription immediately. Buffered events are
// discarded and a delivery in flight to this subscriber fails.
func (e *Events[T]) Unsubscribe() {
	e.pipe.detach()
}

// Channel returns the channel kind this subscription was created with.
func (e *Events[T]) Channel() Channel {
	return e.pipe.channel
}

// Buffered returns the number of events delivered but not yet read.
func (e *Events[T]) Buffered() int {
	if e.pipe.dropped.Load() {
		return 0
	}
	return e.pipe.buffered()
}

func (e *Events[T]) String() string {
	return "broadcast.Events[" + reflect.TypeFor[T]().String() + "](" + e.pipe.channel.String() + ")"
}
