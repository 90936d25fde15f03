package broadcast

import (
	"container/heap"
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/beacon/core/logger"
)

// stallWarnEvery throttles the slow-consumer warning.
const stallWarnEvery = 100

// Cloner lets an event type control the copy each subscriber receives.
// Without it every subscriber gets a plain Go copy of the value.
type Cloner[T any] interface {
	Clone() T
}

// sender is the producer end of one subscription.
type sender[T any] struct {
	pipe   *pipe[T]
	filter Filter[T]

	// pending holds accepted events that did not fit into a full bounded
	// buffer, oldest first. They are delivered before any newer event.
	pending []T
}

// flush delivers pending events in order and reports how many were delivered.
// On failure the undelivered events stay pending.
func (s *sender[T]) flush(ctx context.Context) (int, error) {
	n := 0
	for len(s.pending) > 0 {
		if err := s.pipe.send(ctx, s.pending[0]); err != nil {
			return n, err
		}
		var zero T
		s.pending[0] = zero
		s.pending = s.pending[1:]
		n++
	}
	s.pending = nil
	return n, nil
}

// Broadcaster delivers events of type T to a changing set of subscribers.
//
// Subscribers live in slots of a growable array. A slot whose consumer has
// gone is reclaimed and its index reused by the next Subscribe, so storage
// does not grow under subscribe/unsubscribe churn.
//
// A Broadcaster has a single owner: Subscribe, Notify, Send, Flush, Close and
// NumObservers must not be called concurrently. Wrap it in Shared when
// several goroutines produce events.
type Broadcaster[T any] struct {
	slots  []*sender[T]
	free   freeList
	closed bool
	stalls int64

	id   string
	opts options
	log  *slog.Logger
}

// New creates a Broadcaster ready to accept subscribers.
//
// Example:
//
//	b := broadcast.New[Order](
//		broadcast.WithCapacityHint(8),
//		broadcast.WithLogger(logger),
//	)
//	defer b.Close()
func New[T any](opts ...Option) *Broadcaster[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Broadcaster[T]{
		slots: make([]*sender[T], 0, o.capacityHint),
		id:    uuid.NewString(),
		opts:  o,
	}
	b.log = o.logger.With(
		logger.Component("broadcast"),
		logger.Name(o.name),
		logger.BroadcasterID(b.id),
	)
	return b
}

// ID returns the unique identifier of this broadcaster instance.
func (b *Broadcaster[T]) ID() string { return b.id }

// Name returns the name set with WithName.
func (b *Broadcaster[T]) Name() string { return b.opts.name }

// IsClosed reports whether Close has been called.
func (b *Broadcaster[T]) IsClosed() bool { return b.closed }

// Subscribe registers a new subscriber described by cfg and returns its consumer end.
// It returns ErrClosed once the broadcaster has been closed.
func (b *Broadcaster[T]) Subscribe(cfg Config[T]) (*Events[T], error) {
	if b.closed {
		return nil, ErrClosed
	}

	cfg.Filter.claim()

	p := newPipe[T](cfg.Channel)
	slot := b.install(&sender[T]{pipe: p, filter: cfg.Filter})

	b.opts.metrics.subscribed(b.opts.name)
	b.log.Debug("subscriber added",
		logger.Slot(slot),
		logger.ChannelKind(cfg.Channel.kindName()),
		logger.Capacity(cfg.Channel.capacity),
	)

	return newEvents(p), nil
}

// Notify delivers evt to every subscriber whose filter accepts it.
//
// Unbounded subscribers and bounded subscribers with free space receive the
// event immediately. Each full bounded subscriber gets its own goroutine that
// waits for space, so one slow consumer does not hold back the others; Notify
// returns once all of them have resolved. Subscribers found gone are reclaimed.
//
// Notify fails only when ctx ends before every delivery resolved. Subscribers
// whose delivery was abandoned stay subscribed and keep the event as pending,
// behind any event still pending from earlier calls; the next Notify or Flush
// delivers them first, in order.
func (b *Broadcaster[T]) Notify(ctx context.Context, evt T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var blocked []int

	for i, s := range b.slots {
		if s == nil {
			continue
		}
		if s.pipe.isClosed() {
			b.reclaim(i)
			continue
		}
		if !s.filter.Accept(&evt) {
			b.opts.metrics.filter(b.opts.name)
			continue
		}

		v := b.clone(evt)
		if len(s.pending) == 0 {
			switch s.pipe.trySend(v) {
			case sendDelivered:
				b.opts.metrics.deliver(b.opts.name, 1)
				continue
			case sendGone:
				b.reclaim(i)
				continue
			}
		}

		s.pending = append(s.pending, v)
		b.stall(i)
		blocked = append(blocked, i)
	}

	return b.wait(ctx, blocked)
}

// Close shuts the broadcaster down. Every subscriber's channel is closed, so
// consumers read what is already buffered and then see the end of the stream.
// After Close, Subscribe always returns ErrClosed. Pending events, from Send or
// from an abandoned Notify, are dropped; call Flush first to deliver them. Close is idempotent.
func (b *Broadcaster[T]) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	n := 0
	for i, s := range b.slots {
		if s == nil {
			continue
		}
		b.reclaim(i)
		n++
	}

	b.log.Info("broadcaster closed", logger.Observers(n))
	return nil
}

// DefaultConfig returns an unfiltered subscription request using the channel
// set with WithDefaultChannel or WithSettings (BROADCAST_BUFFER_SIZE).
func (b *Broadcaster[T]) DefaultConfig() Config[T] {
	return NewConfig[T]().WithChannel(b.opts.defaultChannel)
}

// NumObservers reclaims subscribers that left since the last scan and
// returns the number still active.
func (b *Broadcaster[T]) NumObservers() int {
	n := 0
	for i, s := range b.slots {
		if s == nil {
			continue
		}
		if s.pipe.isClosed() {
			b.reclaim(i)
			continue
		}
		n++
	}
	b.opts.metrics.setObservers(b.opts.name, n)
	return n
}

// StorageLen returns the number of slots, active or empty. It has no side effects.
func (b *Broadcaster[T]) StorageLen() int {
	return len(b.slots)
}

// install places s in the lowest-indexed free slot, or appends a new one.
func (b *Broadcaster[T]) install(s *sender[T]) int {
	if b.free.Len() > 0 {
		i := heap.Pop(&b.free).(int)
		b.slots[i] = s
		return i
	}
	b.slots = append(b.slots, s)
	return len(b.slots) - 1
}

// reclaim closes the producer end of slot i and marks the slot empty.
func (b *Broadcaster[T]) reclaim(i int) {
	s := b.slots[i]
	if s == nil {
		return
	}
	s.pipe.close()
	b.slots[i] = nil
	heap.Push(&b.free, i)

	b.opts.metrics.reclaim(b.opts.name)
	b.log.Debug("subscriber reclaimed", logger.Slot(i), logger.Count("free_slots", b.free.Len()))
}

func (b *Broadcaster[T]) stall(i int) {
	b.stalls++
	b.opts.metrics.stall(b.opts.name)
	if b.stalls%stallWarnEvery == 1 {
		b.log.Warn("slow consumer detected",
			logger.Slot(i),
			logger.Count("stalls", int(b.stalls)),
		)
	}
}

func (b *Broadcaster[T]) clone(evt T) T {
	if c, ok := any(evt).(Cloner[T]); ok {
		return c.Clone()
	}
	return evt
}

// wait flushes the given slots concurrently and joins them.
// Slots whose consumer left are reclaimed; the first context error is returned.
func (b *Broadcaster[T]) wait(ctx context.Context, slots []int) error {
	if len(slots) == 0 {
		return nil
	}

	type outcome struct {
		delivered int
		err       error
	}
	results := make([]outcome, len(slots))

	var g errgroup.Group
	if b.opts.maxConcurrent > 0 {
		g.SetLimit(b.opts.maxConcurrent)
	}
	for k, i := range slots {
		s := b.slots[i]
		g.Go(func() error {
			n, err := s.flush(ctx)
			results[k] = outcome{delivered: n, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var ctxErr error
	for k, i := range slots {
		r := results[k]
		b.opts.metrics.deliver(b.opts.name, r.delivered)
		switch {
		case r.err == nil:
		case errors.Is(r.err, ErrSend):
			b.reclaim(i)
		case ctxErr == nil:
			ctxErr = r.err
		}
	}

	if ctxErr != nil {
		b.log.Debug("delivery abandoned", logger.Error(ctxErr))
	}
	return ctxErr
}

// freeList is a min-heap of empty slot indices.
type freeList []int

func (f freeList) Len() int           { return len(f) }
func (f freeList) Less(i, j int) bool { return f[i] < f[j] }
func (f freeList) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *freeList) Push(x any) { *f = append(*f, x.(int)) }

func (f *freeList) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}
