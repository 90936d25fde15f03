package broadcast

import (
	"context"

	"github.com/dmitrymomot/beacon/core/logger"
)

// Ready, Send and Flush form a push-with-backpressure interface for producers
// that hand over events without waiting on each one:
//
//	for evt := range source {
//		if !b.Ready() {
//			if err := b.Flush(ctx); err != nil {
//				return err
//			}
//		}
//		if err := b.Send(evt); err != nil {
//			return err
//		}
//	}
//	return b.Flush(ctx)
//
// Every readiness check walks all subscribers.

// Ready reports whether Send can hand an event to every subscriber without
// waiting. It is false while any active bounded subscriber's buffer is full or
// any subscriber still holds a pending event. Subscribers that left are reclaimed.
func (b *Broadcaster[T]) Ready() bool {
	ready := true
	for i, s := range b.slots {
		if s == nil {
			continue
		}
		if s.pipe.isClosed() {
			b.reclaim(i)
			continue
		}
		if len(s.pending) > 0 || s.pipe.full() {
			ready = false
		}
	}
	return ready
}

// Send dispatches evt to every interested subscriber in one non-blocking pass.
// A full bounded subscriber keeps the event as pending until Flush or the
// next Notify. Send returns ErrNotReady, without evaluating any filter, when a
// subscriber still holds a pending event, and ErrClosed after Close.
func (b *Broadcaster[T]) Send(evt T) error {
	if b.closed {
		return ErrClosed
	}
	for i, s := range b.slots {
		if s != nil && len(s.pending) > 0 && !s.pipe.isClosed() {
			b.log.Debug("send refused, pending event not flushed", logger.Slot(i))
			return ErrNotReady
		}
	}

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
		switch s.pipe.trySend(v) {
		case sendDelivered:
			b.opts.metrics.deliver(b.opts.name, 1)
		case sendGone:
			b.reclaim(i)
		case sendFull:
			s.pending = append(s.pending, v)
			b.stall(i)
		}
	}
	return nil
}

// Flush delivers every pending event, waiting for buffer space where needed.
// Deliveries to different subscribers run concurrently. Subscribers that left
// are reclaimed. Flush fails only when ctx ends first; undelivered events stay pending.
func (b *Broadcaster[T]) Flush(ctx context.Context) error {
	var slots []int
	for i, s := range b.slots {
		if s == nil {
			continue
		}
		if s.pipe.isClosed() {
			b.reclaim(i)
			continue
		}
		if len(s.pending) > 0 {
			slots = append(slots, i)
		}
	}
	return b.wait(ctx, slots)
}
