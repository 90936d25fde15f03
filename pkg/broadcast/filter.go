package broadcast

import "sync/atomic"

type filterKind uint8

const (
	filterNone filterKind = iota
	filterPredicate
	filterStateful
)

// Filter decides whether a subscriber receives a given event.
// It is evaluated once per event per subscriber, before any delivery attempt.
// The zero value accepts every event.
type Filter[T any] struct {
	kind  filterKind
	fn    func(evt *T) bool
	owned *atomic.Bool
}

// Predicate wraps a stateless predicate. The same Filter may be attached to
// any number of subscriptions and may be called from several goroutines.
func Predicate[T any](fn func(evt *T) bool) Filter[T] {
	if fn == nil {
		panic("broadcast: nil filter function")
	}
	return Filter[T]{kind: filterPredicate, fn: fn}
}

// Stateful wraps a closure that mutates captured state on every call.
// The broadcaster becomes its only caller, so fn needs no locking, but the
// Filter may be attached to a single subscription only; attaching it twice panics.
func Stateful[T any](fn func(evt *T) bool) Filter[T] {
	if fn == nil {
		panic("broadcast: nil filter function")
	}
	return Filter[T]{kind: filterStateful, fn: fn, owned: new(atomic.Bool)}
}

// IsZero reports whether the filter is unset.
func (f Filter[T]) IsZero() bool { return f.kind == filterNone }

// Accept reports whether evt should be delivered.
func (f Filter[T]) Accept(evt *T) bool {
	if f.fn == nil {
		return true
	}
	return f.fn(evt)
}

// claim transfers a stateful filter to its subscription.
func (f Filter[T]) claim() {
	if f.kind != filterStateful {
		return
	}
	if !f.owned.CompareAndSwap(false, true) {
		panic("broadcast: stateful filter is already attached to a subscription")
	}
}

func (f Filter[T]) String() string {
	switch f.kind {
	case filterPredicate:
		return "predicate"
	case filterStateful:
		return "stateful"
	default:
		return "none"
	}
}
