// Package broadcast provides a generic in-process event broadcaster.
//
// One producer notifies a changing set of consumers of typed events without
// knowing how many consumers exist or coupling to their speed. Each consumer
// chooses a bounded or unbounded channel and an optional filter.
//
// # Architecture
//
// The package defines these types:
//   - Broadcaster: owns the subscribers and fans events out to them
//   - Config: describes one subscription (Channel and Filter)
//   - Events: the consumer end of a subscription
//   - Shared: a locked wrapper for use by several producers
//
// # Usage
//
// Basic broadcasting:
//
//	b := broadcast.New[string]()
//	defer b.Close()
//
//	events, err := b.Subscribe(broadcast.Config[string]{Channel: broadcast.Bounded(100)})
//	if err != nil {
//		return err
//	}
//
//	go func() {
//		for msg := range events.All(ctx) {
//			fmt.Println("Received:", msg)
//		}
//	}()
//
//	b.Notify(ctx, "Hello, World!")
//	b.Notify(ctx, "Another message")
//
// # Backpressure
//
// A bounded subscriber with capacity C buffers up to C events. When its buffer
// is full, Notify waits until the consumer reads. Deliveries to other
// subscribers are not held back: each full subscriber is served on its own
// goroutine and Notify returns once all of them resolved.
//
// Unbounded subscribers never make Notify wait. Memory grows without limit if
// such a consumer falls behind.
//
// # Filtering
//
// Filters run on the notifying goroutine before any delivery attempt:
//
//	large := broadcast.Predicate(func(o *Order) bool { return o.Total > 100 })
//
//	seen := map[string]bool{}
//	firstPerCustomer := broadcast.Stateful(func(o *Order) bool {
//		if seen[o.Customer] {
//			return false
//		}
//		seen[o.Customer] = true
//		return true
//	})
//
// A Predicate may be shared by many subscriptions. A Stateful filter belongs to
// exactly one subscription.
//
// # Leaving
//
// A consumer leaves either with Events.Close, which stops new deliveries but
// keeps buffered events readable, or with Events.Unsubscribe, which discards
// them. The broadcaster notices on the next Notify, Send, Flush, Ready,
// NumObservers or Close and reuses the slot for the next subscriber.
//
// # Error Handling
//
//   - ErrClosed: Subscribe or Send after Close; permanent
//   - ErrSend: a subscriber is gone; handled internally by reclaiming its slot
//   - ErrNotReady: Send while an event is still pending; call Flush
//
// Notify only fails when its context ends before every delivery resolved.
// Invalid configuration (Bounded(0), two filters on one Config, a Stateful
// filter reused) panics immediately.
//
// # Thread Safety
//
// A Broadcaster has a single owner and is not safe for concurrent use. Shared
// serialises access with a context-aware lock. Events handles may be read from
// any goroutine.
package broadcast
