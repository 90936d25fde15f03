package broadcast

// Config describes one subscription: the channel backing it and an optional filter.
// The zero value subscribes with an unbounded channel and no filter.
//
// Example:
//
//	events, err := b.Subscribe(broadcast.Config[Order]{
//		Channel: broadcast.Bounded(16),
//		Filter:  broadcast.Predicate(func(o *Order) bool { return o.Total > 100 }),
//	})
type Config[T any] struct {
	Channel Channel
	Filter  Filter[T]
}

// NewConfig returns the default subscription config: unbounded, unfiltered.
func NewConfig[T any]() Config[T] {
	return Config[T]{}
}

// WithChannel returns a copy of c using ch.
func (c Config[T]) WithChannel(ch Channel) Config[T] {
	c.Channel = ch
	return c
}

// WithFilter returns a copy of c using f.
// It panics if c already carries a filter: a subscription has at most one.
func (c Config[T]) WithFilter(f Filter[T]) Config[T] {
	if !c.Filter.IsZero() {
		panic("broadcast: subscription config already has a filter")
	}
	c.Filter = f
	return c
}
