package broadcast

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/beacon/pkg/async"
)

// Shared makes a Broadcaster usable from several goroutines at once.
// Every method takes an exclusive lock and then delegates to the wrapped
// Broadcaster. Waiting for the lock honours ctx.
type Shared[T any] struct {
	lock *semaphore.Weighted
	b    *Broadcaster[T]
}

// NewShared wraps b. The caller must not use b directly afterwards.
func NewShared[T any](b *Broadcaster[T]) *Shared[T] {
	return &Shared[T]{
		lock: semaphore.NewWeighted(1),
		b:    b,
	}
}

func (s *Shared[T]) acquire(ctx context.Context) error {
	return s.lock.Acquire(ctx, 1)
}

func (s *Shared[T]) release() {
	s.lock.Release(1)
}

// Subscribe is the locked form of Broadcaster.Subscribe.
func (s *Shared[T]) Subscribe(ctx context.Context, cfg Config[T]) (*Events[T], error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()
	return s.b.Subscribe(cfg)
}

// SubscribeDefault subscribes with Broadcaster.DefaultConfig.
func (s *Shared[T]) SubscribeDefault(ctx context.Context) (*Events[T], error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()
	return s.b.Subscribe(s.b.DefaultConfig())
}

// Notify is the locked form of Broadcaster.Notify.
// The lock is held until every delivery resolved, so backpressure from a
// bounded subscriber also delays other producers.
func (s *Shared[T]) Notify(ctx context.Context, evt T) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	return s.b.Notify(ctx, evt)
}

// NotifyAsync runs Notify on its own goroutine and returns a future to wait on.
// The future holds the lock until every delivery resolved, like Notify.
//
// Example:
//
//	f := shared.NotifyAsync(ctx, evt)
//	if err := f.AwaitWithTimeout(time.Second); errors.Is(err, async.ErrTimeout) {
//		// still delivering
//	}
func (s *Shared[T]) NotifyAsync(ctx context.Context, evt T) *async.ExecFuture {
	return async.Exec(ctx, evt, s.Notify)
}

// Send is the locked form of Broadcaster.Send.
func (s *Shared[T]) Send(ctx context.Context, evt T) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	return s.b.Send(evt)
}

// Ready is the locked form of Broadcaster.Ready.
func (s *Shared[T]) Ready(ctx context.Context) (bool, error) {
	if err := s.acquire(ctx); err != nil {
		return false, err
	}
	defer s.release()
	return s.b.Ready(), nil
}

// Flush is the locked form of Broadcaster.Flush.
func (s *Shared[T]) Flush(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	return s.b.Flush(ctx)
}

// Close is the locked form of Broadcaster.Close.
func (s *Shared[T]) Close(ctx context.Context) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	return s.b.Close()
}

// NumObservers is the locked form of Broadcaster.NumObservers.
func (s *Shared[T]) NumObservers(ctx context.Context) (int, error) {
	if err := s.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.release()
	return s.b.NumObservers(), nil
}

// StorageLen is the locked form of Broadcaster.StorageLen.
func (s *Shared[T]) StorageLen(ctx context.Context) (int, error) {
	if err := s.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.release()
	return s.b.StorageLen(), nil
}
