package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beacon/pkg/broadcast"
)

const waitTimeout = time.Second

// next reads one event or fails the test.
func next[T any](t *testing.T, e *broadcast.Events[T]) T {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	v, ok := e.Next(ctx)
	require.True(t, ok, "expected an event on %s", e)
	return v
}

// requireEnded asserts that the stream ended rather than timing out.
func requireEnded[T any](t *testing.T, e *broadcast.Events[T]) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	_, ok := e.Next(ctx)
	require.False(t, ok, "expected end of stream on %s", e)
	require.NoError(t, ctx.Err(), "stream did not end before the timeout")
}

// requireEmpty asserts that nothing arrives within a short window.
func requireEmpty[T any](t *testing.T, e *broadcast.Events[T]) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	v, ok := e.Next(ctx)
	require.False(t, ok, "unexpected event %v", v)
}

// notifyAsync runs Notify on a goroutine and reports its result on the returned channel.
func notifyAsync[T any](ctx context.Context, b *broadcast.Broadcaster[T], evt T) <-chan error {
	done := make(chan error, 1)
	go func() { done <- b.Notify(ctx, evt) }()
	return done
}

func requireDone(t *testing.T, done <-chan error) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(waitTimeout):
		require.FailNow(t, "notify did not return")
		return nil
	}
}

func requirePending(t *testing.T, done <-chan error) {
	t.Helper()

	select {
	case err := <-done:
		require.FailNow(t, "notify returned while a subscriber was full", "err: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}
