package async

import (
	"context"
	"time"
)

// ExecFuture is the pending result of a function started with Exec.
type ExecFuture struct {
	err  error
	done chan struct{}
}

// Await blocks until the function returns and reports its error.
func (f *ExecFuture) Await() error {
	<-f.done
	return f.err
}

// AwaitWithTimeout waits at most timeout for the function to return.
// It returns ErrTimeout when the timeout elapses first; the function keeps running.
func (f *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-f.done:
		return f.err
	case <-t.C:
		return ErrTimeout
	}
}

// IsComplete reports whether the function has returned, without blocking.
func (f *ExecFuture) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done is closed once the function has returned.
func (f *ExecFuture) Done() <-chan struct{} {
	return f.done
}

// Exec runs fn(ctx, param) on its own goroutine.
// A context that is already done short-circuits: fn is not called and the
// future resolves with ctx.Err().
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	f := &ExecFuture{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.err = fn(ctx, param)
	}()

	return f
}

// ExecAll waits for every future and returns the first error in argument order.
func ExecAll(futures ...*ExecFuture) error {
	var first error
	for _, f := range futures {
		if err := f.Await(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
