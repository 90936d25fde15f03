// Package async runs error-returning functions on their own goroutine and
// hands back a future to wait on.
//
//	f := async.Exec(ctx, evt, shared.Notify)
//
//	if err := f.AwaitWithTimeout(time.Second); errors.Is(err, async.ErrTimeout) {
//		// still running
//	}
//
// ExecAll joins several futures. A context that is already cancelled when
// Exec is called resolves the future immediately with the context's error.
package async
