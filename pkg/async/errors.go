package async

import "errors"

// ErrTimeout is returned by ExecFuture.AwaitWithTimeout when the timeout elapses first.
var ErrTimeout = errors.New("async: timed out waiting for result")
