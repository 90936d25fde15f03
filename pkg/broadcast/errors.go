package broadcast

import "errors"

var (
	// ErrClosed is returned by Subscribe and Send once the broadcaster has been closed.
	// It is permanent: a closed broadcaster never accepts new subscribers.
	ErrClosed = errors.New("broadcast: broadcaster closed")

	// ErrSend reports that a subscriber's channel can no longer accept events
	// because its consumer went away. The broadcaster absorbs it by reclaiming the slot.
	ErrSend = errors.New("broadcast: subscriber gone")

	// ErrNotReady is returned by Send while an earlier event is still pending
	// for a subscriber whose buffer was full. Call Flush first.
	ErrNotReady = errors.New("broadcast: pending event not flushed")
)
