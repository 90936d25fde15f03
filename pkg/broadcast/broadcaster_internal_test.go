package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall_ReusesLowestFreeSlot(t *testing.T) {
	t.Parallel()

	b := New[int]()
	var handles []*Events[int]
	for range 4 {
		e, err := b.Subscribe(Config[int]{})
		require.NoError(t, err)
		handles = append(handles, e)
	}

	// Free slots in descending order so insertion order differs from index order.
	for _, i := range []int{3, 2, 0} {
		handles[i].Unsubscribe()
		b.reclaim(i)
	}

	for _, want := range []int{0, 2, 3} {
		e, err := b.Subscribe(Config[int]{})
		require.NoError(t, err)
		defer e.Unsubscribe()

		require.NotNil(t, b.slots[want], "slot %d should be reused", want)
		assert.Same(t, e.pipe, b.slots[want].pipe)
	}

	e, err := b.Subscribe(Config[int]{})
	require.NoError(t, err)
	defer e.Unsubscribe()
	assert.Equal(t, 5, b.StorageLen(), "append once the free-list is empty")
	assert.Same(t, e.pipe, b.slots[4].pipe)

	handles[1].Unsubscribe()
}

func TestFlush_KeepsOrderAfterFailure(t *testing.T) {
	t.Parallel()

	p := newPipe[int](Bounded(1))
	s := &sender[int]{pipe: p, pending: []int{1, 2, 3}}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := s.flush(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, n, "first event fits the empty buffer")
	assert.Equal(t, []int{2, 3}, s.pending)
}
