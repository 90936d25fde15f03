package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beacon/core/logger"
)

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	require.NotNil(t, log)
	assert.NotPanics(t, func() { log.Error("dropped", logger.Slot(1)) })
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestDuration(t *testing.T) {
	t.Parallel()
	attr := logger.Duration(5 * time.Second)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, 5*time.Second, attr.Value.Duration())
}

// ============================================================================
// Broadcasting Tests
// ============================================================================

func TestBroadcasterID(t *testing.T) {
	t.Parallel()
	attr := logger.BroadcasterID("b-1")
	require.Equal(t, "broadcaster_id", attr.Key)
	assert.Equal(t, "b-1", attr.Value.String())

	assert.True(t, logger.BroadcasterID("").Equal(slog.Attr{}))
}

func TestName(t *testing.T) {
	t.Parallel()
	attr := logger.Name("orders")
	require.Equal(t, "name", attr.Key)
	assert.Equal(t, "orders", attr.Value.String())

	assert.True(t, logger.Name("").Equal(slog.Attr{}))
}

func TestSlotAndObservers(t *testing.T) {
	t.Parallel()
	slot := logger.Slot(3)
	require.Equal(t, "slot", slot.Key)
	assert.Equal(t, int64(3), slot.Value.Int64())

	obs := logger.Observers(7)
	require.Equal(t, "observers", obs.Key)
	assert.Equal(t, int64(7), obs.Value.Int64())
}

func TestChannelKindAndCapacity(t *testing.T) {
	t.Parallel()
	kind := logger.ChannelKind("bounded")
	require.Equal(t, "channel", kind.Key)
	assert.Equal(t, "bounded", kind.Value.String())

	capacity := logger.Capacity(16)
	require.Equal(t, "capacity", capacity.Key)
	assert.Equal(t, int64(16), capacity.Value.Int64())

	assert.True(t, logger.Capacity(0).Equal(slog.Attr{}))
}

func TestCount(t *testing.T) {
	t.Parallel()
	attr := logger.Count("dropped", 100)
	require.Equal(t, "dropped", attr.Key)
	assert.Equal(t, int64(100), attr.Value.Int64())
}

func TestEmptyAttrsAreOmitted(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	log.Info("closed", logger.Error(nil), logger.Name(""), logger.Observers(0))

	out := buf.String()
	assert.NotContains(t, out, "error=")
	assert.NotContains(t, out, "name=")
	assert.Contains(t, out, "observers=0")
}
