package fxbroadcast_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dmitrymomot/beacon/core/config"
	"github.com/dmitrymomot/beacon/integration/fxbroadcast"
	"github.com/dmitrymomot/beacon/pkg/broadcast"
)

type orderPlaced struct {
	ID string
}

func TestModule_ProvidesSharedBroadcaster(t *testing.T) {
	t.Parallel()

	var orders *broadcast.Shared[orderPlaced]
	app := fxtest.New(t,
		fxbroadcast.Module[orderPlaced]("orders"),
		fx.Populate(&orders),
		fx.NopLogger,
	)
	app.RequireStart()

	require.NotNil(t, orders)

	ctx := context.Background()
	events, err := orders.Subscribe(ctx, broadcast.Config[orderPlaced]{})
	require.NoError(t, err)

	require.NoError(t, orders.Notify(ctx, orderPlaced{ID: "o-1"}))

	got, ok := events.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, "o-1", got.ID)

	app.RequireStop()

	_, ok = events.Next(ctx)
	assert.False(t, ok, "stream should end once the application stops")

	_, err = orders.Subscribe(ctx, broadcast.Config[orderPlaced]{})
	require.ErrorIs(t, err, broadcast.ErrClosed)
}

func TestModule_UsesContainerMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	var orders *broadcast.Shared[orderPlaced]
	app := fxtest.New(t,
		fx.Provide(func() prometheus.Registerer { return reg }),
		fxbroadcast.MetricsModule(),
		fxbroadcast.Module[orderPlaced]("orders"),
		fx.Populate(&orders),
		fx.NopLogger,
	)
	app.RequireStart()
	defer app.RequireStop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events, err := orders.Subscribe(ctx, broadcast.Config[orderPlaced]{})
	require.NoError(t, err)
	defer events.Unsubscribe()

	require.NoError(t, orders.Notify(ctx, orderPlaced{ID: "o-1"}))

	count, err := testutil.GatherAndCount(reg, "broadcast_delivered_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestModule_TwoBroadcastersSideBySide(t *testing.T) {
	t.Parallel()

	type shipped struct{ ID string }

	var (
		orders    *broadcast.Shared[orderPlaced]
		shipments *broadcast.Shared[shipped]
	)
	app := fxtest.New(t,
		fxbroadcast.Module[orderPlaced]("orders"),
		fxbroadcast.Module[shipped]("shipments"),
		fx.Populate(&orders, &shipments),
		fx.NopLogger,
	)
	app.RequireStart()
	defer app.RequireStop()

	ctx := context.Background()
	orderEvents, err := orders.Subscribe(ctx, broadcast.Config[orderPlaced]{})
	require.NoError(t, err)
	shipEvents, err := shipments.Subscribe(ctx, broadcast.Config[shipped]{Channel: broadcast.Bounded(1)})
	require.NoError(t, err)

	require.NoError(t, orders.Notify(ctx, orderPlaced{ID: "o-1"}))
	require.NoError(t, shipments.Notify(ctx, shipped{ID: "s-1"}))

	o, ok := orderEvents.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, "o-1", o.ID)

	s, ok := shipEvents.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, "s-1", s.ID)
}

func TestModule_SettingsFromEnvironment(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("BROADCAST_BUFFER_SIZE", "1")

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	var orders *broadcast.Shared[orderPlaced]
	app := fxtest.New(t,
		fx.Supply(log),
		fxbroadcast.Module[orderPlaced]("orders"),
		fx.Populate(&orders),
		fx.NopLogger,
	)
	app.RequireStart()

	ctx := context.Background()
	events, err := orders.SubscribeDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, broadcast.Bounded(1), events.Channel())

	require.NoError(t, orders.Notify(ctx, orderPlaced{ID: "o-1"}))
	ready, err := orders.Ready(ctx)
	require.NoError(t, err)
	assert.False(t, ready, "a one-slot buffer is full after one event")

	app.RequireStop()

	got, ok := events.Next(ctx)
	require.True(t, ok)
	assert.Equal(t, "o-1", got.ID)

	out := buf.String()
	assert.Contains(t, out, `"msg":"broadcaster stopped"`)
	assert.Contains(t, out, `"name":"orders"`)
	assert.Contains(t, out, `"duration":`)
}
