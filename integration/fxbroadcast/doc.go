// Package fxbroadcast wires broadcast.Shared into go.uber.org/fx applications.
//
// # Usage
//
//	app := fx.New(
//		fxbroadcast.MetricsModule(),
//		fxbroadcast.Module[OrderPlaced]("orders"),
//		fx.Invoke(func(orders *broadcast.Shared[OrderPlaced]) {
//			events, _ := orders.Subscribe(ctx, broadcast.Config[OrderPlaced]{})
//			go consume(events)
//		}),
//	)
//
// Each Module loads broadcast.Settings from the environment (BROADCAST_*
// variables, see core/config), uses a *slog.Logger and *broadcast.Metrics from
// the container when present, and closes the broadcaster in the OnStop hook so
// consumers see the end of their streams on shutdown. BROADCAST_BUFFER_SIZE sets
// the channel used by Shared.SubscribeDefault.
package fxbroadcast
