package fxbroadcast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dmitrymomot/beacon/core/config"
	"github.com/dmitrymomot/beacon/core/logger"
	"github.com/dmitrymomot/beacon/pkg/broadcast"
)

// Params are the optional dependencies a broadcaster picks up from the container.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *slog.Logger       `optional:"true"`
	Metrics   *broadcast.Metrics `optional:"true"`
}

// Module provides a *broadcast.Shared[T] named name.
// Settings are loaded from the environment; opts override them.
// The broadcaster is closed when the application stops.
func Module[T any](name string, opts ...broadcast.Option) fx.Option {
	return fx.Module("broadcast."+name,
		fx.Provide(Provide[T](name, opts...)),
	)
}

// Provide returns an fx constructor for a *broadcast.Shared[T].
func Provide[T any](name string, opts ...broadcast.Option) func(Params) (*broadcast.Shared[T], error) {
	return func(p Params) (*broadcast.Shared[T], error) {
		var settings broadcast.Settings
		if err := config.Load(&settings); err != nil {
			return nil, fmt.Errorf("fxbroadcast: load settings: %w", err)
		}

		all := []broadcast.Option{
			broadcast.WithSettings(settings),
			broadcast.WithName(name),
			broadcast.WithLogger(p.Logger),
			broadcast.WithMetrics(p.Metrics),
		}
		all = append(all, opts...)

		b := broadcast.New[T](all...)
		shared := broadcast.NewShared(b)

		p.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				start := time.Now()
				err := shared.Close(ctx)
				if p.Logger != nil {
					p.Logger.InfoContext(ctx, "broadcaster stopped",
						logger.Component("fxbroadcast"),
						logger.Name(b.Name()),
						logger.Duration(time.Since(start)),
						logger.Error(err),
					)
				}
				return err
			},
		})

		return shared, nil
	}
}

type metricsParams struct {
	fx.In

	Registerer prometheus.Registerer `optional:"true"`
}

// MetricsModule provides a *broadcast.Metrics shared by every broadcaster in
// the application. Collectors are registered with the container's
// prometheus.Registerer, or prometheus.DefaultRegisterer when none is provided.
// The namespace comes from BROADCAST_METRICS_NAMESPACE.
func MetricsModule() fx.Option {
	return fx.Module("broadcast.metrics",
		fx.Provide(ProvideMetrics),
	)
}

// ProvideMetrics is the constructor used by MetricsModule.
func ProvideMetrics(p metricsParams) (*broadcast.Metrics, error) {
	var settings broadcast.Settings
	if err := config.Load(&settings); err != nil {
		return nil, fmt.Errorf("fxbroadcast: load settings: %w", err)
	}

	reg := p.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return broadcast.NewMetrics(reg, settings.MetricsNamespace)
}
