package broadcast

import (
	"log/slog"

	"github.com/dmitrymomot/beacon/core/logger"
)

const (
	// DefaultCapacityHint is the number of subscriber slots preallocated by New.
	DefaultCapacityHint = 16

	// DefaultName labels broadcasters in logs and metrics when no name is given.
	DefaultName = "default"
)

type options struct {
	name           string
	defaultChannel Channel
	capacityHint   int
	maxConcurrent  int
	logger         *slog.Logger
	metrics        *Metrics
}

func defaultOptions() options {
	return options{
		name:         DefaultName,
		capacityHint: DefaultCapacityHint,
		logger:       logger.Discard(),
	}
}

// Option configures a Broadcaster.
type Option func(*options)

// WithCapacityHint preallocates storage for n subscribers.
// Values below zero are ignored.
func WithCapacityHint(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.capacityHint = n
		}
	}
}

// WithName labels the broadcaster in logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger configures structured logging for the broadcaster.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records delivery counters in m. See NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithMaxConcurrentDeliveries limits how many blocked deliveries to full
// bounded subscribers run at once during a single Notify or Flush.
// Set to 0 (default) for one goroutine per blocked subscriber.
func WithMaxConcurrentDeliveries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxConcurrent = n
		}
	}
}

// WithDefaultChannel sets the channel used by DefaultConfig.
// Without it DefaultConfig subscribes with an unbounded channel.
func WithDefaultChannel(ch Channel) Option {
	return func(o *options) {
		o.defaultChannel = ch
	}
}

// WithSettings applies environment-derived settings. Options passed after it override them.
func WithSettings(s Settings) Option {
	return func(o *options) {
		WithName(s.Name)(o)
		WithDefaultChannel(s.Channel())(o)
		WithCapacityHint(s.CapacityHint)(o)
		WithMaxConcurrentDeliveries(s.MaxConcurrentDeliveries)(o)
	}
}
