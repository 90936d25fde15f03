package broadcast

// Settings holds broadcaster configuration.
// Designed for environment-based loading with core/config.
type Settings struct {
	Name                    string `env:"BROADCAST_NAME" envDefault:"default"`
	CapacityHint            int    `env:"BROADCAST_CAPACITY_HINT" envDefault:"16"`
	BufferSize              int    `env:"BROADCAST_BUFFER_SIZE" envDefault:"0"`
	MaxConcurrentDeliveries int    `env:"BROADCAST_MAX_CONCURRENT_DELIVERIES" envDefault:"0"`
	MetricsNamespace        string `env:"BROADCAST_METRICS_NAMESPACE"`
}

// DefaultSettings returns the same values the env defaults produce.
func DefaultSettings() Settings {
	return Settings{
		Name:         DefaultName,
		CapacityHint: DefaultCapacityHint,
	}
}

// Channel returns the channel new subscriptions should use by default:
// bounded with BufferSize when it is positive, unbounded otherwise.
func (s Settings) Channel() Channel {
	if s.BufferSize > 0 {
		return Bounded(s.BufferSize)
	}
	return Unbounded()
}

// NewFromSettings creates a Broadcaster from settings.
// Additional options override settings values.
func NewFromSettings[T any](s Settings, opts ...Option) *Broadcaster[T] {
	return New[T](append([]Option{WithSettings(s)}, opts...)...)
}
