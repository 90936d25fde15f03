package broadcast

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsSubsystem = "broadcast"
	labelBroadcaster = "broadcaster"
)

// Metrics exposes broadcaster activity as Prometheus collectors.
// One Metrics value may be shared by several broadcasters; series are
// labelled with the broadcaster name (see WithName). A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	subscriptions *prometheus.CounterVec
	delivered     *prometheus.CounterVec
	filtered      *prometheus.CounterVec
	reclaimed     *prometheus.CounterVec
	backpressure  *prometheus.CounterVec
	observers     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      name,
			Help:      help,
		}, []string{labelBroadcaster})
	}

	m := &Metrics{
		subscriptions: counter("subscriptions_total", "Subscriptions accepted."),
		delivered:     counter("delivered_total", "Events delivered to subscriber channels."),
		filtered:      counter("filtered_total", "Events skipped by subscriber filters."),
		reclaimed:     counter("reclaimed_total", "Subscriber slots reclaimed after the consumer left or the broadcaster closed."),
		backpressure:  counter("backpressure_total", "Deliveries that had to wait for a full bounded subscriber."),
		observers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "observers",
			Help:      "Active subscribers.",
		}, []string{labelBroadcaster}),
	}

	if reg != nil {
		var errs []error
		for _, c := range m.collectors() {
			errs = append(errs, reg.Register(c))
		}
		if err := errors.Join(errs...); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// MustNewMetrics is like NewMetrics but panics if registration fails.
func MustNewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m, err := NewMetrics(reg, namespace)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.subscriptions, m.delivered, m.filtered, m.reclaimed, m.backpressure, m.observers,
	}
}

func (m *Metrics) subscribed(name string) {
	if m == nil {
		return
	}
	m.subscriptions.WithLabelValues(name).Inc()
	m.observers.WithLabelValues(name).Inc()
}

func (m *Metrics) reclaim(name string) {
	if m == nil {
		return
	}
	m.reclaimed.WithLabelValues(name).Inc()
	m.observers.WithLabelValues(name).Dec()
}

func (m *Metrics) deliver(name string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.delivered.WithLabelValues(name).Add(float64(n))
}

func (m *Metrics) filter(name string) {
	if m == nil {
		return
	}
	m.filtered.WithLabelValues(name).Inc()
}

func (m *Metrics) stall(name string) {
	if m == nil {
		return
	}
	m.backpressure.WithLabelValues(name).Inc()
}

func (m *Metrics) setObservers(name string, n int) {
	if m == nil {
		return
	}
	m.observers.WithLabelValues(name).Set(float64(n))
}
