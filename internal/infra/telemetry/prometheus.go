package telemetry

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"circbuf/internal/domain"
	"circbuf/pkg/ring"
)

// PrometheusObserver exports the activity of one buffer as Prometheus
// metrics.
type PrometheusObserver struct {
	pushes    prometheus.Counter
	evictions prometheus.Counter
	drained   *prometheus.CounterVec
	occupancy prometheus.Gauge
	capacity  prometheus.Gauge
}

// NewPrometheusObserver registers the buffer metrics for one named buffer.
// The name is attached as the "buffer" constant label. A nil registerer
// means the default registerer. Registering the same buffer name twice on
// one registerer is a FAILED_PRECONDITION error, and nothing is left
// registered by the failed call.
func NewPrometheusObserver(registerer prometheus.Registerer, namespace, subsystem, name string) (*PrometheusObserver, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"buffer": name}

	o := &PrometheusObserver{
		pushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "pushes_total",
			Help:        "Total number of values pushed into the buffer",
			ConstLabels: labels,
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "evictions_total",
			Help:        "Total number of values overwritten because the buffer was full",
			ConstLabels: labels,
		}),
		drained: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   subsystem,
				Name:        "drained_total",
				Help:        "Total number of values drained from the buffer",
				ConstLabels: labels,
			},
			[]string{"path"},
		),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "occupancy",
			Help:        "Current number of occupied slots",
			ConstLabels: labels,
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "capacity",
			Help:        "Fixed number of slots",
			ConstLabels: labels,
		}),
	}

	collectors := o.collectors()
	for i, c := range collectors {
		if err := registerer.Register(c); err != nil {
			for _, done := range collectors[:i] {
				registerer.Unregister(done)
			}
			return nil, registerError(name, err)
		}
	}
	return o, nil
}

// Unregister removes the buffer metrics from registerer.
func (p *PrometheusObserver) Unregister(registerer prometheus.Registerer) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	for _, c := range p.collectors() {
		registerer.Unregister(c)
	}
}

func (p *PrometheusObserver) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.pushes, p.evictions, p.drained, p.occupancy, p.capacity}
}

func registerError(name string, err error) error {
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return domain.E(domain.CodeFailedPrecond, "register metrics",
			fmt.Sprintf("metrics for buffer %q already registered", name), err)
	}
	return domain.E(domain.CodeInvalidArgument, "register metrics", "", err)
}

// ObservePush counts a push and, when it overwrote a value, an eviction.
func (p *PrometheusObserver) ObservePush(evicted bool) {
	p.pushes.Inc()
	if evicted {
		p.evictions.Inc()
	}
}

// ObserveDrain counts moved values under the drain path label.
func (p *PrometheusObserver) ObserveDrain(path ring.DrainPath, moved int) {
	p.drained.WithLabelValues(string(path)).Add(float64(moved))
}

// ObserveOccupancy sets the occupancy and capacity gauges.
func (p *PrometheusObserver) ObserveOccupancy(length, capacity int) {
	p.occupancy.Set(float64(length))
	p.capacity.Set(float64(capacity))
}

var _ ring.Observer = (*PrometheusObserver)(nil)
