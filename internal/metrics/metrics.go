// Package metrics exposes Prometheus counters for the to-do server.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaharia-lab/todo/internal/eventbus"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry
	events   *prometheus.CounterVec
	requests *prometheus.CounterVec
}

// New registers the to-do collectors plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "events_total",
			Help:      "To-do lifecycle events by type.",
		}, []string{"type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
	}
	reg.MustRegister(
		m.events,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Listener returns an event bus listener counting events by type.
func (m *Metrics) Listener() eventbus.Listener {
	return func(e eventbus.Event) {
		m.events.WithLabelValues(e.Type).Inc()
	}
}

// DropCounter reports events discarded by a full event bus buffer.
type DropCounter interface {
	Dropped() uint64
}

// RegisterDropped exposes src as todo_events_dropped_total. Call it once per bus.
func (m *Metrics) RegisterDropped(src DropCounter) {
	m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "events_dropped_total",
		Help:      "Events discarded because the event bus buffer was full.",
	}, func() float64 { return float64(src.Dropped()) }))
}

// ObserveRequest counts one served HTTP request.
func (m *Metrics) ObserveRequest(method string, status int) {
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
