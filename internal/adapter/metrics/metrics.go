// Package metrics exposes ledger telemetry as Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"mapchain-escrow/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "escrow"

// Collector implements ports.MetricsRecorder on a private registry.
type Collector struct {
	registry *prometheus.Registry

	transitions       *prometheus.CounterVec
	transitionLatency *prometheus.HistogramVec
	custodianCalls    *prometheus.CounterVec
	custodianLatency  *prometheus.HistogramVec
	expiries          *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

// NewCollector creates and registers all collectors.
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Ledger operations by operation and outcome (success or error code)",
		},
		[]string{"operation", "outcome"},
	)
	c.transitionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transition_duration_seconds",
			Help:      "Time taken by a ledger operation, custodian calls included",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		},
		[]string{"operation"},
	)
	c.custodianCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "custodian",
			Name:      "calls_total",
			Help:      "Payment custodian instructions by method and outcome",
		},
		[]string{"method", "outcome"},
	)
	c.custodianLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "custodian",
			Name:      "call_duration_seconds",
			Help:      "Payment custodian round trip time",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method"},
	)
	c.expiries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "expired_total",
			Help:      "Unaccepted escrows processed by the deadline job",
		},
		[]string{"outcome"},
	)
	c.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)
	c.httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	c.registry.MustRegister(
		c.transitions, c.transitionLatency,
		c.custodianCalls, c.custodianLatency,
		c.expiries,
		c.httpRequests, c.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) ObserveTransition(op domain.Operation, outcome string, elapsed time.Duration) {
	c.transitions.WithLabelValues(string(op), outcome).Inc()
	c.transitionLatency.WithLabelValues(string(op)).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveCustodianCall(method, outcome string, elapsed time.Duration) {
	c.custodianCalls.WithLabelValues(method, outcome).Inc()
	c.custodianLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveExpiry(outcome string) {
	c.expiries.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one served request. route is the matched route
// template, never the raw path.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
