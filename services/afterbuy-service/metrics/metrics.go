// Package metrics holds the Prometheus collectors of the afterbuy service:
//
//	afterbuy_sync_orders_total{stage}
//	afterbuy_sync_runs_total{outcome}
//	afterbuy_upstream_calls_total{operation,outcome}
//	afterbuy_http_requests_total{method,route,status}
//	afterbuy_http_request_duration_seconds{method,route}
//
// plus go_* and process_* runtime metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sync stages
const (
	StageFetched   = "fetched"
	StageStored    = "stored"
	StagePublished = "published"
	StageFailed    = "failed"
)

// Metrics owns a registry so several instances can coexist in tests
type Metrics struct {
	registry      *prometheus.Registry
	syncOrders    *prometheus.CounterVec
	syncRuns      *prometheus.CounterVec
	upstreamCalls *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		syncOrders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afterbuy_sync_orders_total",
				Help: "Orders handled by sold item sync passes, by stage",
			},
			[]string{"stage"},
		),
		syncRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afterbuy_sync_runs_total",
				Help: "Sold item sync passes, by outcome",
			},
			[]string{"outcome"},
		),
		upstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afterbuy_upstream_calls_total",
				Help: "Calls to the Afterbuy XML interface, by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "afterbuy_http_requests_total",
				Help: "Gateway HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "afterbuy_http_request_duration_seconds",
				Help:    "Gateway HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		m.syncOrders,
		m.syncRuns,
		m.upstreamCalls,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the registry for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AddSyncOrders counts n orders at stage. A nil receiver is a no-op.
func (m *Metrics) AddSyncOrders(stage string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.syncOrders.WithLabelValues(stage).Add(float64(n))
}

// IncSyncRun counts a finished sync pass
func (m *Metrics) IncSyncRun(outcome string) {
	if m == nil {
		return
	}
	m.syncRuns.WithLabelValues(outcome).Inc()
}

// IncUpstreamCall counts one Afterbuy call
func (m *Metrics) IncUpstreamCall(operation, outcome string) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(operation, outcome).Inc()
}

// ObserveHTTP records a served request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
