package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Settlement outcomes recorded by SettlementsTotal.
const (
	OutcomeSettled  = "settled"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Metrics holds the application's Prometheus collectors. All methods are
// safe to call on a nil *Metrics, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	rateTier      *prometheus.CounterVec
	settlements   *prometheus.CounterVec
	upstreamCalls *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewMetrics registers every collector on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		rateTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversion_rate_tier_total",
			Help:      "Conversions by the rate tier that served them.",
		}, []string{"tier"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Order settlement attempts by outcome.",
		}, []string{"outcome"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Outbound calls by service, operation and result.",
		}, []string{"service", "operation", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(m.rateTier, m.settlements, m.upstreamCalls, m.httpRequests, m.httpDuration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RateTierUsed(tier string) {
	if m == nil {
		return
	}
	m.rateTier.WithLabelValues(tier).Inc()
}

func (m *Metrics) Settlement(outcome string) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(outcome).Inc()
}

// UpstreamCall records one outbound call. result is "ok" or the failure class.
func (m *Metrics) UpstreamCall(service, operation, result string) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(service, operation, result).Inc()
}

func (m *Metrics) ObserveHTTP(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
}

// RateTierCounter exposes the tier counter for assertions.
func (m *Metrics) RateTierCounter() *prometheus.CounterVec { return m.rateTier }

// SettlementCounter exposes the settlement counter for assertions.
func (m *Metrics) SettlementCounter() *prometheus.CounterVec { return m.settlements }

// UpstreamCounter exposes the upstream-call counter for assertions.
func (m *Metrics) UpstreamCounter() *prometheus.CounterVec { return m.upstreamCalls }

// HTTPRequestCounter exposes the HTTP request counter for assertions.
func (m *Metrics) HTTPRequestCounter() *prometheus.CounterVec { return m.httpRequests }
