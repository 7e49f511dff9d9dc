// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

// Recorder is what handlers and services report to.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordUpstream(operation, outcome string, duration time.Duration)
	RecordDegraded(operation string)
}

type Collector struct {
	requests        *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	degraded        *prometheus.CounterVec
}

// NewCollector registers the StyleSense metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylesense_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stylesense_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylesense_upstream_calls_total",
			Help: "Calls to the LLM, image generation, trends and speech services by operation and outcome.",
		}, []string{"operation", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stylesense_upstream_call_duration_seconds",
			Help:    "Upstream call latency in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		}, []string{"operation"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stylesense_degraded_results_total",
			Help: "Results replaced by a fallback value.",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.upstreamCalls,
		c.upstreamLatency,
		c.degraded,
	)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordUpstream(operation, outcome string, duration time.Duration) {
	c.upstreamCalls.WithLabelValues(operation, outcome).Inc()
	c.upstreamLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

func (c *Collector) RecordDegraded(operation string) {
	c.degraded.WithLabelValues(operation).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where no registry is wired, e.g. the vision service tests.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordUpstream(string, string, time.Duration)     {}
func (Nop) RecordDegraded(string)                            {}
