// Package metrics collects Prometheus metrics for outbound calls and token
// refreshes. A CLI process is short-lived, so the registry is dumped to a
// node_exporter textfile rather than scraped.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the metrics surface used by the remote client and services.
type Recorder interface {
	RecordRefreshSuccess()
	RecordRefreshFailure(reason string)
	RecordHTTPStatus(endpoint string, statusCode int)
	RecordRequestLatency(endpoint string, d time.Duration)
	RecordRateLimitWait(d time.Duration)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	refreshSuccess prometheus.Counter
	refreshFail    *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	rateLimitWait  prometheus.Histogram
}

// NewCollector builds a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		refreshSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stayreal_refresh_success_total",
			Help: "Token refresh exchanges that persisted new credentials.",
		}),
		refreshFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stayreal_refresh_fail_total",
			Help: "Token refresh exchanges that failed, by reason.",
		}, []string{"reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stayreal_http_status_total",
			Help: "Responses from the remote service by endpoint and status code.",
		}, []string{"endpoint", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stayreal_request_latency_seconds",
			Help:    "Round-trip latency of requests to the remote service.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		rateLimitWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stayreal_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the client-side rate limiter.",
			Buckets: []float64{0, .01, .05, .1, .25, .5, 1, 2, 5},
		}),
	}

	reg.MustRegister(
		c.refreshSuccess,
		c.refreshFail,
		c.httpStatus,
		c.latency,
		c.rateLimitWait,
	)

	return c
}

// RecordRefreshSuccess counts a successful refresh.
func (c *Collector) RecordRefreshSuccess() { c.refreshSuccess.Inc() }

// RecordRefreshFailure counts a failed refresh under reason.
func (c *Collector) RecordRefreshFailure(reason string) {
	c.refreshFail.WithLabelValues(reason).Inc()
}

// RecordHTTPStatus counts one response.
func (c *Collector) RecordHTTPStatus(endpoint string, statusCode int) {
	c.httpStatus.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observes one round trip.
func (c *Collector) RecordRequestLatency(endpoint string, d time.Duration) {
	c.latency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordRateLimitWait observes time spent blocked on the limiter.
func (c *Collector) RecordRateLimitWait(d time.Duration) {
	c.rateLimitWait.Observe(d.Seconds())
}

// WriteTextfile dumps everything gathered by g to path in the text
// exposition format, replacing the file atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordRefreshSuccess()                      {}
func (Nop) RecordRefreshFailure(string)                {}
func (Nop) RecordHTTPStatus(string, int)               {}
func (Nop) RecordRequestLatency(string, time.Duration) {}
func (Nop) RecordRateLimitWait(time.Duration)          {}

// Compile-time assertions.
var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = Nop{}
)
