// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by middleware and handlers.
type Recorder interface {
	RecordRequest(method string, statusCode int, duration time.Duration)
	RecordSessionSaved()
	RecordSessionRejected(reason string)
	RecordLogin(success bool)
	RecordRateLimited()
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	requests        *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	sessionsSaved   prometheus.Counter
	sessionRejected *prometheus.CounterVec
	logins          *prometheus.CounterVec
	rateLimited     prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_http_requests_total",
			Help: "HTTP responses by method and status code",
		}, []string{"method", "status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timesheet_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		sessionsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timesheet_sessions_saved_total",
			Help: "Sessions created or updated",
		}),
		sessionRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_sessions_rejected_total",
			Help: "Session saves rejected, by error code",
		}, []string{"reason"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timesheet_rate_limited_total",
			Help: "Requests rejected by the per-user rate limit",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.sessionsSaved,
		c.sessionRejected,
		c.logins,
		c.rateLimited,
	)

	return c
}

// RecordRequest records one HTTP response.
func (c *Collector) RecordRequest(method string, statusCode int, duration time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestLatency.Observe(duration.Seconds())
}

// RecordSessionSaved records a created or updated session.
func (c *Collector) RecordSessionSaved() {
	c.sessionsSaved.Inc()
}

// RecordSessionRejected records a refused session save.
func (c *Collector) RecordSessionRejected(reason string) {
	c.sessionRejected.WithLabelValues(reason).Inc()
}

// RecordLogin records a login attempt.
func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// RecordRateLimited records a request refused by the rate limiter.
func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every metric.
type Nop struct{}

func (Nop) RecordRequest(string, int, time.Duration) {}
func (Nop) RecordSessionSaved()                      {}
func (Nop) RecordSessionRejected(string)             {}
func (Nop) RecordLogin(bool)                         {}
func (Nop) RecordRateLimited()                       {}
