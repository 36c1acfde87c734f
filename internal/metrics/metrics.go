package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for refresh cycles.
const (
	OutcomeRendered         = "rendered"
	OutcomeFetchError       = "fetch_error"
	OutcomeParseError       = "parse_error"
	OutcomeOriginRestricted = "origin_restricted"
)

// Recorder owns a private Prometheus registry so tests and multiple servers
// in one process do not collide. A nil Recorder is a no-op.
type Recorder struct {
	registry        *prometheus.Registry
	refreshes       *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	staleDropped    prometheus.Counter
	subscribers     prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "powerboard",
			Name:      "refreshes_total",
			Help:      "Fetch and render cycles by outcome.",
		}, []string{"outcome"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "powerboard",
			Name:      "refresh_duration_seconds",
			Help:      "Time spent fetching and rendering a snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		staleDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "powerboard",
			Name:      "stale_refreshes_total",
			Help:      "Refresh results discarded because a newer refresh had already committed.",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "powerboard",
			Name:      "live_subscribers",
			Help:      "Connected websocket subscribers.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "powerboard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "powerboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		r.refreshes,
		r.refreshDuration,
		r.staleDropped,
		r.subscribers,
		r.httpRequests,
		r.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) RecordRefresh(outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.refreshes.WithLabelValues(outcome).Inc()
	r.refreshDuration.Observe(duration.Seconds())
}

func (r *Recorder) RecordStale() {
	if r == nil {
		return
	}
	r.staleDropped.Inc()
}

func (r *Recorder) SubscriberAdded() {
	if r == nil {
		return
	}
	r.subscribers.Inc()
}

func (r *Recorder) SubscriberRemoved() {
	if r == nil {
		return
	}
	r.subscribers.Dec()
}

func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
