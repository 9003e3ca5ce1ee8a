package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPCollector records request metrics of the server.
type HTTPCollector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	replays  *prometheus.CounterVec
}

// NewHTTPCollector creates the collector and registers it with reg.
func NewHTTPCollector(reg prometheus.Registerer) *HTTPCollector {
	c := &HTTPCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldkeeper",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fieldkeeper",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldkeeper",
			Subsystem: "http",
			Name:      "idempotent_replays_total",
			Help:      "Mutations acknowledged from the idempotency log",
		}, []string{"route"}),
	}
	reg.MustRegister(c.requests, c.duration, c.replays)
	return c
}

// Observe records one finished request.
func (c *HTTPCollector) Observe(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Replayed records a repeated idempotency key.
func (c *HTTPCollector) Replayed(route string) {
	c.replays.WithLabelValues(route).Inc()
}

// Middleware records every request passing through next. The route label is
// the ServeMux pattern that matched, so path parameters do not explode cardinality.
func (c *HTTPCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		c.Observe(r.Method, r.Pattern, sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
