// Package metrics adds Prometheus instrumentation to res handlers.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mdigger/res"
)

// Path describes the path of the metrics handler mounted by Register.
var Path = "/metrics"

// Collector holds the request metrics of a server.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	registry *prometheus.Registry
}

// New returns an initialized Collector registered in its own registry.
func New() *Collector {
	m := &Collector{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request processing time.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// Wrap returns a handler that counts the requests processed by h. The pattern
// is used as the value of the "path" label, so the metrics are aggregated by
// route and not by a particular URL:
//	mux.Handle("GET", "/user/:id", m.Wrap("/user/:id", getUser))
func (m *Collector) Wrap(pattern string, h res.Handler) res.Handler {
	return func(c *res.Context) error {
		started := time.Now()
		err := h(c)
		status := c.Code()
		if err != nil {
			status = res.ErrorStatus(err)
		}
		if status == 0 {
			// the mux responds with No Content when the handler stays silent
			status = 204
		}
		m.requests.WithLabelValues(
			c.Request.Method, pattern, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(
			c.Request.Method, pattern).Observe(time.Since(started).Seconds())
		return err
	}
}

// Register mounts the metrics handler on the server at Path.
func (m *Collector) Register(mux *res.ServeMux) {
	mux.Handle("GET", Path, promhttp.HandlerFor(
		m.registry, promhttp.HandlerOpts{}))
}
