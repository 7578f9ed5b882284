package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	registry       *prometheus.Registry
	requestCount   *prometheus.CounterVec
	uploadsTotal   prometheus.Counter
	deletesTotal   prometheus.Counter
	uploadDuration prometheus.Histogram
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		uploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipe_uploads_total",
			Help: "Total number of recipe uploads accepted.",
		}),
		deletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recipe_deletes_total",
			Help: "Total number of recipe deletions.",
		}),
		uploadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recipe_upload_duration_seconds",
			Help:    "Duration of recipe uploads including blob storage writes.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.requestCount, m.uploadsTotal, m.deletesTotal, m.uploadDuration)
	return m
}

// IncUpload increments the uploads counter.
func (m *Metrics) IncUpload() { m.uploadsTotal.Inc() }

// IncDelete increments the deletes counter.
func (m *Metrics) IncDelete() { m.deletesTotal.Inc() }

// ObserveUploadSeconds records an upload duration.
func (m *Metrics) ObserveUploadSeconds(v float64) { m.uploadDuration.Observe(v) }

// RequestCounter returns middleware counting requests by method/path/status.
// The registered route pattern is used so path cardinality stays bounded.
func (m *Metrics) RequestCounter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestCount.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
