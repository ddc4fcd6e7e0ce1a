package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the console exposes.
type Metrics struct {
	LifecycleTransitions *prometheus.CounterVec // roster transitions by kind (archive, trash, restore, purge, sweep)
	SweepArchived        prometheus.Counter     // employees auto-archived by the contract-expiry sweep
	ComplianceEvals      prometheus.Counter     // dashboard compliance computations
	AdvisorCalls         *prometheus.CounterVec // AI advisory calls by outcome (ok, empty, error)

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		LifecycleTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "roster_lifecycle_transitions_total",
				Help: "Total employee lifecycle transitions by kind",
			},
			[]string{"kind"},
		),
		SweepArchived: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "roster_sweep_archived_total",
				Help: "Employees archived automatically by the contract-expiry sweep",
			},
		),
		ComplianceEvals: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "compliance_evaluations_total",
				Help: "Compliance dashboard computations",
			},
		),
		AdvisorCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advisor_calls_total",
				Help: "Task assignment advisory calls by outcome",
			},
			[]string{"outcome"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// GinMiddleware records request counts and latency per route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}
