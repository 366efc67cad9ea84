package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// requests by method, route path, and status code
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// latency omits status to keep histogram cardinality down
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// lesson generations by mode and outcome (generated, mock_fallback, refine_fallback, unchanged, error)
	generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_generations_total",
			Help: "Lesson generations by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	// buckets sized for multi-second model calls
	generationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lesson_generation_duration_seconds",
			Help:    "Duration of lesson generations in seconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 45, 60, 90},
		},
		[]string{"mode"},
	)

	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_admissions_total",
			Help: "Admission decisions by tier and result.",
		},
		[]string{"tier", "result"},
	)

	// tier resolutions by source (cache_hit, lookup, lookup_error)
	tierLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tier_lookups_total",
			Help: "Tier resolutions by source.",
		},
		[]string{"result"},
	)

	modelFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_fallbacks_total",
			Help: "Retries on the secondary model after the primary was unavailable.",
		},
		[]string{"from", "to"},
	)

	webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stripe_webhook_events_total",
			Help: "Verified Stripe webhook events by type.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequests,
		httpLatency,
		httpInflight,
		generations,
		generationLatency,
		admissions,
		tierLookups,
		modelFallbacks,
		webhookEvents,
	)
}

// instruments requests with Prometheus. the path label is the registered route,
// falling back to the raw path when nothing matched
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequests.WithLabelValues(method, path, status).Inc()
		httpLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordGeneration(mode, outcome string, duration time.Duration) {
	generations.WithLabelValues(mode, outcome).Inc()
	generationLatency.WithLabelValues(mode).Observe(duration.Seconds())
}

func RecordAdmission(tier string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}

	admissions.WithLabelValues(tier, result).Inc()
}

func RecordTierLookup(result string) {
	tierLookups.WithLabelValues(result).Inc()
}

func RecordModelFallback(from, to string) {
	modelFallbacks.WithLabelValues(from, to).Inc()
}

func RecordWebhookEvent(eventType string) {
	webhookEvents.WithLabelValues(eventType).Inc()
}
