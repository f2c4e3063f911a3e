package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sahilchouksey/course-catalog/model"
)

var (
	// HTTP request metrics, labelled by route pattern so ids do not
	// explode label cardinality
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// Catalog metrics, refreshed by the catalog stats cron job
	catalogCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_courses",
			Help: "Number of courses in the catalog",
		},
	)

	catalogFeaturedCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_featured_courses",
			Help: "Number of featured courses in the catalog",
		},
	)

	catalogCategories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_categories",
			Help: "Number of distinct course categories",
		},
	)
)

// Middleware records request count, latency and in-flight requests.
// Errors returned by the chain are rendered here so the recorded status
// is the one the client receives.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		duration := time.Since(start).Seconds()

		route := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		httpRequestsTotal.WithLabelValues(c.Method(), route, status).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route, status).Observe(duration)
		return nil
	}
}

// Handler serves the Prometheus metrics endpoint
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// UpdateCatalogStats publishes the latest catalog counts
func UpdateCatalogStats(stats *model.CatalogStats) {
	catalogCourses.Set(float64(stats.TotalCourses))
	catalogFeaturedCourses.Set(float64(stats.FeaturedCourses))
	catalogCategories.Set(float64(stats.Categories))
}
