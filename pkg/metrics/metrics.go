package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnmatchedPath labels requests that did not match any registered route.
const UnmatchedPath = "unmatched"

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ImportRunCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_import_runs_total",
			Help: "Total number of recipe import runs by outcome",
		},
		[]string{"status"},
	)

	ImportedRecipeCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_import_recipes_total",
			Help: "Total number of recipes persisted by the importer",
		},
	)

	// AuthEventCounter counts signup and login outcomes.
	AuthEventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Total number of authentication events",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCounter,
		RequestDurationHistogram,
		ImportRunCounter,
		ImportedRecipeCounter,
		AuthEventCounter,
	)
}

func RecordImport(status string, persisted int) {
	ImportRunCounter.WithLabelValues(status).Inc()
	ImportedRecipeCounter.Add(float64(persisted))
}

func RecordAuthEvent(event string) {
	AuthEventCounter.WithLabelValues(event).Inc()
}

// Middleware records request count and latency per route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		path := c.Route().Path
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
				// no route matched; the route left on the ctx is this middleware's catch-all
				if fe.Code == fiber.StatusNotFound {
					path = UnmatchedPath
				}
			}
		}
		method := c.Method()

		RequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		RequestDurationHistogram.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler exposes the default registry for scraping.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
