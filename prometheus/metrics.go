package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fleet_login_total",
			Help: "Total number of login attempts",
		},
	)

	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_auth_errors_total",
			Help: "Total number of authentication and authorization errors",
		},
		[]string{"type"}, // "invalid_credentials", "invalid_token", "forbidden", ...
	)

	WebhookCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fleet_tracking_webhook_total",
			Help: "Total number of tracking webhook deliveries",
		},
	)

	TelemetrySyncCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_telemetry_sync_total",
			Help: "Total number of synchronization calls against the telemetry API",
		},
		[]string{"operation", "outcome"}, // operation: "create_company", ...; outcome: "ok"/"error"
	)

	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fleet_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(WebhookCounter)
	prometheus.MustRegister(TelemetrySyncCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RequestDuration)
}

// RecordAuthError increments the auth error counter for the given type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordTelemetrySync counts one synchronization call against the
// telemetry API
func RecordTelemetrySync(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TelemetrySyncCounter.With(prometheus.Labels{"operation": operation, "outcome": outcome}).Inc()
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware captures request count and duration for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			labels := prometheus.Labels{
				"endpoint": c.Path(),
				"method":   c.Request().Method,
				"status":   status,
			}
			HTTPRequestCounter.With(labels).Inc()
			RequestDuration.With(labels).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
