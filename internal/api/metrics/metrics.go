// Package metrics defines and registers all custom Prometheus metrics for the
// storefront dashboard API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import
// through promauto and exposed by the /metrics route.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/storefront/dashboard-api/internal/core/domain"
)

const namespace = "dashboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication operations.
// Labels:
//   - operation: "register", "login", "refresh", "change_password"
//   - result: "ok" or a short failure reason ("invalid_credentials", "validation", "expired", ...)
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// GuardRejectionsTotal counts requests short-circuited by the access guard.
// Label:
//   - reason: "missing_header", "invalid_header", "invalid_token", "expired", "forbidden"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the access guard.",
	},
	[]string{"reason"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts committed orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderRevenueCents sums the frozen totals of committed orders, in cents.
var OrderRevenueCents = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_revenue_cents_total",
		Help:      "Total revenue of created orders in cents.",
	},
)

// OrderRecorder feeds the order counters from the analytics consumer.
type OrderRecorder struct{}

func (OrderRecorder) OrderPlaced(revenue domain.Money) {
	OrdersCreatedTotal.Inc()
	OrderRevenueCents.Add(float64(revenue.Cents()))
}

// OrderEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var OrderEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "order_events_queue_depth",
		Help:      "Current number of order events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// TopProductsCacheTotal counts cache-aside lookups of the top products ranking.
// Label:
//   - result: "hit" or "miss"
var TopProductsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "top_products_cache_total",
		Help:      "Total number of top products cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method, route (the echo path template), code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "code"},
)

// Middleware records HTTPRequestDuration for every request.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			code := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok && !c.Response().Committed {
				code = he.Code
			}
			HTTPRequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(code)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
