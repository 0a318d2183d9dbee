// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts handled requests by route pattern and status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// APIRequestDuration observes request latency by route pattern.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewit_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route"},
	)

	// APIActiveRequests tracks in-flight requests.
	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reviewit_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// NotificationsCreated counts stored notifications by type.
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewit_notifications_created_total",
			Help: "Total number of notifications created",
		},
		[]string{"type"},
	)

	// NotificationsSuppressed counts self-interactions that produced no notification.
	NotificationsSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewit_notifications_suppressed_total",
			Help: "Total number of self-notifications skipped",
		},
	)

	// ReactionTransitions counts reaction toggles by resulting action.
	ReactionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewit_reaction_transitions_total",
			Help: "Total number of reaction toggles by action",
		},
		[]string{"action"},
	)

	// WSConnections tracks open realtime connections.
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reviewit_websocket_connections",
			Help: "Number of open notification websocket connections",
		},
	)

	// WSMessagesSent counts messages pushed to websocket clients.
	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewit_websocket_messages_sent_total",
			Help: "Total number of websocket messages queued for clients",
		},
	)

	// LoginFailures counts rejected login attempts.
	LoginFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviewit_login_failures_total",
			Help: "Total number of failed logins",
		},
	)
)

// Handler returns the Prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count, latency and in-flight gauge. Routes are
// labelled by their chi pattern so path parameters don't explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		APIActiveRequests.Inc()
		defer APIActiveRequests.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		APIRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		APIRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
