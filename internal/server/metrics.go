package server

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zuschat_messages_total",
		Help: "Chat messages processed, labelled by resolved intent.",
	}, []string{"intent"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zuschat_http_requests_total",
		Help: "HTTP requests served, labelled by method, route and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zuschat_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	wsConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zuschat_ws_connections",
		Help: "Open websocket connections.",
	})
)

// requestMetrics records counts and latency for the API routes. The probe
// endpoints stay out of the numbers.
func (s *Server) requestMetrics(c *fiber.Ctx) error {
	path := c.Path()
	if path == "/metrics" || path == "/health" {
		return c.Next()
	}

	start := time.Now()
	err := c.Next()

	route := c.Route().Path
	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	return err
}
