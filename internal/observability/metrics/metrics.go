package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module provides the process-wide metrics set.
var Module = fx.Module("observability.metrics",
	fx.Provide(New),
)

// Metrics holds the domain and HTTP collectors.
type Metrics struct {
	AttendanceRecorded prometheus.Counter
	InviteCodesIssued  prometheus.Counter
	InviteRetries      prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		AttendanceRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_attendance_events_recorded_total",
			Help: "Attendance events created by the bulk recorder.",
		}),
		InviteCodesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_invite_codes_issued_total",
			Help: "Invite codes successfully issued.",
		}),
		InviteRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rollcall_invite_code_retries_total",
			Help: "Invite code candidates discarded after a collision.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rollcall_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rollcall_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	prometheus.MustRegister(
		m.AttendanceRecorded,
		m.InviteCodesIssued,
		m.InviteRetries,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
