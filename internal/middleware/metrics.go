package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"payment/internal/metrics"
)

// CountAttempt increments counter for every request reaching it, before any
// later handler in the chain has a chance to reject the request.
func CountAttempt(counter prometheus.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		counter.Inc()
		c.Next()
	}
}

// RequestMetrics records request counts and latency per route.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestLatency.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
