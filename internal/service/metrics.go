package service

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-gonic/gin"
)

// meterRequests returns a middleware that counts requests and records their duration, labeled
// by method, route and status.
func meterRequests(set *metrics.Set) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := fmt.Sprintf(`{method=%q,path=%q,status="%d"}`, c.Request.Method, route, c.Writer.Status())
		set.GetOrCreateCounter("http_requests_total" + labels).Inc()
		set.GetOrCreateHistogram("http_request_duration_seconds" + labels).UpdateDuration(start)
	}
}

// writeMetrics returns a handler exposing the set and the process metrics in Prometheus text
// format.
func writeMetrics(set *metrics.Set) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		set.WritePrometheus(c.Writer)
		metrics.WriteProcessMetrics(c.Writer)
	}
}
