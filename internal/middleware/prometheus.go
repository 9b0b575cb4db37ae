package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mintfeed/mintfeed/internal/metrics"
)

// Metrics records request counts and latency for Prometheus. Path labels
// use the route template (":id" stays a template) to keep cardinality low.
func Metrics() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(startTime).Seconds())
	}
}
