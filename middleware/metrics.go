package middleware

import (
	"context"
	"time"

	aws_pkg "github.com/hongaldhruv-del/SalesSavvy/pkg/aws"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request count, latency and error counts to
// CloudWatch off the request path.
func MetricsMiddleware(metrics aws_pkg.MetricsRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || !metrics.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		// FullPath keeps the dimension cardinality bounded.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dims := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    path,
			"Status":  statusClass(status),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = metrics.RecordCount(ctx, aws_pkg.MetricHTTPRequests, dims)
			_ = metrics.RecordLatency(ctx, aws_pkg.MetricHTTPLatency, duration, dims)
			if status >= 400 {
				_ = metrics.RecordCount(ctx, aws_pkg.MetricHTTPErrors, dims)
				if status >= 500 {
					_ = metrics.RecordCount(ctx, aws_pkg.MetricHTTP5xx, dims)
				} else {
					_ = metrics.RecordCount(ctx, aws_pkg.MetricHTTP4xx, dims)
				}
			}
		}()
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "unknown"
	}
}
