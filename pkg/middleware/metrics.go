package middleware

import (
	"net/http"

	"mockgram/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if c.Writer.Status() < http.StatusBadRequest {
			m.SuccessfulRequests.WithLabelValues(path).Inc()
		} else {
			m.BadRequests.WithLabelValues(path).Inc()
		}
	}
}
