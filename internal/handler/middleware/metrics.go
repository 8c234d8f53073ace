package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petedillo/fitness-api/internal/observability"
)

// Metrics учитывает запрос в Prometheus по шаблону маршрута, чтобы id не раздували кардинальность.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observability.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
