package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerStructured логирует каждый запрос одной строкой вместе с request id.
func LoggerStructured() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Начало запроса
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Обрабатываем запрос
		c.Next()

		latency := time.Since(start)
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Printf("[%s] %s %s %d %v %s request_id=%s %s",
			c.Request.Method,
			path,
			c.Request.Proto,
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.GetString(ContextRequestIDKey),
			errorMessage,
		)
	}
}
