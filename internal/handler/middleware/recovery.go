package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petedillo/fitness-api/internal/handler/response"
)

// Recovery перехватывает панику обработчика и отвечает 500 в едином формате ошибок.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[PANIC] %s %s from %s request_id=%s: %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.ClientIP(),
			c.GetString(ContextRequestIDKey),
			recovered,
		)

		// В production режиме не показываем детали ошибки
		message := "internal server error"
		if gin.Mode() == gin.DebugMode {
			message = fmt.Sprintf("%v", recovered)
		}
		response.Abort(c, http.StatusInternalServerError, "internal_error", message)
	})
}
