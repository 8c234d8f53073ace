package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petedillo/fitness-api/internal/apperror"
)

// ErrorBody описывает стандартный формат ошибки API.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error отправляет JSON-ответ с ошибкой в едином формате.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, gin.H{
		"error": ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Abort отправляет ошибку и прерывает цепочку обработчиков. Используется в middleware.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// StatusFor возвращает HTTP-статус для класса ошибки.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError переводит ошибку usecase-слоя в ответ.
// op попадает в лог для внутренних ошибок, детали которых клиенту не отдаются.
func FromError(c *gin.Context, op string, err error) {
	appErr := apperror.As(err)
	status := StatusFor(appErr.Kind)
	if status == http.StatusInternalServerError {
		log.Printf("internal error in %s: path=%s err=%v", op, c.Request.URL.Path, err)
		Error(c, status, "internal_error", "internal server error", nil)
		return
	}
	Error(c, status, appErr.Reason, appErr.Message, appErr.Details)
}
