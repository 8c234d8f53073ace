package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает health check запросы
type Handler struct {
	store   Pinger
	driver  string
	appEnv  string
	timeout time.Duration
}

// NewHandler создает новый экземпляр health handler
func NewHandler(store Pinger, driver, appEnv string) *Handler {
	return &Handler{
		store:   store,
		driver:  driver,
		appEnv:  appEnv,
		timeout: 5 * time.Second,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
	Message string `json:"message,omitempty"`
}

// Health проверяет работоспособность сервера
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Message: "server is running",
	})
}

// HealthDB проверяет подключение к хранилищу
//
//	@Summary	Storage readiness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/health/db [get]
func (h *Handler) HealthDB(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Storage: h.driver,
			Message: "storage is not initialized",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		// В development показываем детали ошибки
		message := "storage is unavailable"
		if h.appEnv != "production" {
			message = "storage is unavailable: " + err.Error()
		}

		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:  "error",
			Storage: h.driver,
			Message: message,
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Storage: h.driver,
		Message: "storage is reachable",
	})
}
