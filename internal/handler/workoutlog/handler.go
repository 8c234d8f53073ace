package workoutlog

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/petedillo/fitness-api/internal/handler/response"
	logsuc "github.com/petedillo/fitness-api/internal/usecase/workoutlog"
)

// Handler обрабатывает HTTP-запросы журнала подходов.
type Handler struct {
	logs logsuc.Service
}

// NewHandler создаёт обработчик журнала.
func NewHandler(logs logsuc.Service) *Handler {
	return &Handler{logs: logs}
}

// Create записывает выполненный подход.
//
//	@Summary	Log a completed set
//	@Tags		logs
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CreateRequest	true	"log entry"
//	@Success	201		{object}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/logs [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	var ts time.Time
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}
	l, err := h.logs.Create(c.Request.Context(), logsuc.CreateInput{
		UserID:            req.UserID,
		WorkoutID:         req.WorkoutID,
		WorkoutExerciseID: req.WorkoutExerciseID,
		SetNumber:         req.SetNumber,
		RepsCompleted:     req.RepsCompleted,
		WeightUsed:        req.WeightUsed,
		Notes:             req.Notes,
		Timestamp:         ts,
	})
	if err != nil {
		response.FromError(c, "CreateLog", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(l))
}

// Get возвращает запись журнала.
//
//	@Summary	Get log entry
//	@Tags		logs
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int	true	"log id"
//	@Success	200		{object}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/logs/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	l, err := h.logs.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "GetLog", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(l))
}

// ListByWorkout возвращает журнал тренировки по времени.
//
//	@Summary	List workout logs
//	@Tags		logs
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int	true	"workout id"
//	@Success	200		{array}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/workouts/{id}/logs [get]
func (h *Handler) ListByWorkout(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	items, err := h.logs.ListByWorkout(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "ListWorkoutLogs", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// ListByUser возвращает журнал пользователя по времени.
//
//	@Summary	List user logs
//	@Tags		logs
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int	true	"user id"
//	@Success	200		{array}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/users/{id}/logs [get]
func (h *Handler) ListByUser(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	items, err := h.logs.ListByUser(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "ListUserLogs", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// Update обновляет запись журнала.
//
//	@Summary	Update log entry
//	@Tags		logs
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int				true	"log id"
//	@Param		body	body		UpdateRequest	true	"fields to change"
//	@Success	200		{object}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/logs/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	l, err := h.logs.Update(c.Request.Context(), id, logsuc.Patch{
		SetNumber:     req.SetNumber,
		RepsCompleted: req.RepsCompleted,
		WeightUsed:    req.WeightUsed,
		Notes:         req.Notes,
		Timestamp:     req.Timestamp,
	})
	if err != nil {
		response.FromError(c, "UpdateLog", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(l))
}

// Delete удаляет запись журнала.
//
//	@Summary	Delete log entry
//	@Tags		logs
//	@Security	BearerAuth
//	@Param		id	path	int	true	"log id"
//	@Success	204
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/logs/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.logs.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "DeleteLog", err)
		return
	}
	c.Status(http.StatusNoContent)
}
