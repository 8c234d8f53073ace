package exercise

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petedillo/fitness-api/internal/handler/response"
	exerciseuc "github.com/petedillo/fitness-api/internal/usecase/exercise"
)

// Handler обрабатывает HTTP-запросы каталога упражнений.
type Handler struct {
	exercises exerciseuc.Service
}

// NewHandler создаёт обработчик каталога упражнений.
func NewHandler(exercises exerciseuc.Service) *Handler {
	return &Handler{exercises: exercises}
}

// Create создаёт упражнение.
//
//	@Summary	Create exercise
//	@Tags		exercises
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CreateRequest	true	"exercise"
//	@Success	201		{object}	Response
//	@Failure	400,409	{object}	response.ErrorBody
//	@Router		/exercises [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	e, err := h.exercises.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.FromError(c, "CreateExercise", err)
		return
	}
	c.JSON(http.StatusCreated, ToResponse(e))
}

// List возвращает каталог упражнений.
//
//	@Summary	List exercises
//	@Tags		exercises
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	Response
//	@Router		/exercises [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.exercises.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "ListExercises", err)
		return
	}

	out := make([]Response, 0, len(items))
	for _, e := range items {
		out = append(out, ToResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

// Get возвращает упражнение по id.
//
//	@Summary	Get exercise
//	@Tags		exercises
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int	true	"exercise id"
//	@Success	200		{object}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/exercises/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	e, err := h.exercises.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "GetExercise", err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(e))
}

// Update обновляет упражнение.
//
//	@Summary	Update exercise
//	@Tags		exercises
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int				true	"exercise id"
//	@Param		body		body		UpdateRequest	true	"fields to change"
//	@Success	200			{object}	Response
//	@Failure	400,404,409	{object}	response.ErrorBody
//	@Router		/exercises/{id} [put]
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

	e, err := h.exercises.Update(c.Request.Context(), id, exerciseuc.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.FromError(c, "UpdateExercise", err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(e))
}

// Delete удаляет упражнение, если оно не используется ни в одной тренировке.
//
//	@Summary	Delete exercise
//	@Tags		exercises
//	@Security	BearerAuth
//	@Param		id	path	int	true	"exercise id"
//	@Success	204
//	@Failure	400,404,409	{object}	response.ErrorBody
//	@Router		/exercises/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.exercises.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "DeleteExercise", err)
		return
	}
	c.Status(http.StatusNoContent)
}
