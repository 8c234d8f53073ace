package workout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petedillo/fitness-api/internal/handler/response"
	workoutuc "github.com/petedillo/fitness-api/internal/usecase/workout"
)

// Handler обрабатывает HTTP-запросы сборки тренировок.
type Handler struct {
	workouts workoutuc.Service
}

// NewHandler создаёт обработчик тренировок.
func NewHandler(workouts workoutuc.Service) *Handler {
	return &Handler{workouts: workouts}
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return false
	}
	return true
}

// Create создаёт тренировку пользователя вместе со списком упражнений.
//
//	@Summary	Create workout with its exercises
//	@Tags		workouts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int				true	"user id"
//	@Param		body		body		CreateRequest	true	"workout"
//	@Success	201			{object}	Response
//	@Failure	400,404,409	{object}	response.ErrorBody
//	@Router		/users/{id}/workouts [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := response.PathID(c, "id")
	if !ok {
		return
	}
	var req CreateRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.workouts.Create(c.Request.Context(), workoutuc.CreateInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Exercises:   toInputs(req.Exercises),
	})
	if err != nil {
		response.FromError(c, "CreateWorkout", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(w))
}

// ListByUser возвращает тренировки пользователя.
//
//	@Summary	List user workouts
//	@Tags		workouts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path	int	true	"user id"
//	@Success	200		{array}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/users/{id}/workouts [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	items, err := h.workouts.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "GetUserWorkouts", err)
		return
	}
	out := make([]Response, 0, len(items))
	for _, w := range items {
		out = append(out, toResponse(w))
	}
	c.JSON(http.StatusOK, out)
}

// Get возвращает тренировку с раскрытыми упражнениями.
//
//	@Summary	Get workout
//	@Tags		workouts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int	true	"workout id"
//	@Success	200		{object}	Response
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/workouts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	w, err := h.workouts.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "GetWorkoutById", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(w))
}

// Update обновляет тренировку. Переданный список упражнений заменяет прежний целиком.
//
//	@Summary	Update workout (exercises are replaced as a whole)
//	@Tags		workouts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int				true	"workout id"
//	@Param		body		body		UpdateRequest	true	"fields to change"
//	@Success	200			{object}	Response
//	@Failure	400,404,409	{object}	response.ErrorBody
//	@Router		/workouts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}
	var req UpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	w, err := h.workouts.Update(c.Request.Context(), id, workoutuc.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Exercises:   toInputs(req.Exercises),
	})
	if err != nil {
		response.FromError(c, "UpdateWorkout", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(w))
}

// Delete удаляет тренировку вместе с упражнениями и журналом.
//
//	@Summary	Delete workout with its exercises and logs
//	@Tags		workouts
//	@Security	BearerAuth
//	@Param		id	path	int	true	"workout id"
//	@Success	204
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/workouts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.workouts.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "DeleteWorkout", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddExercise добавляет одну запись упражнения в тренировку.
//
//	@Summary	Add exercise to workout
//	@Tags		workout-exercises
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int				true	"workout id"
//	@Param		body		body		ExerciseRequest	true	"entry"
//	@Success	201			{object}	WorkoutExerciseResponse
//	@Failure	400,404,409	{object}	response.ErrorBody
//	@Router		/workouts/{id}/exercises [post]
func (h *Handler) AddExercise(c *gin.Context) {
	workoutID, ok := response.PathID(c, "id")
	if !ok {
		return
	}
	var req ExerciseRequest
	if !bindJSON(c, &req) {
		return
	}

	we, err := h.workouts.AddExercise(c.Request.Context(), workoutID, req.toInput())
	if err != nil {
		response.FromError(c, "AddWorkoutExercise", err)
		return
	}
	c.JSON(http.StatusCreated, toExerciseResponse(we))
}

// UpdateExercise обновляет одну запись упражнения.
//
//	@Summary	Update workout exercise
//	@Tags		workout-exercises
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int						true	"workout exercise id"
//	@Param		body		body		ExercisePatchRequest	true	"fields to change"
//	@Success	200			{object}	WorkoutExerciseResponse
//	@Failure	400,404,409	{object}	response.ErrorBody
//	@Router		/workout-exercises/{id} [put]
func (h *Handler) UpdateExercise(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}
	var req ExercisePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	we, err := h.workouts.UpdateExercise(c.Request.Context(), id, workoutuc.ExercisePatch{
		Sets:        req.Sets,
		Repetitions: req.Repetitions,
		Weight:      req.Weight,
		Order:       req.Order,
	})
	if err != nil {
		response.FromError(c, "UpdateWorkoutExercise", err)
		return
	}
	c.JSON(http.StatusOK, toExerciseResponse(we))
}

// DeleteExercise удаляет одну запись упражнения вместе с её журналом.
//
//	@Summary	Delete workout exercise
//	@Tags		workout-exercises
//	@Security	BearerAuth
//	@Param		id	path	int	true	"workout exercise id"
//	@Success	204
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/workout-exercises/{id} [delete]
func (h *Handler) DeleteExercise(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.workouts.DeleteExercise(c.Request.Context(), id); err != nil {
		response.FromError(c, "DeleteWorkoutExercise", err)
		return
	}
	c.Status(http.StatusNoContent)
}
