package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/petedillo/fitness-api/internal/domain/user"
	"github.com/petedillo/fitness-api/internal/handler/middleware"
	"github.com/petedillo/fitness-api/internal/handler/response"
	useruc "github.com/petedillo/fitness-api/internal/usecase/user"
)

// Handler обрабатывает HTTP-запросы, связанные с пользователями.
type Handler struct {
	users useruc.Service
}

// NewHandler создаёт новый UserHandler.
func NewHandler(users useruc.Service) *Handler {
	return &Handler{users: users}
}

// GetMe возвращает профиль текущего пользователя.
//
//	@Summary	Current user
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200		{object}	UserResponse
//	@Failure	401,404	{object}	response.ErrorBody
//	@Router		/users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "GetMe", err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// List возвращает всех пользователей.
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	UserResponse
//	@Router		/users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "ListUsers", err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// Get возвращает пользователя по id.
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		int	true	"user id"
//	@Success	200		{object}	UserResponse
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "GetUser", err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Update обновляет пользователя.
//
//	@Summary	Update user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		int				true	"user id"
//	@Param		body		body		UpdateRequest	true	"fields to change"
//	@Success	200			{object}	UserResponse
//	@Failure	400,404,409	{object}	response.ErrorBody
//	@Router		/users/{id} [put]
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

	user, err := h.users.Update(c.Request.Context(), id, useruc.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, "UpdateUser", err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete удаляет пользователя вместе с его тренировками и журналом.
//
//	@Summary	Delete user with all workouts and logs
//	@Tags		users
//	@Security	BearerAuth
//	@Param		id	path	int	true	"user id"
//	@Success	204
//	@Failure	400,404	{object}	response.ErrorBody
//	@Router		/users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := response.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "DeleteUser", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// toUserResponse маппит доменную модель в DTO.
func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
