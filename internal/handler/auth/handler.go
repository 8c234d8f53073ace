package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/petedillo/fitness-api/internal/domain/user"
	"github.com/petedillo/fitness-api/internal/handler/response"
	authuc "github.com/petedillo/fitness-api/internal/usecase/auth"
)

// Handler обрабатывает HTTP-запросы, связанные с аутентификацией.
type Handler struct {
	auth authuc.Service
}

// NewHandler создаёт новый AuthHandler.
func NewHandler(auth authuc.Service) *Handler {
	return &Handler{auth: auth}
}

func toLoginResponse(user *domain.User, access, refresh string) LoginResponse {
	return LoginResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}
}

// Register обрабатывает регистрацию пользователя.
//
//	@Summary	Register a user and issue a token pair
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegisterRequest	true	"credentials"
//	@Success	201		{object}	LoginResponse
//	@Failure	400,409	{object}	response.ErrorBody
//	@Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	user, access, refresh, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		response.FromError(c, "Register", err)
		return
	}

	c.JSON(http.StatusCreated, toLoginResponse(user, access, refresh))
}

// Login обрабатывает вход пользователя по email/паролю.
//
//	@Summary	Log in with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"credentials"
//	@Success	200		{object}	LoginResponse
//	@Failure	400,401	{object}	response.ErrorBody
//	@Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	user, access, refresh, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidCredentials) {
			// Не раскрываем, что именно неверно
			response.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
			return
		}
		response.FromError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, toLoginResponse(user, access, refresh))
}

// Refresh обрабатывает обновление пары токенов по refresh-токену.
//
//	@Summary	Exchange a refresh token for a new token pair
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RefreshRequest	true	"refresh token"
//	@Success	200		{object}	LoginResponse
//	@Failure	400,401	{object}	response.ErrorBody
//	@Router		/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return
	}

	user, access, refresh, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "invalid_refresh_token", "invalid refresh token", nil)
			return
		}
		response.FromError(c, "Refresh", err)
		return
	}

	c.JSON(http.StatusOK, toLoginResponse(user, access, refresh))
}
