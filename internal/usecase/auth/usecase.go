package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/petedillo/fitness-api/internal/apperror"
	domain "github.com/petedillo/fitness-api/internal/domain/user"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	useruc "github.com/petedillo/fitness-api/internal/usecase/user"
	jwtsvc "github.com/petedillo/fitness-api/pkg/jwt"
	"github.com/petedillo/fitness-api/pkg/logger"
	"github.com/petedillo/fitness-api/pkg/password"
)

// Service описывает usecase-слой, связанный с аутентификацией:
// регистрацию, логин и обновление токенов.
type Service interface {
	// Register хеширует пароль, создаёт пользователя и сразу выдаёт пару access/refresh токенов.
	Register(ctx context.Context, email, password, username string) (*domain.User, string, string, error)

	// Login выполняет вход по email/паролю.
	// Возвращает пользователя и пару access/refresh токенов.
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)

	// Refresh обновляет пару access/refresh токенов по действительному refresh-токену.
	Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error)
}

// Ошибки аутентификации. HTTP-слой отвечает на них 401.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type service struct {
	users    repo.UserRepository
	accounts useruc.Service
	jwt      jwtsvc.Service
	log      logger.Logger
}

// NewService создаёт новый auth usecase-сервис.
func NewService(users repo.UserRepository, accounts useruc.Service, jwt jwtsvc.Service, log logger.Logger) Service {
	if log == nil {
		log = logger.Default()
	}
	return &service{users: users, accounts: accounts, jwt: jwt, log: log}
}

// Register регистрирует нового пользователя.
func (s *service) Register(ctx context.Context, email, rawPassword, username string) (*domain.User, string, string, error) {
	if email == "" || rawPassword == "" || username == "" {
		return nil, "", "", apperror.Validation("email, password and username are required")
	}

	// Хешируем пароль на уровне usecase.
	hashed, err := useruc.HashPassword(rawPassword)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.accounts.Register(ctx, email, hashed, username)
	if err != nil {
		return nil, "", "", err
	}
	return s.issue(user)
}

// Login выполняет вход по email/паролю.
func (s *service) Login(ctx context.Context, email, rawPassword string) (*domain.User, string, string, error) {
	if email == "" || rawPassword == "" {
		return nil, "", "", apperror.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", apperror.Internal(err)
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		s.log.Warn("login rejected", map[string]any{"user_id": user.ID})
		return nil, "", "", ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh обновляет пару токенов.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error) {
	if refreshToken == "" {
		return nil, "", "", apperror.Validation("refresh token is required")
	}

	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, "", "", ErrInvalidRefreshToken
	}

	// Удалённый пользователь не получает новых токенов.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", "", ErrInvalidRefreshToken
		}
		return nil, "", "", apperror.Internal(err)
	}

	return s.issue(user)
}

func (s *service) issue(user *domain.User) (*domain.User, string, string, error) {
	access, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, "", "", apperror.Internal(fmt.Errorf("failed to sign access token: %w", err))
	}

	refresh, _, err := s.jwt.GenerateRefreshToken(user)
	if err != nil {
		return nil, "", "", apperror.Internal(fmt.Errorf("failed to sign refresh token: %w", err))
	}

	return user, access, refresh, nil
}
