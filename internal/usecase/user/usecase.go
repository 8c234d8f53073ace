package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/petedillo/fitness-api/internal/apperror"
	domain "github.com/petedillo/fitness-api/internal/domain/user"
	"github.com/petedillo/fitness-api/internal/observability"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
	"github.com/petedillo/fitness-api/pkg/logger"
	"github.com/petedillo/fitness-api/pkg/password"
)

// Ограничения, совпадающие со схемой таблицы users.
const (
	minUsernameLength = 3
	maxUsernameLength = 50
	maxEmailLength    = 255
)

// Service описывает usecase-слой для работы с пользователем:
// регистрацию, получение и обновление профиля, каскадное удаление аккаунта.
type Service interface {
	// Register создаёт пользователя из уже захешированного пароля.
	// Хеширование выполняется выше (auth usecase).
	Register(ctx context.Context, email, passwordHash, username string) (*domain.User, error)

	// GetByID возвращает пользователя по идентификатору.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List возвращает всех пользователей, новые первыми.
	List(ctx context.Context) ([]*domain.User, error)

	// Update обновляет переданные поля профиля. Новый пароль хешируется здесь же.
	Update(ctx context.Context, id int64, in UpdateInput) (*domain.User, error)

	// Delete в одной транзакции удаляет журнал пользователя, его тренировки
	// со всеми упражнениями и журналами, затем самого пользователя.
	Delete(ctx context.Context, id int64) error
}

// UpdateInput описывает допустимые изменения профиля. Все поля опциональны.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

type service struct {
	store repo.Store
	log   logger.Logger
}

// NewService создаёт новый сервис пользователей.
func NewService(store repo.Store, log logger.Logger) Service {
	if log == nil {
		log = logger.Default()
	}
	return &service{store: store, log: log}
}

// ValidateUsername нормализует и проверяет username.
func ValidateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	n := utf8.RuneCountInString(trimmed)
	if n < minUsernameLength || n > maxUsernameLength {
		return "", apperror.Validation(fmt.Sprintf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength))
	}
	return trimmed, nil
}

// ValidateEmail нормализует email. Формат проверяется биндингом gin на входе.
func ValidateEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || !strings.Contains(normalized, "@") {
		return "", apperror.Validation("email must be a valid address")
	}
	if len(normalized) > maxEmailLength {
		return "", apperror.Validation(fmt.Sprintf("email must be at most %d characters", maxEmailLength))
	}
	return normalized, nil
}

// HashPassword проверяет длину пароля и хеширует его.
func HashPassword(raw string) (string, error) {
	if len(raw) < password.MinLength {
		return "", apperror.Validation(fmt.Sprintf("password must be at least %d characters", password.MinLength))
	}
	hashed, err := password.Hash(raw)
	if errors.Is(err, password.ErrTooLong) {
		return "", apperror.Validation("password must be at most 72 bytes")
	}
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("failed to hash password: %w", err))
	}
	return hashed, nil
}

// Register регистрирует нового пользователя.
func (s *service) Register(ctx context.Context, email, passwordHash, username string) (*domain.User, error) {
	if passwordHash == "" {
		return nil, apperror.Validation("password is required")
	}
	normalizedEmail, err := ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	normalizedUsername, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(normalizedUsername, normalizedEmail, passwordHash)
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, s.fail("register user", err, map[string]any{"username": normalizedUsername})
	}

	s.log.Info("user registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// GetByID возвращает пользователя по ID.
func (s *service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get user", err, map[string]any{"user_id": id})
	}
	return user, nil
}

// List возвращает всех пользователей.
func (s *service) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, s.fail("list users", err, map[string]any{})
	}
	return users, nil
}

// Update обновляет профиль пользователя.
func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.User, error) {
	var username, email, hash string
	var err error
	if in.Username != nil {
		if username, err = ValidateUsername(*in.Username); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		if email, err = ValidateEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Password != nil {
		if hash, err = HashPassword(*in.Password); err != nil {
			return nil, err
		}
	}

	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("update user", err, map[string]any{"user_id": id})
	}

	// Применяем изменения к доменной модели
	if in.Username != nil {
		user.Username = username
	}
	if in.Email != nil {
		user.Email = email
	}
	if in.Password != nil {
		user.PasswordHash = hash
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, s.fail("update user", err, map[string]any{"user_id": id})
	}
	return user, nil
}

// Delete удаляет пользователя вместе со всеми зависимыми строками.
func (s *service) Delete(ctx context.Context, id int64) error {
	var removedWorkouts int
	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if _, err := tx.Users().GetByID(ctx, id); err != nil {
			return err
		}
		if err := tx.Logs().DeleteByUser(ctx, id); err != nil {
			return err
		}

		workoutIDs, err := tx.Workouts().ListIDsByUser(ctx, id)
		if err != nil {
			return err
		}
		// Журналы других пользователей под тренировками этого пользователя тоже удаляются.
		if err := tx.Logs().DeleteByWorkouts(ctx, workoutIDs); err != nil {
			return err
		}
		if err := tx.Workouts().DeleteExercisesByWorkouts(ctx, workoutIDs); err != nil {
			return err
		}
		for _, workoutID := range workoutIDs {
			if err := tx.Workouts().Delete(ctx, workoutID); err != nil {
				return err
			}
		}
		removedWorkouts = len(workoutIDs)

		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return s.fail("delete user", err, map[string]any{"user_id": id})
	}

	observability.RecordCascadeDelete(apperror.EntityUser)
	s.log.Info("user deleted", map[string]any{"user_id": id, "workouts": removedWorkouts})
	return nil
}

func (s *service) fail(op string, err error, fields map[string]any) error {
	appErr := apperror.As(storeerr.Translate(err, apperror.EntityUser, apperror.EntityUser))
	if appErr.Kind == apperror.KindInternal {
		fields["err"] = err
		s.log.Error(op+" failed", fields)
	}
	return appErr
}
