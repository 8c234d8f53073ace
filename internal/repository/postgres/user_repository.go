package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/petedillo/fitness-api/internal/domain/user"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// UserRepository реализует repo.UserRepository с использованием GORM и Postgres.
type UserRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// translateUserError переводит нарушения уникальности в ошибки репозитория.
func translateUserError(err error) error {
	switch {
	case isUniqueViolation(err, constraintUsersEmail):
		return repo.ErrEmailExists
	case isUniqueViolation(err, constraintUsersUsername):
		return repo.ErrUsernameExists
	default:
		return err
	}
}

// Create создает нового пользователя в БД.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	model := fromDomainUser(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateUserError(err)
	}
	user.ID = model.ID
	return nil
}

// oneByCondition возвращает одну запись по условию.
func (r *UserRepository) oneByCondition(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var model pgUser
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Take(&model).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.oneByCondition(ctx, "id = ?", id)
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.oneByCondition(ctx, "email = ?", email)
}

// GetByUsername возвращает пользователя по username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.oneByCondition(ctx, "username = ?", username)
}

// List возвращает всех пользователей.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []pgUser
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(models))
	for i := range models {
		users = append(users, models[i].toDomain())
	}
	return users, nil
}

// Update обновляет данные пользователя.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	// Используем выборочное обновление для защиты id и created_at
	updates := map[string]interface{}{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	}

	result := r.db.WithContext(ctx).
		Model(&pgUser{}).
		Where("id = ?", user.ID).
		Updates(updates)

	if result.Error != nil {
		return translateUserError(result.Error)
	}

	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete удаляет пользователя.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&pgUser{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
