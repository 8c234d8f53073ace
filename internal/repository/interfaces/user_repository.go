package interfaces

import (
	"context"
	"errors"

	domain "github.com/petedillo/fitness-api/internal/domain/user"
)

// ErrNotFound возвращается, когда сущность не найдена в хранилище.
var ErrNotFound = errors.New("entity not found")

// ErrEmailExists возвращается, когда пользователь с таким email уже существует.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists возвращается, когда пользователь с таким username уже существует.
var ErrUsernameExists = errors.New("username already exists")

// UserRepository определяет контракт для работы с пользователями на уровне хранилища.
//
// Интерфейс оперирует доменной моделью User и не раскрывает деталей реализации (GORM, SQL и т.п.).
type UserRepository interface {
	// Create создает нового пользователя и заполняет user.ID.
	// Возвращает ErrEmailExists, если email уже используется.
	// Возвращает ErrUsernameExists, если username уже используется.
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по идентификатору.
	// Возвращает (nil, ErrNotFound), если пользователь не найден.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail возвращает пользователя по email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername возвращает пользователя по username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List возвращает всех пользователей, новые первыми.
	List(ctx context.Context) ([]*domain.User, error)

	// Update обновляет username, email и password_hash.
	// Не обновляет защищенные поля: id, created_at.
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет строку пользователя. Зависимые строки должны быть удалены заранее.
	Delete(ctx context.Context, id int64) error
}
