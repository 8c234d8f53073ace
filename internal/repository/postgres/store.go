package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// Store реализует repo.Store поверх одного *gorm.DB.
// Дескриптор передаётся явно через конструкторы, глобального клиента нет.
type Store struct {
	db *gorm.DB
	repositories
}

var _ repo.Store = (*Store)(nil)

// repositories связывает репозитории с конкретным *gorm.DB: пулом или транзакцией.
type repositories struct {
	users     *UserRepository
	exercises *ExerciseRepository
	workouts  *WorkoutRepository
	logs      *LogRepository
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		users:     NewUserRepository(db),
		exercises: NewExerciseRepository(db),
		workouts:  NewWorkoutRepository(db),
		logs:      NewLogRepository(db),
	}
}

func (r repositories) Users() repo.UserRepository         { return r.users }
func (r repositories) Exercises() repo.ExerciseRepository { return r.exercises }
func (r repositories) Workouts() repo.WorkoutRepository   { return r.workouts }
func (r repositories) Logs() repo.LogRepository           { return r.logs }

// NewStore создает хранилище на основе подключения GORM.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, repositories: newRepositories(db)}
}

// WithinTransaction выполняет fn внутри транзакции GORM.
// Ошибка или паника внутри fn приводит к ROLLBACK.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx repo.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}

// Ping проверяет доступность базы данных.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
