package interfaces

import (
	"context"
	"errors"

	domain "github.com/petedillo/fitness-api/internal/domain/exercise"
)

// ErrExerciseNameExists возвращается при нарушении уникальности названия упражнения.
var ErrExerciseNameExists = errors.New("exercise name already exists")

// ErrExerciseInUse возвращается при попытке удалить упражнение,
// на которое ссылается хотя бы одна запись workout_exercises.
var ErrExerciseInUse = errors.New("exercise is referenced by workouts")

// ExerciseRepository определяет контракт каталога упражнений.
type ExerciseRepository interface {
	Create(ctx context.Context, e *domain.Exercise) error

	// GetByID возвращает (nil, ErrNotFound), если упражнения нет.
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)

	GetByName(ctx context.Context, name string) (*domain.Exercise, error)

	// List возвращает упражнения, отсортированные по названию.
	List(ctx context.Context) ([]*domain.Exercise, error)

	// GetByIDs возвращает найденные упражнения из набора ids. Отсутствующие молча пропускаются.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Exercise, error)

	// ExistingIDs возвращает подмножество ids, для которых упражнение существует.
	// Чистое чтение без побочных эффектов.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// IsReferenced сообщает, ссылается ли на упражнение хотя бы одна запись workout_exercises.
	IsReferenced(ctx context.Context, id int64) (bool, error)

	Update(ctx context.Context, e *domain.Exercise) error

	// Delete возвращает ErrExerciseInUse, если хранилище обнаружило ссылку (ограничение RESTRICT).
	Delete(ctx context.Context, id int64) error
}
