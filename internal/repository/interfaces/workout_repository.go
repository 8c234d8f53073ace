package interfaces

import (
	"context"
	"errors"

	domain "github.com/petedillo/fitness-api/internal/domain/workout"
)

// ErrDuplicateWorkoutExercise возвращается при нарушении уникальности (workout_id, exercise_id, order).
var ErrDuplicateWorkoutExercise = errors.New("duplicate workout exercise")

// ErrReferenceMissing возвращается при нарушении внешнего ключа:
// вставляемая строка ссылается на отсутствующую сущность.
var ErrReferenceMissing = errors.New("referenced entity does not exist")

// WorkoutRepository определяет контракт для тренировок и их упражнений.
//
// Методы не открывают собственных транзакций: атомарность нескольких вызовов
// обеспечивает Store.WithinTransaction.
type WorkoutRepository interface {
	// Create вставляет только строку тренировки и заполняет w.ID.
	Create(ctx context.Context, w *domain.Workout) error

	// GetByID возвращает тренировку со списком упражнений (по возрастанию order),
	// каждое раскрыто связанным Exercise.
	GetByID(ctx context.Context, id int64) (*domain.Workout, error)

	// LockByID блокирует строку тренировки до конца текущей транзакции
	// и возвращает её без списка упражнений.
	LockByID(ctx context.Context, id int64) (*domain.Workout, error)

	// ListByUser возвращает тренировки пользователя, новые первыми.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Workout, error)

	// ListIDsByUser возвращает идентификаторы тренировок пользователя.
	ListIDsByUser(ctx context.Context, userID int64) ([]int64, error)

	// UpdateFields обновляет name и description. user_id не меняется.
	UpdateFields(ctx context.Context, w *domain.Workout) error

	// Delete удаляет строку тренировки.
	Delete(ctx context.Context, id int64) error

	// CreateExercises вставляет записи в порядке среза и заполняет их ID.
	// Возвращает ErrDuplicateWorkoutExercise или ErrReferenceMissing при нарушении ограничений.
	CreateExercises(ctx context.Context, items []*domain.WorkoutExercise) error

	// GetExercise возвращает запись WorkoutExercise с раскрытым Exercise.
	GetExercise(ctx context.Context, id int64) (*domain.WorkoutExercise, error)

	// ListExerciseIDs возвращает идентификаторы записей WorkoutExercise тренировки.
	ListExerciseIDs(ctx context.Context, workoutID int64) ([]int64, error)

	// UpdateExercise обновляет sets, repetitions, weight и order одной записи.
	UpdateExercise(ctx context.Context, item *domain.WorkoutExercise) error

	// DeleteExercise удаляет одну запись WorkoutExercise.
	DeleteExercise(ctx context.Context, id int64) error

	// DeleteExercisesByWorkouts удаляет все записи WorkoutExercise указанных тренировок.
	DeleteExercisesByWorkouts(ctx context.Context, workoutIDs []int64) error
}

// LogRepository определяет контракт журнала выполнения подходов.
type LogRepository interface {
	Create(ctx context.Context, l *domain.Log) error
	GetByID(ctx context.Context, id int64) (*domain.Log, error)

	// ListByWorkout и ListByUser возвращают записи по возрастанию времени.
	ListByWorkout(ctx context.Context, workoutID int64) ([]*domain.Log, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Log, error)

	Update(ctx context.Context, l *domain.Log) error
	Delete(ctx context.Context, id int64) error

	// DeleteByWorkouts удаляет записи, ссылающиеся на любую из тренировок.
	DeleteByWorkouts(ctx context.Context, workoutIDs []int64) error

	// DeleteByWorkoutExercises удаляет записи, ссылающиеся на любую из записей WorkoutExercise.
	DeleteByWorkoutExercises(ctx context.Context, workoutExerciseIDs []int64) error

	// DeleteByUser удаляет записи, принадлежащие пользователю.
	DeleteByUser(ctx context.Context, userID int64) error
}
