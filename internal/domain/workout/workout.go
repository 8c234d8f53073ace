package workout

import (
	"sort"
	"strings"
	"time"

	"github.com/petedillo/fitness-api/internal/domain/exercise"
)

const (
	// DefaultSets - количество подходов, если оно не указано в запросе.
	DefaultSets  = 1
	// DefaultOrder - позиция упражнения, если она не указана в запросе.
	DefaultOrder = 1
)

// Workout - агрегат тренировки: сама тренировка и упорядоченный список упражнений.
// Список упражнений меняется только целиком (replace-all), частичного слияния нет.
type Workout struct {
	ID          int64
	UserID      int64 // Владелец; не меняется после создания
	Name        string
	Description *string
	CreatedAt   time.Time

	Exercises []*WorkoutExercise
}

// WorkoutExercise - предписание выполнения упражнения внутри тренировки.
// Тройка (WorkoutID, ExerciseID, Order) уникальна.
type WorkoutExercise struct {
	ID          int64
	WorkoutID   int64
	ExerciseID  int64
	Sets        int
	Repetitions *string  // Свободный формат, например "8-10"
	Weight      *float64 // Необязательный неотрицательный вес
	Order       int

	// Exercise заполняется при чтении агрегата (expand).
	Exercise *exercise.Exercise
}

// ExerciseInput описывает одну запись упражнения во входных данных create/update.
type ExerciseInput struct {
	ExerciseID  int64
	Sets        *int
	Repetitions *string
	Weight      *float64
	Order       *int
}

// Key - составной ключ уникальности записи внутри одной тренировки.
type Key struct {
	ExerciseID int64
	Order      int
}

// NewWorkout создаёт тренировку с нормализованными полями.
func NewWorkout(userID int64, name string, description *string) *Workout {
	w := &Workout{
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
	w.SetDescription(description)
	return w
}

// SetDescription сохраняет описание без крайних пробелов, пустая строка очищает поле.
func (w *Workout) SetDescription(description *string) {
	if description == nil {
		w.Description = nil
		return
	}
	v := strings.TrimSpace(*description)
	if v == "" {
		w.Description = nil
		return
	}
	w.Description = &v
}

// NewWorkoutExercise применяет значения по умолчанию к входной записи.
func NewWorkoutExercise(workoutID int64, in ExerciseInput) *WorkoutExercise {
	we := &WorkoutExercise{
		WorkoutID:  workoutID,
		ExerciseID: in.ExerciseID,
		Sets:       DefaultSets,
		Order:      DefaultOrder,
		Weight:     in.Weight,
	}
	if in.Sets != nil {
		we.Sets = *in.Sets
	}
	if in.Order != nil {
		we.Order = *in.Order
	}
	if in.Repetitions != nil {
		reps := strings.TrimSpace(*in.Repetitions)
		we.Repetitions = &reps
	}
	return we
}

// Key возвращает составной ключ записи.
func (we *WorkoutExercise) Key() Key {
	return Key{ExerciseID: we.ExerciseID, Order: we.Order}
}

// ResolvedKey возвращает ключ входной записи с учётом значения order по умолчанию.
func (in ExerciseInput) ResolvedKey() Key {
	order := DefaultOrder
	if in.Order != nil {
		order = *in.Order
	}
	return Key{ExerciseID: in.ExerciseID, Order: order}
}

// DistinctExerciseIDs возвращает уникальные идентификаторы упражнений в порядке первого появления.
// Одно и то же упражнение может встречаться несколько раз с разными позициями.
func DistinctExerciseIDs(inputs []ExerciseInput) []int64 {
	seen := make(map[int64]struct{}, len(inputs))
	ids := make([]int64, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in.ExerciseID]; ok {
			continue
		}
		seen[in.ExerciseID] = struct{}{}
		ids = append(ids, in.ExerciseID)
	}
	return ids
}

// FindDuplicateKey ищет две входные записи с одинаковой парой (exerciseId, order).
// Возвращает первый повторившийся ключ и true, если такой есть.
func FindDuplicateKey(inputs []ExerciseInput) (Key, bool) {
	seen := make(map[Key]struct{}, len(inputs))
	for _, in := range inputs {
		k := in.ResolvedKey()
		if _, ok := seen[k]; ok {
			return k, true
		}
		seen[k] = struct{}{}
	}
	return Key{}, false
}

// SortByOrder упорядочивает записи по возрастанию order, при равенстве - по id.
func SortByOrder(items []*WorkoutExercise) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].ID < items[j].ID
	})
}
