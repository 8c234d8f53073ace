// Package reference проверяет, что тренировка ссылается только на существующие упражнения.
package reference

import (
	"context"

	"github.com/petedillo/fitness-api/internal/apperror"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
)

// Validator привязан к репозиторию упражнений: к пулу или к открытой транзакции.
type Validator struct {
	exercises repo.ExerciseRepository
}

// New создаёт валидатор поверх репозитория упражнений.
func New(exercises repo.ExerciseRepository) *Validator {
	return &Validator{exercises: exercises}
}

// ValidateExerciseIDs возвращает подмножество ids, для которых упражнение существует.
// Чистое чтение: повторный вызов с теми же ids без промежуточных записей даёт тот же результат.
func (v *Validator) ValidateExerciseIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	found, err := v.exercises.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, storeerr.Translate(err, apperror.EntityExercise, apperror.EntityExercise)
	}
	return found, nil
}

// Require возвращает NotFound(exercise) со списком отсутствующих id,
// если хотя бы одно упражнение из ids не существует.
func (v *Validator) Require(ctx context.Context, ids []int64) error {
	found, err := v.ValidateExerciseIDs(ctx, ids)
	if err != nil {
		return err
	}
	missing := Missing(ids, found)
	if len(missing) > 0 {
		return apperror.NotFound(apperror.EntityExercise).
			WithDetails(map[string]interface{}{"missingExerciseIds": missing})
	}
	return nil
}

// Missing возвращает уникальные элементы requested, отсутствующие в found, в порядке запроса.
func Missing(requested, found []int64) []int64 {
	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	missing := make([]int64, 0)
	for _, id := range requested {
		if _, ok := present[id]; ok {
			continue
		}
		present[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing
}
