// Package storeerr переводит ошибки репозиториев в типизированные ошибки apperror.
package storeerr

import (
	"errors"

	"github.com/petedillo/fitness-api/internal/apperror"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// Стабильные причины конфликтов.
const (
	ReasonEmailExists        = "email_already_exists"
	ReasonUsernameExists     = "username_already_exists"
	ReasonExerciseNameExists = "exercise_name_exists"
	ReasonExerciseInUse      = "exercise_in_use"
	ReasonDuplicateEntry     = "duplicate_workout_exercise"
)

// Сообщения конфликтов, которые видит клиент.
const (
	MessageExerciseInUse  = "cannot delete exercise used in workouts"
	MessageDuplicateEntry = "exercise is already present in the workout at this order"
)

// Translate переводит ошибку хранилища. notFound задаёт сущность для ErrNotFound,
// missingRef - сущность, отсутствие которой означает ErrReferenceMissing.
// Ошибки apperror возвращаются без изменений, неизвестные становятся Internal.
func Translate(err error, notFound, missingRef string) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, repo.ErrReferenceMissing):
		return apperror.NotFound(missingRef)
	case errors.Is(err, repo.ErrEmailExists):
		return apperror.Conflict(ReasonEmailExists, "email already exists")
	case errors.Is(err, repo.ErrUsernameExists):
		return apperror.Conflict(ReasonUsernameExists, "username already exists")
	case errors.Is(err, repo.ErrExerciseNameExists):
		return apperror.Conflict(ReasonExerciseNameExists, "exercise name already exists")
	case errors.Is(err, repo.ErrExerciseInUse):
		return apperror.Conflict(ReasonExerciseInUse, MessageExerciseInUse)
	case errors.Is(err, repo.ErrDuplicateWorkoutExercise):
		return apperror.Conflict(ReasonDuplicateEntry, MessageDuplicateEntry)
	default:
		return apperror.Internal(err)
	}
}
