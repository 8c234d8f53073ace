package workout

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/petedillo/fitness-api/internal/apperror"
	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	"github.com/petedillo/fitness-api/internal/observability"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	"github.com/petedillo/fitness-api/internal/usecase/reference"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
	"github.com/petedillo/fitness-api/pkg/logger"
)

// Ограничения, совпадающие со схемой БД: sets и sort_order хранятся в INTEGER.
const (
	maxNameLength        = 255
	maxRepetitionsLength = 50
	maxCount             = math.MaxInt32
)

// Сообщения валидации, которые видит клиент.
const (
	MsgNameRequired      = "workout name is required"
	MsgExercisesRequired = "at least one exercise is required"
)

// Service описывает сборку тренировки и каскадное удаление.
// Каждая операция, затрагивающая больше одной строки, выполняется в одной транзакции.
type Service interface {
	// Create создаёт тренировку вместе со списком упражнений.
	// Упражнения возвращаются в порядке запроса, каждое раскрыто своим Exercise.
	Create(ctx context.Context, in CreateInput) (*domain.Workout, error)

	GetByID(ctx context.Context, id int64) (*domain.Workout, error)

	// ListByUser возвращает NotFound(user), если пользователя нет.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Workout, error)

	// Update обновляет скалярные поля и, если передан список упражнений,
	// заменяет весь набор WorkoutExercise (replace-all).
	Update(ctx context.Context, id int64, in UpdateInput) (*domain.Workout, error)

	// Delete удаляет журнал, упражнения и саму тренировку.
	Delete(ctx context.Context, id int64) error

	AddExercise(ctx context.Context, workoutID int64, in domain.ExerciseInput) (*domain.WorkoutExercise, error)
	UpdateExercise(ctx context.Context, id int64, in ExercisePatch) (*domain.WorkoutExercise, error)

	// DeleteExercise удаляет одну запись WorkoutExercise вместе с её журналом.
	DeleteExercise(ctx context.Context, id int64) error
}

// CreateInput описывает запрос на создание тренировки.
type CreateInput struct {
	UserID      int64
	Name        string
	Description *string
	Exercises   []domain.ExerciseInput
}

// UpdateInput описывает частичное обновление. nil означает «поле не передано».
// Exercises, отличный от nil, запускает replace-all; пустой список отклоняется валидацией.
type UpdateInput struct {
	Name        *string
	Description *string
	Exercises   []domain.ExerciseInput
}

// ExercisePatch описывает частичное обновление одной записи WorkoutExercise.
type ExercisePatch struct {
	Sets        *int
	Repetitions *string
	Weight      *float64
	Order       *int
}

type service struct {
	store repo.Store
	log   logger.Logger
}

// NewService создаёт сервис тренировок поверх хранилища.
func NewService(store repo.Store, log logger.Logger) Service {
	if log == nil {
		log = logger.Default()
	}
	return &service{store: store, log: log}
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperror.Validation(MsgNameRequired)
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", apperror.Validation(fmt.Sprintf("workout name must be at most %d characters", maxNameLength))
	}
	return trimmed, nil
}

func validateEntry(prefix string, in domain.ExerciseInput) error {
	if in.ExerciseID <= 0 {
		return apperror.Validation(prefix + "exerciseId must be a positive integer")
	}
	if in.Sets != nil && *in.Sets <= 0 {
		return apperror.Validation(prefix + "sets must be a positive integer")
	}
	if in.Sets != nil && *in.Sets > maxCount {
		return apperror.Validation(fmt.Sprintf("%ssets must be at most %d", prefix, maxCount))
	}
	if in.Order != nil && *in.Order <= 0 {
		return apperror.Validation(prefix + "order must be a positive integer")
	}
	if in.Order != nil && *in.Order > maxCount {
		return apperror.Validation(fmt.Sprintf("%sorder must be at most %d", prefix, maxCount))
	}
	if in.Weight != nil && *in.Weight < 0 {
		return apperror.Validation(prefix + "weight must not be negative")
	}
	if in.Repetitions != nil && utf8.RuneCountInString(strings.TrimSpace(*in.Repetitions)) > maxRepetitionsLength {
		return apperror.Validation(fmt.Sprintf("%srepetitions must be at most %d characters", prefix, maxRepetitionsLength))
	}
	return nil
}

// validateExercises проверяет список целиком до любых обращений к хранилищу.
func validateExercises(inputs []domain.ExerciseInput) error {
	if len(inputs) == 0 {
		return apperror.Validation(MsgExercisesRequired)
	}
	for i, in := range inputs {
		if err := validateEntry(fmt.Sprintf("exercises[%d].", i), in); err != nil {
			return err
		}
	}
	return nil
}

func duplicateConflict(key domain.Key) error {
	return apperror.Conflict(storeerr.ReasonDuplicateEntry, storeerr.MessageDuplicateEntry).
		WithDetails(map[string]interface{}{"exerciseId": key.ExerciseID, "order": key.Order})
}

// checkComposition проверяет ссылки на упражнения и уникальность (exerciseId, order).
func checkComposition(ctx context.Context, tx repo.Repositories, inputs []domain.ExerciseInput) error {
	if err := reference.New(tx.Exercises()).Require(ctx, domain.DistinctExerciseIDs(inputs)); err != nil {
		return err
	}
	if key, dup := domain.FindDuplicateKey(inputs); dup {
		return duplicateConflict(key)
	}
	return nil
}

// insertExercises вставляет набор и раскрывает каждую запись её упражнением.
func insertExercises(ctx context.Context, tx repo.Repositories, workoutID int64, inputs []domain.ExerciseInput) ([]*domain.WorkoutExercise, error) {
	items := make([]*domain.WorkoutExercise, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, domain.NewWorkoutExercise(workoutID, in))
	}
	if err := tx.Workouts().CreateExercises(ctx, items); err != nil {
		return nil, storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityExercise)
	}

	catalog, err := tx.Exercises().GetByIDs(ctx, domain.DistinctExerciseIDs(inputs))
	if err != nil {
		return nil, storeerr.Translate(err, apperror.EntityExercise, apperror.EntityExercise)
	}
	byID := make(map[int64]int, len(catalog))
	for i, e := range catalog {
		byID[e.ID] = i
	}
	for _, item := range items {
		if i, ok := byID[item.ExerciseID]; ok {
			item.Exercise = catalog[i]
		}
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.Workout, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := validateExercises(in.Exercises); err != nil {
		return nil, err
	}

	var created *domain.Workout
	err = s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if _, err := tx.Users().GetByID(ctx, in.UserID); err != nil {
			return storeerr.Translate(err, apperror.EntityUser, apperror.EntityUser)
		}
		if err := checkComposition(ctx, tx, in.Exercises); err != nil {
			return err
		}

		w := domain.NewWorkout(in.UserID, name, in.Description)
		if err := tx.Workouts().Create(ctx, w); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityUser)
		}

		items, err := insertExercises(ctx, tx, w.ID, in.Exercises)
		if err != nil {
			return err
		}
		w.Exercises = items
		created = w
		return nil
	})
	if err != nil {
		return nil, s.fail("create workout", err, map[string]any{"user_id": in.UserID})
	}

	s.log.Info("workout created", map[string]any{
		"workout_id": created.ID,
		"user_id":    created.UserID,
		"exercises":  len(created.Exercises),
	})
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	w, err := s.store.Workouts().GetByID(ctx, id)
	if err != nil {
		return nil, storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
	}
	return w, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]*domain.Workout, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, storeerr.Translate(err, apperror.EntityUser, apperror.EntityUser)
	}
	workouts, err := s.store.Workouts().ListByUser(ctx, userID)
	if err != nil {
		return nil, storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
	}
	return workouts, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Workout, error) {
	var name string
	if in.Name != nil {
		trimmed, err := validateName(*in.Name)
		if err != nil {
			return nil, err
		}
		name = trimmed
	}
	replace := in.Exercises != nil
	if replace {
		if err := validateExercises(in.Exercises); err != nil {
			return nil, err
		}
	}

	var updated *domain.Workout
	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		w, err := tx.Workouts().LockByID(ctx, id)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}

		// Все проверки набора выполняются до удаления старых строк.
		if replace {
			if err := checkComposition(ctx, tx, in.Exercises); err != nil {
				return err
			}
		}

		if in.Name != nil || in.Description != nil {
			if in.Name != nil {
				w.Name = name
			}
			if in.Description != nil {
				w.SetDescription(in.Description)
			}
			if err := tx.Workouts().UpdateFields(ctx, w); err != nil {
				return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
			}
		}

		if replace {
			oldIDs, err := tx.Workouts().ListExerciseIDs(ctx, id)
			if err != nil {
				return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
			}
			if err := tx.Logs().DeleteByWorkoutExercises(ctx, oldIDs); err != nil {
				return storeerr.Translate(err, apperror.EntityLog, apperror.EntityLog)
			}
			if err := tx.Workouts().DeleteExercisesByWorkouts(ctx, []int64{id}); err != nil {
				return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
			}
			if _, err := insertExercises(ctx, tx, id, in.Exercises); err != nil {
				return err
			}
		}

		updated, err = tx.Workouts().GetByID(ctx, id)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("update workout", err, map[string]any{"workout_id": id})
	}

	s.log.Info("workout updated", map[string]any{
		"workout_id":         id,
		"exercises_replaced": replace,
		"exercises":          len(updated.Exercises),
	})
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if _, err := tx.Workouts().LockByID(ctx, id); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		ids := []int64{id}
		if err := tx.Logs().DeleteByWorkouts(ctx, ids); err != nil {
			return storeerr.Translate(err, apperror.EntityLog, apperror.EntityLog)
		}
		if err := tx.Workouts().DeleteExercisesByWorkouts(ctx, ids); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		if err := tx.Workouts().Delete(ctx, id); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		return nil
	})
	if err != nil {
		return s.fail("delete workout", err, map[string]any{"workout_id": id})
	}
	observability.RecordCascadeDelete(apperror.EntityWorkout)
	s.log.Info("workout deleted", map[string]any{"workout_id": id})
	return nil
}

// siblingConflict проверяет, что ключ записи не занят другой записью тренировки.
func siblingConflict(w *domain.Workout, key domain.Key, selfID int64) error {
	for _, existing := range w.Exercises {
		if existing.ID != selfID && existing.Key() == key {
			return duplicateConflict(key)
		}
	}
	return nil
}

func (s *service) AddExercise(ctx context.Context, workoutID int64, in domain.ExerciseInput) (*domain.WorkoutExercise, error) {
	if err := validateEntry("", in); err != nil {
		return nil, err
	}

	var created *domain.WorkoutExercise
	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if _, err := tx.Workouts().LockByID(ctx, workoutID); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		if err := reference.New(tx.Exercises()).Require(ctx, []int64{in.ExerciseID}); err != nil {
			return err
		}
		current, err := tx.Workouts().GetByID(ctx, workoutID)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		if err := siblingConflict(current, in.ResolvedKey(), 0); err != nil {
			return err
		}

		items, err := insertExercises(ctx, tx, workoutID, []domain.ExerciseInput{in})
		if err != nil {
			return err
		}
		created = items[0]
		return nil
	})
	if err != nil {
		return nil, s.fail("add workout exercise", err, map[string]any{"workout_id": workoutID})
	}
	return created, nil
}

func (s *service) UpdateExercise(ctx context.Context, id int64, in ExercisePatch) (*domain.WorkoutExercise, error) {
	var updated *domain.WorkoutExercise
	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		item, err := tx.Workouts().GetExercise(ctx, id)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkoutExercise, apperror.EntityWorkoutExercise)
		}
		current, err := tx.Workouts().LockByID(ctx, item.WorkoutID)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}

		merged := domain.ExerciseInput{
			ExerciseID:  item.ExerciseID,
			Sets:        &item.Sets,
			Repetitions: item.Repetitions,
			Weight:      item.Weight,
			Order:       &item.Order,
		}
		if in.Sets != nil {
			merged.Sets = in.Sets
		}
		if in.Repetitions != nil {
			merged.Repetitions = in.Repetitions
		}
		if in.Weight != nil {
			merged.Weight = in.Weight
		}
		if in.Order != nil {
			merged.Order = in.Order
		}
		if err := validateEntry("", merged); err != nil {
			return err
		}

		full, err := tx.Workouts().GetByID(ctx, current.ID)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		if err := siblingConflict(full, merged.ResolvedKey(), id); err != nil {
			return err
		}

		next := domain.NewWorkoutExercise(item.WorkoutID, merged)
		next.ID = id
		if err := tx.Workouts().UpdateExercise(ctx, next); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkoutExercise, apperror.EntityExercise)
		}
		updated, err = tx.Workouts().GetExercise(ctx, id)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkoutExercise, apperror.EntityWorkoutExercise)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("update workout exercise", err, map[string]any{"workout_exercise_id": id})
	}
	return updated, nil
}

func (s *service) DeleteExercise(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if _, err := tx.Workouts().GetExercise(ctx, id); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkoutExercise, apperror.EntityWorkoutExercise)
		}
		if err := tx.Logs().DeleteByWorkoutExercises(ctx, []int64{id}); err != nil {
			return storeerr.Translate(err, apperror.EntityLog, apperror.EntityLog)
		}
		if err := tx.Workouts().DeleteExercise(ctx, id); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkoutExercise, apperror.EntityWorkoutExercise)
		}
		return nil
	})
	if err != nil {
		return s.fail("delete workout exercise", err, map[string]any{"workout_exercise_id": id})
	}
	return nil
}

// fail логирует внутренние ошибки и приводит результат к apperror.
func (s *service) fail(op string, err error, fields map[string]any) error {
	appErr := apperror.As(storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout))
	if appErr.Kind == apperror.KindInternal {
		fields["err"] = err
		s.log.Error(op+" failed", fields)
	}
	return appErr
}
