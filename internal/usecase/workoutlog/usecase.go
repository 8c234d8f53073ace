// Package workoutlog ведёт журнал выполненных подходов.
package workoutlog

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/petedillo/fitness-api/internal/apperror"
	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
	"github.com/petedillo/fitness-api/pkg/logger"
)

// MsgForeignWorkoutExercise возвращается, если запись упражнения принадлежит другой тренировке.
const MsgForeignWorkoutExercise = "workoutExerciseId does not belong to the workout"

// Service описывает операции над журналом подходов.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*domain.Log, error)
	GetByID(ctx context.Context, id int64) (*domain.Log, error)

	// ListByWorkout и ListByUser возвращают NotFound, если родительской сущности нет.
	ListByWorkout(ctx context.Context, workoutID int64) ([]*domain.Log, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Log, error)

	Update(ctx context.Context, id int64, in Patch) (*domain.Log, error)
	Delete(ctx context.Context, id int64) error
}

// CreateInput описывает новую запись журнала. Нулевое время заменяется текущим.
type CreateInput struct {
	UserID            int64
	WorkoutID         int64
	WorkoutExerciseID int64
	SetNumber         int
	RepsCompleted     *int
	WeightUsed        *float64
	Notes             *string
	Timestamp         time.Time
}

// Patch описывает частичное обновление записи журнала.
type Patch struct {
	SetNumber     *int
	RepsCompleted *int
	WeightUsed    *float64
	Notes         *string
	Timestamp     *time.Time
}

type service struct {
	store repo.Store
	log   logger.Logger
}

// NewService создаёт сервис журнала.
func NewService(store repo.Store, log logger.Logger) Service {
	if log == nil {
		log = logger.Default()
	}
	return &service{store: store, log: log}
}

// set_number и reps_completed хранятся в INTEGER.
const maxCount = math.MaxInt32

func validateValues(setNumber int, reps *int, weight *float64) error {
	if setNumber <= 0 {
		return apperror.Validation("setNumber must be a positive integer")
	}
	if setNumber > maxCount {
		return apperror.Validation(fmt.Sprintf("setNumber must be at most %d", maxCount))
	}
	if reps != nil && *reps < 0 {
		return apperror.Validation("repsCompleted must not be negative")
	}
	if reps != nil && *reps > maxCount {
		return apperror.Validation(fmt.Sprintf("repsCompleted must be at most %d", maxCount))
	}
	if weight != nil && *weight < 0 {
		return apperror.Validation("weightUsed must not be negative")
	}
	return nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.Log, error) {
	if err := validateValues(in.SetNumber, in.RepsCompleted, in.WeightUsed); err != nil {
		return nil, err
	}

	l := domain.NewLog(in.UserID, in.WorkoutID, in.WorkoutExerciseID, in.SetNumber, in.Timestamp)
	l.RepsCompleted = in.RepsCompleted
	l.WeightUsed = in.WeightUsed
	l.SetNotes(in.Notes)

	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if _, err := tx.Users().GetByID(ctx, in.UserID); err != nil {
			return storeerr.Translate(err, apperror.EntityUser, apperror.EntityUser)
		}
		if _, err := tx.Workouts().LockByID(ctx, in.WorkoutID); err != nil {
			return storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
		}
		we, err := tx.Workouts().GetExercise(ctx, in.WorkoutExerciseID)
		if err != nil {
			return storeerr.Translate(err, apperror.EntityWorkoutExercise, apperror.EntityWorkoutExercise)
		}
		if we.WorkoutID != in.WorkoutID {
			return apperror.Validation(MsgForeignWorkoutExercise)
		}
		if err := tx.Logs().Create(ctx, l); err != nil {
			return storeerr.Translate(err, apperror.EntityLog, apperror.EntityWorkoutExercise)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("create log", err, map[string]any{"workout_id": in.WorkoutID})
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Log, error) {
	l, err := s.store.Logs().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get log", err, map[string]any{"log_id": id})
	}
	return l, nil
}

func (s *service) ListByWorkout(ctx context.Context, workoutID int64) ([]*domain.Log, error) {
	if _, err := s.store.Workouts().GetByID(ctx, workoutID); err != nil {
		return nil, storeerr.Translate(err, apperror.EntityWorkout, apperror.EntityWorkout)
	}
	logs, err := s.store.Logs().ListByWorkout(ctx, workoutID)
	if err != nil {
		return nil, s.fail("list workout logs", err, map[string]any{"workout_id": workoutID})
	}
	return logs, nil
}

func (s *service) ListByUser(ctx context.Context, userID int64) ([]*domain.Log, error) {
	if _, err := s.store.Users().GetByID(ctx, userID); err != nil {
		return nil, storeerr.Translate(err, apperror.EntityUser, apperror.EntityUser)
	}
	logs, err := s.store.Logs().ListByUser(ctx, userID)
	if err != nil {
		return nil, s.fail("list user logs", err, map[string]any{"user_id": userID})
	}
	return logs, nil
}

func (s *service) Update(ctx context.Context, id int64, in Patch) (*domain.Log, error) {
	l, err := s.store.Logs().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("update log", err, map[string]any{"log_id": id})
	}

	if in.SetNumber != nil {
		l.SetNumber = *in.SetNumber
	}
	if in.RepsCompleted != nil {
		l.RepsCompleted = in.RepsCompleted
	}
	if in.WeightUsed != nil {
		l.WeightUsed = in.WeightUsed
	}
	if in.Timestamp != nil && !in.Timestamp.IsZero() {
		l.Timestamp = in.Timestamp.UTC()
	}
	l.SetNotes(in.Notes)

	if err := validateValues(l.SetNumber, l.RepsCompleted, l.WeightUsed); err != nil {
		return nil, err
	}
	if err := s.store.Logs().Update(ctx, l); err != nil {
		return nil, s.fail("update log", err, map[string]any{"log_id": id})
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Logs().Delete(ctx, id); err != nil {
		return s.fail("delete log", err, map[string]any{"log_id": id})
	}
	return nil
}

func (s *service) fail(op string, err error, fields map[string]any) error {
	appErr := apperror.As(storeerr.Translate(err, apperror.EntityLog, apperror.EntityLog))
	if appErr.Kind == apperror.KindInternal {
		fields["err"] = err
		s.log.Error(op+" failed", fields)
	}
	return appErr
}
