package exercise

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/petedillo/fitness-api/internal/apperror"
	domain "github.com/petedillo/fitness-api/internal/domain/exercise"
	"github.com/petedillo/fitness-api/internal/observability"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
	"github.com/petedillo/fitness-api/pkg/logger"
)

const maxNameLength = 255

// MsgNameRequired возвращается при пустом названии упражнения.
const MsgNameRequired = "exercise name is required"

// Service описывает каталог упражнений.
type Service interface {
	Create(ctx context.Context, name string, description *string) (*domain.Exercise, error)
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	List(ctx context.Context) ([]*domain.Exercise, error)

	// Update меняет только переданные поля.
	Update(ctx context.Context, id int64, in UpdateInput) (*domain.Exercise, error)

	// Delete возвращает Conflict(exercise_in_use), пока упражнение входит хотя бы в одну тренировку.
	Delete(ctx context.Context, id int64) error
}

// UpdateInput описывает частичное обновление упражнения.
type UpdateInput struct {
	Name        *string
	Description *string
}

type service struct {
	store repo.Store
	log   logger.Logger
}

// NewService создаёт сервис каталога упражнений.
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
		return "", apperror.Validation(fmt.Sprintf("exercise name must be at most %d characters", maxNameLength))
	}
	return trimmed, nil
}

func (s *service) Create(ctx context.Context, name string, description *string) (*domain.Exercise, error) {
	trimmed, err := validateName(name)
	if err != nil {
		return nil, err
	}

	e := domain.NewExercise(trimmed, description)
	if err := s.store.Exercises().Create(ctx, e); err != nil {
		return nil, s.fail("create exercise", err, map[string]any{"name": trimmed})
	}

	s.log.Info("exercise created", map[string]any{"exercise_id": e.ID})
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	e, err := s.store.Exercises().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get exercise", err, map[string]any{"exercise_id": id})
	}
	return e, nil
}

func (s *service) List(ctx context.Context) ([]*domain.Exercise, error) {
	items, err := s.store.Exercises().List(ctx)
	if err != nil {
		return nil, s.fail("list exercises", err, map[string]any{})
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Exercise, error) {
	var name string
	if in.Name != nil {
		trimmed, err := validateName(*in.Name)
		if err != nil {
			return nil, err
		}
		name = trimmed
	}

	e, err := s.store.Exercises().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("update exercise", err, map[string]any{"exercise_id": id})
	}
	if in.Name != nil {
		e.Name = name
	}
	if in.Description != nil {
		e.Description = domain.TrimOptional(in.Description)
	}

	if err := s.store.Exercises().Update(ctx, e); err != nil {
		return nil, s.fail("update exercise", err, map[string]any{"exercise_id": id})
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if _, err := tx.Exercises().GetByID(ctx, id); err != nil {
			return err
		}
		referenced, err := tx.Exercises().IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return repo.ErrExerciseInUse
		}
		// Параллельная вставка ссылки между проверкой и удалением ловится ограничением RESTRICT.
		return tx.Exercises().Delete(ctx, id)
	})
	if errors.Is(err, repo.ErrExerciseInUse) {
		observability.RecordBlockedExerciseDelete()
	}
	if err != nil {
		return s.fail("delete exercise", err, map[string]any{"exercise_id": id})
	}

	s.log.Info("exercise deleted", map[string]any{"exercise_id": id})
	return nil
}

func (s *service) fail(op string, err error, fields map[string]any) error {
	appErr := apperror.As(storeerr.Translate(err, apperror.EntityExercise, apperror.EntityExercise))
	if appErr.Kind == apperror.KindInternal {
		fields["err"] = err
		s.log.Error(op+" failed", fields)
	}
	return appErr
}
