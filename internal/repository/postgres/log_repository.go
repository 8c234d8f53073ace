package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// LogRepository реализует repo.LogRepository на GORM/Postgres.
type LogRepository struct {
	db *gorm.DB
}

var _ repo.LogRepository = (*LogRepository)(nil)

// NewLogRepository создает новый репозиторий журнала подходов.
func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create создает запись журнала.
func (r *LogRepository) Create(ctx context.Context, l *domain.Log) error {
	model := fromDomainLog(l)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isForeignKeyViolation(err) {
			return repo.ErrReferenceMissing
		}
		return err
	}
	l.ID = model.ID
	return nil
}

// GetByID возвращает запись журнала.
func (r *LogRepository) GetByID(ctx context.Context, id int64) (*domain.Log, error) {
	var model pgLog
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

func (r *LogRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Log, error) {
	var models []pgLog
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("logged_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Log, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

// ListByWorkout возвращает записи тренировки.
func (r *LogRepository) ListByWorkout(ctx context.Context, workoutID int64) ([]*domain.Log, error) {
	return r.list(ctx, "workout_id = ?", workoutID)
}

// ListByUser возвращает записи пользователя.
func (r *LogRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Log, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// Update обновляет изменяемые поля записи.
func (r *LogRepository) Update(ctx context.Context, l *domain.Log) error {
	result := r.db.WithContext(ctx).
		Model(&pgLog{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"set_number":     l.SetNumber,
			"reps_completed": l.RepsCompleted,
			"weight_used":    l.WeightUsed,
			"notes":          l.Notes,
			"logged_at":      l.Timestamp,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete удаляет запись журнала.
func (r *LogRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&pgLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DeleteByWorkouts удаляет записи указанных тренировок.
func (r *LogRepository) DeleteByWorkouts(ctx context.Context, workoutIDs []int64) error {
	if len(workoutIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("workout_id IN ?", workoutIDs).Delete(&pgLog{}).Error
}

// DeleteByWorkoutExercises удаляет записи указанных WorkoutExercise.
func (r *LogRepository) DeleteByWorkoutExercises(ctx context.Context, workoutExerciseIDs []int64) error {
	if len(workoutExerciseIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("workout_exercise_id IN ?", workoutExerciseIDs).Delete(&pgLog{}).Error
}

// DeleteByUser удаляет записи пользователя.
func (r *LogRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&pgLog{}).Error
}
