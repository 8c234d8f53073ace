package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// WorkoutRepository реализует repo.WorkoutRepository на GORM/Postgres.
// Вложенные записи ORM не используются: каждая строка пишется явно,
// а атомарность обеспечивает внешняя транзакция.
type WorkoutRepository struct {
	db *gorm.DB
}

var _ repo.WorkoutRepository = (*WorkoutRepository)(nil)

// NewWorkoutRepository создает новый репозиторий тренировок.
func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// withExercises подгружает упражнения тренировки вместе с каталогом.
func withExercises(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Exercises.Exercise")
}

// translateWorkoutExerciseError переводит нарушения ограничений workout_exercises.
func translateWorkoutExerciseError(err error) error {
	switch {
	case isUniqueViolation(err, constraintWorkoutExerciseOrder):
		return repo.ErrDuplicateWorkoutExercise
	case isForeignKeyViolation(err):
		return repo.ErrReferenceMissing
	default:
		return err
	}
}

// Create вставляет строку тренировки.
func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	model := fromDomainWorkout(w)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return repo.ErrReferenceMissing
		}
		return err
	}
	w.ID = model.ID
	return nil
}

// GetByID возвращает агрегат тренировки.
func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	var model pgWorkout
	err := withExercises(r.db.WithContext(ctx)).Where("id = ?", id).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// LockByID выполняет SELECT ... FOR UPDATE по строке тренировки.
// Конкурентные replace-all по одной тренировке сериализуются на этой блокировке.
func (r *WorkoutRepository) LockByID(ctx context.Context, id int64) (*domain.Workout, error) {
	var model pgWorkout
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// ListByUser возвращает тренировки пользователя с упражнениями.
func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Workout, error) {
	var models []pgWorkout
	err := withExercises(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Workout, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

// ListIDsByUser возвращает идентификаторы тренировок пользователя.
func (r *WorkoutRepository) ListIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&pgWorkout{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateFields обновляет скалярные поля тренировки.
func (r *WorkoutRepository) UpdateFields(ctx context.Context, w *domain.Workout) error {
	result := r.db.WithContext(ctx).
		Model(&pgWorkout{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"name":        w.Name,
			"description": w.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete удаляет строку тренировки.
func (r *WorkoutRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&pgWorkout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// CreateExercises вставляет записи одним INSERT ... RETURNING id.
func (r *WorkoutRepository) CreateExercises(ctx context.Context, items []*domain.WorkoutExercise) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*pgWorkoutExercise, 0, len(items))
	for _, item := range items {
		models = append(models, fromDomainWorkoutExercise(item))
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&models).Error; err != nil {
		return translateWorkoutExerciseError(err)
	}
	for i := range models {
		items[i].ID = models[i].ID
	}
	return nil
}

// GetExercise возвращает одну запись WorkoutExercise.
func (r *WorkoutRepository) GetExercise(ctx context.Context, id int64) (*domain.WorkoutExercise, error) {
	var model pgWorkoutExercise
	err := r.db.WithContext(ctx).Preload("Exercise").Where("id = ?", id).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// ListExerciseIDs возвращает идентификаторы записей тренировки.
func (r *WorkoutRepository) ListExerciseIDs(ctx context.Context, workoutID int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&pgWorkoutExercise{}).
		Where("workout_id = ?", workoutID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateExercise обновляет параметры одной записи.
func (r *WorkoutRepository) UpdateExercise(ctx context.Context, item *domain.WorkoutExercise) error {
	result := r.db.WithContext(ctx).
		Model(&pgWorkoutExercise{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"sets":        item.Sets,
			"repetitions": item.Repetitions,
			"weight":      item.Weight,
			"sort_order":  item.Order,
		})
	if result.Error != nil {
		return translateWorkoutExerciseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DeleteExercise удаляет одну запись.
func (r *WorkoutRepository) DeleteExercise(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&pgWorkoutExercise{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DeleteExercisesByWorkouts удаляет все записи указанных тренировок.
func (r *WorkoutRepository) DeleteExercisesByWorkouts(ctx context.Context, workoutIDs []int64) error {
	if len(workoutIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("workout_id IN ?", workoutIDs).
		Delete(&pgWorkoutExercise{}).Error
}
