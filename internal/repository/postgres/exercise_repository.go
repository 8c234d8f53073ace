package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/petedillo/fitness-api/internal/domain/exercise"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// ExerciseRepository реализует repo.ExerciseRepository на GORM/Postgres.
type ExerciseRepository struct {
	db *gorm.DB
}

var _ repo.ExerciseRepository = (*ExerciseRepository)(nil)

// NewExerciseRepository создает новый репозиторий каталога упражнений.
func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// Create создает упражнение.
func (r *ExerciseRepository) Create(ctx context.Context, e *domain.Exercise) error {
	model := fromDomainExercise(e)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err, constraintExercisesName) {
			return repo.ErrExerciseNameExists
		}
		return err
	}
	e.ID = model.ID
	return nil
}

func (r *ExerciseRepository) oneByCondition(ctx context.Context, query string, args ...interface{}) (*domain.Exercise, error) {
	var model pgExercise
	err := r.db.WithContext(ctx).Where(query, args...).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.toDomain(), nil
}

// GetByID возвращает упражнение по идентификатору.
func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	return r.oneByCondition(ctx, "id = ?", id)
}

// GetByName возвращает упражнение по уникальному названию.
func (r *ExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return r.oneByCondition(ctx, "name = ?", name)
}

// List возвращает весь каталог.
func (r *ExerciseRepository) List(ctx context.Context) ([]*domain.Exercise, error) {
	var models []pgExercise
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Exercise, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

// GetByIDs возвращает найденные упражнения из набора.
func (r *ExerciseRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Exercise, error) {
	if len(ids) == 0 {
		return []*domain.Exercise{}, nil
	}
	var models []pgExercise
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Exercise, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDomain())
	}
	return out, nil
}

// ExistingIDs возвращает подмножество существующих идентификаторов.
func (r *ExerciseRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := make([]int64, 0, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).
		Model(&pgExercise{}).
		Where("id IN ?", ids).
		Order("id ASC").
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// IsReferenced проверяет наличие ссылок из workout_exercises.
func (r *ExerciseRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&pgWorkoutExercise{}).
		Where("exercise_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update обновляет название и описание.
func (r *ExerciseRepository) Update(ctx context.Context, e *domain.Exercise) error {
	result := r.db.WithContext(ctx).
		Model(&pgExercise{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"name":        e.Name,
			"description": e.Description,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error, constraintExercisesName) {
			return repo.ErrExerciseNameExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete удаляет упражнение. Ограничение ON DELETE RESTRICT защищает от гонки
// с одновременным добавлением ссылки.
func (r *ExerciseRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&pgExercise{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error, constraintWorkoutExerciseToExer) {
			return repo.ErrExerciseInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
