package memory

import (
	"context"
	"sort"

	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// WorkoutRepository реализует repo.WorkoutRepository в памяти.
type WorkoutRepository struct {
	b backend
}

var _ repo.WorkoutRepository = (*WorkoutRepository)(nil)

// copyWorkout копирует только строку тренировки, без списка упражнений.
func copyWorkout(w *domain.Workout) *domain.Workout {
	return &domain.Workout{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Description: clonePtr(w.Description),
		CreatedAt:   w.CreatedAt,
	}
}

func copyWorkoutExercise(we *domain.WorkoutExercise) *domain.WorkoutExercise {
	return &domain.WorkoutExercise{
		ID:          we.ID,
		WorkoutID:   we.WorkoutID,
		ExerciseID:  we.ExerciseID,
		Sets:        we.Sets,
		Repetitions: clonePtr(we.Repetitions),
		Weight:      clonePtr(we.Weight),
		Order:       we.Order,
	}
}

// expandedExercise возвращает копию записи с раскрытым упражнением каталога.
func expandedExercise(st *state, we *domain.WorkoutExercise) *domain.WorkoutExercise {
	c := copyWorkoutExercise(we)
	if e, ok := st.exercises[we.ExerciseID]; ok {
		c.Exercise = copyExercise(e)
	}
	return c
}

// aggregate собирает тренировку со списком упражнений по возрастанию order.
func aggregate(st *state, w *domain.Workout) *domain.Workout {
	out := copyWorkout(w)
	out.Exercises = make([]*domain.WorkoutExercise, 0)
	for _, we := range st.workoutExercises {
		if we.WorkoutID == w.ID {
			out.Exercises = append(out.Exercises, expandedExercise(st, we))
		}
	}
	domain.SortByOrder(out.Exercises)
	return out
}

// checkWorkoutExercise повторяет внешние ключи и уникальный индекс workout_exercises.
func checkWorkoutExercise(st *state, we *domain.WorkoutExercise) error {
	if _, ok := st.workouts[we.WorkoutID]; !ok {
		return repo.ErrReferenceMissing
	}
	if _, ok := st.exercises[we.ExerciseID]; !ok {
		return repo.ErrReferenceMissing
	}
	for _, existing := range st.workoutExercises {
		if existing.ID == we.ID {
			continue
		}
		if existing.WorkoutID == we.WorkoutID && existing.Key() == we.Key() {
			return repo.ErrDuplicateWorkoutExercise
		}
	}
	return nil
}

func (r *WorkoutRepository) Create(ctx context.Context, w *domain.Workout) error {
	return r.b.write(ctx, func(st *state) error {
		if _, ok := st.users[w.UserID]; !ok {
			return repo.ErrReferenceMissing
		}
		st.seqWorkout++
		w.ID = st.seqWorkout
		st.workouts[w.ID] = copyWorkout(w)
		return nil
	})
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id int64) (*domain.Workout, error) {
	var found *domain.Workout
	err := r.b.read(ctx, func(st *state) error {
		w, ok := st.workouts[id]
		if !ok {
			return repo.ErrNotFound
		}
		found = aggregate(st, w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// LockByID внутри транзакции уже сериализован txMu, поэтому это обычное чтение строки.
func (r *WorkoutRepository) LockByID(ctx context.Context, id int64) (*domain.Workout, error) {
	var found *domain.Workout
	err := r.b.read(ctx, func(st *state) error {
		w, ok := st.workouts[id]
		if !ok {
			return repo.ErrNotFound
		}
		found = copyWorkout(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Workout, error) {
	var out []*domain.Workout
	err := r.b.read(ctx, func(st *state) error {
		out = make([]*domain.Workout, 0)
		for _, w := range st.workouts {
			if w.UserID == userID {
				out = append(out, aggregate(st, w))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *WorkoutRepository) ListIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := r.b.read(ctx, func(st *state) error {
		for id, w := range st.workouts {
			if w.UserID == userID {
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *WorkoutRepository) UpdateFields(ctx context.Context, w *domain.Workout) error {
	return r.b.write(ctx, func(st *state) error {
		existing, ok := st.workouts[w.ID]
		if !ok {
			return repo.ErrNotFound
		}
		updated := copyWorkout(existing)
		updated.Name = w.Name
		updated.Description = clonePtr(w.Description)
		st.workouts[w.ID] = updated
		return nil
	})
}

func (r *WorkoutRepository) Delete(ctx context.Context, id int64) error {
	return r.b.write(ctx, func(st *state) error {
		if _, ok := st.workouts[id]; !ok {
			return repo.ErrNotFound
		}
		cascadeDeleteWorkout(st, id)
		return nil
	})
}

// CreateExercises вставляет весь набор или ничего.
func (r *WorkoutRepository) CreateExercises(ctx context.Context, items []*domain.WorkoutExercise) error {
	if len(items) == 0 {
		return nil
	}
	return r.b.write(ctx, func(st *state) error {
		ids := make([]int64, len(items))
		for i, item := range items {
			candidate := copyWorkoutExercise(item)
			candidate.ID = 0
			if err := checkWorkoutExercise(st, candidate); err != nil {
				return err
			}
			st.seqWorkoutExercise++
			candidate.ID = st.seqWorkoutExercise
			st.workoutExercises[candidate.ID] = candidate
			ids[i] = candidate.ID
		}
		for i, item := range items {
			item.ID = ids[i]
		}
		return nil
	})
}

func (r *WorkoutRepository) GetExercise(ctx context.Context, id int64) (*domain.WorkoutExercise, error) {
	var found *domain.WorkoutExercise
	err := r.b.read(ctx, func(st *state) error {
		we, ok := st.workoutExercises[id]
		if !ok {
			return repo.ErrNotFound
		}
		found = expandedExercise(st, we)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *WorkoutRepository) ListExerciseIDs(ctx context.Context, workoutID int64) ([]int64, error) {
	ids := []int64{}
	err := r.b.read(ctx, func(st *state) error {
		for id, we := range st.workoutExercises {
			if we.WorkoutID == workoutID {
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *WorkoutRepository) UpdateExercise(ctx context.Context, item *domain.WorkoutExercise) error {
	return r.b.write(ctx, func(st *state) error {
		existing, ok := st.workoutExercises[item.ID]
		if !ok {
			return repo.ErrNotFound
		}
		updated := copyWorkoutExercise(existing)
		updated.Sets = item.Sets
		updated.Repetitions = clonePtr(item.Repetitions)
		updated.Weight = clonePtr(item.Weight)
		updated.Order = item.Order
		if err := checkWorkoutExercise(st, updated); err != nil {
			return err
		}
		st.workoutExercises[item.ID] = updated
		return nil
	})
}

func (r *WorkoutRepository) DeleteExercise(ctx context.Context, id int64) error {
	return r.b.write(ctx, func(st *state) error {
		if _, ok := st.workoutExercises[id]; !ok {
			return repo.ErrNotFound
		}
		cascadeDeleteWorkoutExercise(st, id)
		return nil
	})
}

func (r *WorkoutRepository) DeleteExercisesByWorkouts(ctx context.Context, workoutIDs []int64) error {
	if len(workoutIDs) == 0 {
		return nil
	}
	targets := make(map[int64]struct{}, len(workoutIDs))
	for _, id := range workoutIDs {
		targets[id] = struct{}{}
	}
	return r.b.write(ctx, func(st *state) error {
		for id, we := range st.workoutExercises {
			if _, ok := targets[we.WorkoutID]; ok {
				cascadeDeleteWorkoutExercise(st, id)
			}
		}
		return nil
	})
}
