package memory

import (
	"context"
	"sort"

	domain "github.com/petedillo/fitness-api/internal/domain/exercise"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// ExerciseRepository реализует repo.ExerciseRepository в памяти.
type ExerciseRepository struct {
	b backend
}

var _ repo.ExerciseRepository = (*ExerciseRepository)(nil)

func copyExercise(e *domain.Exercise) *domain.Exercise {
	c := *e
	c.Description = clonePtr(e.Description)
	return &c
}

func checkExerciseUnique(st *state, e *domain.Exercise) error {
	for _, existing := range st.exercises {
		if existing.ID != e.ID && existing.Name == e.Name {
			return repo.ErrExerciseNameExists
		}
	}
	return nil
}

func isExerciseReferenced(st *state, id int64) bool {
	for _, we := range st.workoutExercises {
		if we.ExerciseID == id {
			return true
		}
	}
	return false
}

func (r *ExerciseRepository) Create(ctx context.Context, e *domain.Exercise) error {
	return r.b.write(ctx, func(st *state) error {
		if err := checkExerciseUnique(st, e); err != nil {
			return err
		}
		st.seqExercise++
		e.ID = st.seqExercise
		st.exercises[e.ID] = copyExercise(e)
		return nil
	})
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var found *domain.Exercise
	err := r.b.read(ctx, func(st *state) error {
		e, ok := st.exercises[id]
		if !ok {
			return repo.ErrNotFound
		}
		found = copyExercise(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *ExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var found *domain.Exercise
	err := r.b.read(ctx, func(st *state) error {
		for _, e := range st.exercises {
			if e.Name == name {
				found = copyExercise(e)
				return nil
			}
		}
		return repo.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// List возвращает каталог, отсортированный по названию.
func (r *ExerciseRepository) List(ctx context.Context) ([]*domain.Exercise, error) {
	var out []*domain.Exercise
	err := r.b.read(ctx, func(st *state) error {
		out = make([]*domain.Exercise, 0, len(st.exercises))
		for _, e := range st.exercises {
			out = append(out, copyExercise(e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ExerciseRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Exercise, error) {
	out := make([]*domain.Exercise, 0, len(ids))
	err := r.b.read(ctx, func(st *state) error {
		seen := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if e, ok := st.exercises[id]; ok {
				out = append(out, copyExercise(e))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ExerciseRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	found := make([]int64, 0, len(ids))
	err := r.b.read(ctx, func(st *state) error {
		seen := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if _, ok := st.exercises[id]; ok {
				found = append(found, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })
	return found, nil
}

func (r *ExerciseRepository) IsReferenced(ctx context.Context, id int64) (bool, error) {
	var referenced bool
	err := r.b.read(ctx, func(st *state) error {
		referenced = isExerciseReferenced(st, id)
		return nil
	})
	return referenced, err
}

func (r *ExerciseRepository) Update(ctx context.Context, e *domain.Exercise) error {
	return r.b.write(ctx, func(st *state) error {
		existing, ok := st.exercises[e.ID]
		if !ok {
			return repo.ErrNotFound
		}
		if err := checkExerciseUnique(st, e); err != nil {
			return err
		}
		updated := copyExercise(existing)
		updated.Name = e.Name
		updated.Description = clonePtr(e.Description)
		st.exercises[e.ID] = updated
		return nil
	})
}

// Delete повторяет ON DELETE RESTRICT для workout_exercises.exercise_id.
func (r *ExerciseRepository) Delete(ctx context.Context, id int64) error {
	return r.b.write(ctx, func(st *state) error {
		if _, ok := st.exercises[id]; !ok {
			return repo.ErrNotFound
		}
		if isExerciseReferenced(st, id) {
			return repo.ErrExerciseInUse
		}
		delete(st.exercises, id)
		return nil
	})
}
