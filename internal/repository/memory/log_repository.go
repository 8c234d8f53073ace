package memory

import (
	"context"
	"sort"

	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// LogRepository реализует repo.LogRepository в памяти.
type LogRepository struct {
	b backend
}

var _ repo.LogRepository = (*LogRepository)(nil)

func copyLog(l *domain.Log) *domain.Log {
	c := *l
	c.RepsCompleted = clonePtr(l.RepsCompleted)
	c.WeightUsed = clonePtr(l.WeightUsed)
	c.Notes = clonePtr(l.Notes)
	return &c
}

func (r *LogRepository) Create(ctx context.Context, l *domain.Log) error {
	return r.b.write(ctx, func(st *state) error {
		if _, ok := st.users[l.UserID]; !ok {
			return repo.ErrReferenceMissing
		}
		if _, ok := st.workouts[l.WorkoutID]; !ok {
			return repo.ErrReferenceMissing
		}
		if _, ok := st.workoutExercises[l.WorkoutExerciseID]; !ok {
			return repo.ErrReferenceMissing
		}
		st.seqLog++
		l.ID = st.seqLog
		st.logs[l.ID] = copyLog(l)
		return nil
	})
}

func (r *LogRepository) GetByID(ctx context.Context, id int64) (*domain.Log, error) {
	var found *domain.Log
	err := r.b.read(ctx, func(st *state) error {
		l, ok := st.logs[id]
		if !ok {
			return repo.ErrNotFound
		}
		found = copyLog(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *LogRepository) list(ctx context.Context, match func(l *domain.Log) bool) ([]*domain.Log, error) {
	out := make([]*domain.Log, 0)
	err := r.b.read(ctx, func(st *state) error {
		for _, l := range st.logs {
			if match(l) {
				out = append(out, copyLog(l))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LogRepository) ListByWorkout(ctx context.Context, workoutID int64) ([]*domain.Log, error) {
	return r.list(ctx, func(l *domain.Log) bool { return l.WorkoutID == workoutID })
}

func (r *LogRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Log, error) {
	return r.list(ctx, func(l *domain.Log) bool { return l.UserID == userID })
}

func (r *LogRepository) Update(ctx context.Context, l *domain.Log) error {
	return r.b.write(ctx, func(st *state) error {
		existing, ok := st.logs[l.ID]
		if !ok {
			return repo.ErrNotFound
		}
		updated := copyLog(existing)
		updated.SetNumber = l.SetNumber
		updated.RepsCompleted = clonePtr(l.RepsCompleted)
		updated.WeightUsed = clonePtr(l.WeightUsed)
		updated.Notes = clonePtr(l.Notes)
		updated.Timestamp = l.Timestamp
		st.logs[l.ID] = updated
		return nil
	})
}

func (r *LogRepository) Delete(ctx context.Context, id int64) error {
	return r.b.write(ctx, func(st *state) error {
		if _, ok := st.logs[id]; !ok {
			return repo.ErrNotFound
		}
		delete(st.logs, id)
		return nil
	})
}

func (r *LogRepository) deleteWhere(ctx context.Context, match func(l *domain.Log) bool) error {
	return r.b.write(ctx, func(st *state) error {
		for id, l := range st.logs {
			if match(l) {
				delete(st.logs, id)
			}
		}
		return nil
	})
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (r *LogRepository) DeleteByWorkouts(ctx context.Context, workoutIDs []int64) error {
	if len(workoutIDs) == 0 {
		return nil
	}
	set := idSet(workoutIDs)
	return r.deleteWhere(ctx, func(l *domain.Log) bool {
		_, ok := set[l.WorkoutID]
		return ok
	})
}

func (r *LogRepository) DeleteByWorkoutExercises(ctx context.Context, workoutExerciseIDs []int64) error {
	if len(workoutExerciseIDs) == 0 {
		return nil
	}
	set := idSet(workoutExerciseIDs)
	return r.deleteWhere(ctx, func(l *domain.Log) bool {
		_, ok := set[l.WorkoutExerciseID]
		return ok
	})
}

func (r *LogRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.deleteWhere(ctx, func(l *domain.Log) bool { return l.UserID == userID })
}
