package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	exercisedomain "github.com/petedillo/fitness-api/internal/domain/exercise"
	userdomain "github.com/petedillo/fitness-api/internal/domain/user"
	workoutdomain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

func intPtr(v int) *int { return &v }

type fixture struct {
	store    *Store
	user     *userdomain.User
	squat    *exercisedomain.Exercise
	pushup   *exercisedomain.Exercise
	workout  *workoutdomain.Workout
	entryIDs []int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := NewStore()

	u := userdomain.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, s.Users().Create(ctx, u))

	squat := exercisedomain.NewExercise("Squat", nil)
	pushup := exercisedomain.NewExercise("Push-up", nil)
	require.NoError(t, s.Exercises().Create(ctx, squat))
	require.NoError(t, s.Exercises().Create(ctx, pushup))

	w := workoutdomain.NewWorkout(u.ID, "Leg Day", nil)
	require.NoError(t, s.Workouts().Create(ctx, w))

	items := []*workoutdomain.WorkoutExercise{
		workoutdomain.NewWorkoutExercise(w.ID, workoutdomain.ExerciseInput{ExerciseID: squat.ID, Order: intPtr(2)}),
		workoutdomain.NewWorkoutExercise(w.ID, workoutdomain.ExerciseInput{ExerciseID: pushup.ID, Order: intPtr(1)}),
	}
	require.NoError(t, s.Workouts().CreateExercises(ctx, items))

	return &fixture{
		store:    s,
		user:     u,
		squat:    squat,
		pushup:   pushup,
		workout:  w,
		entryIDs: []int64{items[0].ID, items[1].ID},
	}
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Users().Create(ctx, userdomain.NewUser("bob", "bob@example.com", "h")))

	err := s.Users().Create(ctx, userdomain.NewUser("bobby", "bob@example.com", "h"))
	require.ErrorIs(t, err, repo.ErrEmailExists)

	err = s.Users().Create(ctx, userdomain.NewUser("bob", "other@example.com", "h"))
	require.ErrorIs(t, err, repo.ErrUsernameExists)

	_, err = s.Users().GetByID(ctx, 42)
	require.ErrorIs(t, err, repo.ErrNotFound)
}

func TestWorkoutRepository_GetByIDSortsByOrderAndExpands(t *testing.T) {
	f := newFixture(t)

	w, err := f.store.Workouts().GetByID(context.Background(), f.workout.ID)
	require.NoError(t, err)
	require.Len(t, w.Exercises, 2)
	require.Equal(t, 1, w.Exercises[0].Order)
	require.Equal(t, f.pushup.ID, w.Exercises[0].ExerciseID)
	require.NotNil(t, w.Exercises[0].Exercise)
	require.Equal(t, "Push-up", w.Exercises[0].Exercise.Name)
	require.Equal(t, 2, w.Exercises[1].Order)
}

func TestWorkoutRepository_CreateExercisesIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items := []*workoutdomain.WorkoutExercise{
		workoutdomain.NewWorkoutExercise(f.workout.ID, workoutdomain.ExerciseInput{ExerciseID: f.squat.ID, Order: intPtr(5)}),
		workoutdomain.NewWorkoutExercise(f.workout.ID, workoutdomain.ExerciseInput{ExerciseID: f.squat.ID, Order: intPtr(2)}),
	}
	err := f.store.Workouts().CreateExercises(ctx, items)
	require.ErrorIs(t, err, repo.ErrDuplicateWorkoutExercise)

	ids, err := f.store.Workouts().ListExerciseIDs(ctx, f.workout.ID)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	require.Zero(t, items[0].ID)
}

func TestWorkoutRepository_CreateExercisesMissingReference(t *testing.T) {
	f := newFixture(t)

	items := []*workoutdomain.WorkoutExercise{
		workoutdomain.NewWorkoutExercise(f.workout.ID, workoutdomain.ExerciseInput{ExerciseID: 999}),
	}
	err := f.store.Workouts().CreateExercises(context.Background(), items)
	require.ErrorIs(t, err, repo.ErrReferenceMissing)
}

func TestExerciseRepository_DeleteRestrictedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.store.Exercises().Delete(ctx, f.squat.ID), repo.ErrExerciseInUse)

	referenced, err := f.store.Exercises().IsReferenced(ctx, f.squat.ID)
	require.NoError(t, err)
	require.True(t, referenced)

	unused := exercisedomain.NewExercise("Plank", nil)
	require.NoError(t, f.store.Exercises().Create(ctx, unused))
	require.NoError(t, f.store.Exercises().Delete(ctx, unused.ID))
	require.ErrorIs(t, f.store.Exercises().Delete(ctx, unused.ID), repo.ErrNotFound)
}

func TestExerciseRepository_ExistingIDsIsPureRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ids := []int64{f.squat.ID, 777, f.squat.ID, f.pushup.ID}
	first, err := f.store.Exercises().ExistingIDs(ctx, ids)
	require.NoError(t, err)
	second, err := f.store.Exercises().ExistingIDs(ctx, ids)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.ElementsMatch(t, []int64{f.squat.ID, f.pushup.ID}, first)
}

func TestStore_TransactionRollbackOnError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if err := tx.Workouts().DeleteExercisesByWorkouts(ctx, []int64{f.workout.ID}); err != nil {
			return err
		}
		ids, err := tx.Workouts().ListExerciseIDs(ctx, f.workout.ID)
		require.NoError(t, err)
		require.Empty(t, ids)
		return boom
	})
	require.ErrorIs(t, err, boom)

	ids, err := f.store.Workouts().ListExerciseIDs(ctx, f.workout.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, f.entryIDs, ids)
}

func TestStore_TransactionRollbackOnCancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := f.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		if err := tx.Workouts().Delete(ctx, f.workout.ID); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = f.store.Workouts().GetByID(context.Background(), f.workout.ID)
	require.NoError(t, err)
}

func TestStore_ReadersDoNotSeeUncommittedChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- f.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
			if err := tx.Workouts().DeleteExercisesByWorkouts(ctx, []int64{f.workout.ID}); err != nil {
				return err
			}
			close(inside)
			<-release
			return nil
		})
	}()

	<-inside
	w, err := f.store.Workouts().GetByID(ctx, f.workout.ID)
	require.NoError(t, err)
	require.Len(t, w.Exercises, 2)
	close(release)
	require.NoError(t, <-done)

	w, err = f.store.Workouts().GetByID(ctx, f.workout.ID)
	require.NoError(t, err)
	require.Empty(t, w.Exercises)
}

func TestStore_ClosedTransactionRepositoriesFail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var leaked repo.Repositories
	require.NoError(t, f.store.WithinTransaction(ctx, func(tx repo.Repositories) error {
		leaked = tx
		return nil
	}))

	_, err := leaked.Users().GetByID(ctx, f.user.ID)
	require.ErrorIs(t, err, errTxClosed)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	l := workoutdomain.NewLog(f.user.ID, f.workout.ID, f.entryIDs[0], 1, time.Time{})
	require.NoError(t, f.store.Logs().Create(ctx, l))

	require.NoError(t, f.store.Users().Delete(ctx, f.user.ID))

	_, err := f.store.Workouts().GetByID(ctx, f.workout.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)
	_, err = f.store.Logs().GetByID(ctx, l.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)
	referenced, err := f.store.Exercises().IsReferenced(ctx, f.squat.ID)
	require.NoError(t, err)
	require.False(t, referenced)
}

func TestStore_ConcurrentWritesAreSerialized(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := string(rune('A' + i))
			_ = s.Exercises().Create(ctx, exercisedomain.NewExercise(name, nil))
		}(i)
	}
	wg.Wait()

	all, err := s.Exercises().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 20)
}
