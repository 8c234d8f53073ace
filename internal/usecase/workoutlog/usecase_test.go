package workoutlog_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/apperror"
	exercisedomain "github.com/petedillo/fitness-api/internal/domain/exercise"
	userdomain "github.com/petedillo/fitness-api/internal/domain/user"
	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	"github.com/petedillo/fitness-api/internal/repository/memory"
	workoutuc "github.com/petedillo/fitness-api/internal/usecase/workout"
	"github.com/petedillo/fitness-api/internal/usecase/workoutlog"
	"github.com/petedillo/fitness-api/pkg/logger"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

type fixture struct {
	ctx   context.Context
	svc   workoutlog.Service
	user  *userdomain.User
	first *domain.Workout
	other *domain.Workout
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	u := userdomain.NewUser("alice", "alice@example.com", "hash")
	require.NoError(t, store.Users().Create(ctx, u))
	squat := exercisedomain.NewExercise("Squat", nil)
	require.NoError(t, store.Exercises().Create(ctx, squat))

	workouts := workoutuc.NewService(store, logger.Nop())
	create := func(name string) *domain.Workout {
		w, err := workouts.Create(ctx, workoutuc.CreateInput{
			UserID:    u.ID,
			Name:      name,
			Exercises: []domain.ExerciseInput{{ExerciseID: squat.ID}},
		})
		require.NoError(t, err)
		return w
	}

	return &fixture{
		ctx:   ctx,
		svc:   workoutlog.NewService(store, logger.Nop()),
		user:  u,
		first: create("Leg Day"),
		other: create("Another Leg Day"),
	}
}

func (f *fixture) input(setNumber int, ts time.Time) workoutlog.CreateInput {
	return workoutlog.CreateInput{
		UserID:            f.user.ID,
		WorkoutID:         f.first.ID,
		WorkoutExerciseID: f.first.Exercises[0].ID,
		SetNumber:         setNumber,
		Timestamp:         ts,
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	in := f.input(1, time.Time{})
	in.RepsCompleted = intPtr(8)
	in.WeightUsed = floatPtr(100)
	in.Notes = strPtr("  easy ")

	l, err := f.svc.Create(f.ctx, in)
	require.NoError(t, err)
	require.NotZero(t, l.ID)
	require.False(t, l.Timestamp.IsZero())
	require.Equal(t, "easy", *l.Notes)

	got, err := f.svc.GetByID(f.ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, 8, *got.RepsCompleted)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(in *workoutlog.CreateInput)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "zero set number",
			mutate: func(in *workoutlog.CreateInput) { in.SetNumber = 0 },
			check: func(t *testing.T, err error) {
				require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			},
		},
		{
			name:   "negative reps",
			mutate: func(in *workoutlog.CreateInput) { in.RepsCompleted = intPtr(-1) },
			check: func(t *testing.T, err error) {
				require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			},
		},
		{
			name:   "set number above int4 range",
			mutate: func(in *workoutlog.CreateInput) { in.SetNumber = math.MaxInt32 + 1 },
			check: func(t *testing.T, err error) {
				require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				require.Equal(t, "setNumber must be at most 2147483647", apperror.As(err).Message)
			},
		},
		{
			name:   "reps above int4 range",
			mutate: func(in *workoutlog.CreateInput) { in.RepsCompleted = intPtr(3000000000) },
			check: func(t *testing.T, err error) {
				require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				require.Equal(t, "repsCompleted must be at most 2147483647", apperror.As(err).Message)
			},
		},
		{
			name:   "unknown user",
			mutate: func(in *workoutlog.CreateInput) { in.UserID = 404 },
			check: func(t *testing.T, err error) {
				require.True(t, apperror.IsNotFound(err, apperror.EntityUser))
			},
		},
		{
			name:   "unknown workout",
			mutate: func(in *workoutlog.CreateInput) { in.WorkoutID = 404 },
			check: func(t *testing.T, err error) {
				require.True(t, apperror.IsNotFound(err, apperror.EntityWorkout))
			},
		},
		{
			name:   "unknown workout exercise",
			mutate: func(in *workoutlog.CreateInput) { in.WorkoutExerciseID = 404 },
			check: func(t *testing.T, err error) {
				require.True(t, apperror.IsNotFound(err, apperror.EntityWorkoutExercise))
			},
		},
		{
			name: "exercise of another workout",
			mutate: func(in *workoutlog.CreateInput) {
				in.WorkoutExerciseID = f.other.Exercises[0].ID
			},
			check: func(t *testing.T, err error) {
				require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
				require.Equal(t, workoutlog.MsgForeignWorkoutExercise, apperror.As(err).Message)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(1, time.Time{})
			tt.mutate(&in)
			_, err := f.svc.Create(f.ctx, in)
			tt.check(t, err)
		})
	}
}

func TestList_OrderedByTimestamp(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	late, err := f.svc.Create(f.ctx, f.input(2, base.Add(time.Minute)))
	require.NoError(t, err)
	early, err := f.svc.Create(f.ctx, f.input(1, base))
	require.NoError(t, err)

	byWorkout, err := f.svc.ListByWorkout(f.ctx, f.first.ID)
	require.NoError(t, err)
	require.Len(t, byWorkout, 2)
	require.Equal(t, early.ID, byWorkout[0].ID)
	require.Equal(t, late.ID, byWorkout[1].ID)

	byUser, err := f.svc.ListByUser(f.ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 2)

	empty, err := f.svc.ListByWorkout(f.ctx, f.other.ID)
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = f.svc.ListByWorkout(f.ctx, 404)
	require.True(t, apperror.IsNotFound(err, apperror.EntityWorkout))
	_, err = f.svc.ListByUser(f.ctx, 404)
	require.True(t, apperror.IsNotFound(err, apperror.EntityUser))
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	l, err := f.svc.Create(f.ctx, f.input(1, time.Time{}))
	require.NoError(t, err)

	updated, err := f.svc.Update(f.ctx, l.ID, workoutlog.Patch{SetNumber: intPtr(3), Notes: strPtr("heavy")})
	require.NoError(t, err)
	require.Equal(t, 3, updated.SetNumber)
	require.Equal(t, "heavy", *updated.Notes)

	_, err = f.svc.Update(f.ctx, l.ID, workoutlog.Patch{WeightUsed: floatPtr(-5)})
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.svc.Update(f.ctx, l.ID, workoutlog.Patch{SetNumber: intPtr(math.MaxInt32 + 1)})
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.svc.Update(f.ctx, 404, workoutlog.Patch{})
	require.True(t, apperror.IsNotFound(err, apperror.EntityLog))

	require.NoError(t, f.svc.Delete(f.ctx, l.ID))
	_, err = f.svc.GetByID(f.ctx, l.ID)
	require.True(t, apperror.IsNotFound(err, apperror.EntityLog))
	err = f.svc.Delete(f.ctx, l.ID)
	require.True(t, apperror.IsNotFound(err, apperror.EntityLog))
}
