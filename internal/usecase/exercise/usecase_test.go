package exercise_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/apperror"
	userdomain "github.com/petedillo/fitness-api/internal/domain/user"
	workoutdomain "github.com/petedillo/fitness-api/internal/domain/workout"
	"github.com/petedillo/fitness-api/internal/repository/memory"
	exerciseuc "github.com/petedillo/fitness-api/internal/usecase/exercise"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
	workoutuc "github.com/petedillo/fitness-api/internal/usecase/workout"
	"github.com/petedillo/fitness-api/pkg/logger"
)

func strPtr(v string) *string { return &v }

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := exerciseuc.NewService(memory.NewStore(), logger.Nop())

	created, err := svc.Create(ctx, "  Deadlift ", strPtr("  hip hinge "))
	require.NoError(t, err)
	require.Equal(t, "Deadlift", created.Name)
	require.Equal(t, "hip hinge", *created.Description)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, err = svc.GetByID(ctx, 999)
	require.True(t, apperror.IsNotFound(err, apperror.EntityExercise))
}

func TestCreate_Validation(t *testing.T) {
	svc := exerciseuc.NewService(memory.NewStore(), logger.Nop())

	_, err := svc.Create(context.Background(), "   ", nil)
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	require.Equal(t, exerciseuc.MsgNameRequired, apperror.As(err).Message)
}

func TestCreate_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := exerciseuc.NewService(memory.NewStore(), logger.Nop())

	_, err := svc.Create(ctx, "Squat", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Squat", nil)
	require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	require.Equal(t, storeerr.ReasonExerciseNameExists, apperror.As(err).Reason)
}

func TestList_SortedByName(t *testing.T) {
	ctx := context.Background()
	svc := exerciseuc.NewService(memory.NewStore(), logger.Nop())

	for _, name := range []string{"Row", "Bench Press", "Deadlift"} {
		_, err := svc.Create(ctx, name, nil)
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "Bench Press", items[0].Name)
	require.Equal(t, "Deadlift", items[1].Name)
	require.Equal(t, "Row", items[2].Name)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := exerciseuc.NewService(memory.NewStore(), logger.Nop())

	squat, err := svc.Create(ctx, "Squat", strPtr("legs"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Lunge", nil)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, squat.ID, exerciseuc.UpdateInput{Description: strPtr("")})
	require.NoError(t, err)
	require.Equal(t, "Squat", updated.Name)
	require.Nil(t, updated.Description)

	_, err = svc.Update(ctx, squat.ID, exerciseuc.UpdateInput{Name: strPtr("Lunge")})
	require.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = svc.Update(ctx, 404, exerciseuc.UpdateInput{Name: strPtr("Front Squat")})
	require.True(t, apperror.IsNotFound(err, apperror.EntityExercise))
}

func TestDelete_BlockedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	exercises := exerciseuc.NewService(store, logger.Nop())
	workouts := workoutuc.NewService(store, logger.Nop())

	u := userdomain.NewUser("bob", "bob@example.com", "hash")
	require.NoError(t, store.Users().Create(ctx, u))
	squat, err := exercises.Create(ctx, "Squat", nil)
	require.NoError(t, err)

	w, err := workouts.Create(ctx, workoutuc.CreateInput{
		UserID:    u.ID,
		Name:      "Leg Day",
		Exercises: []workoutdomain.ExerciseInput{{ExerciseID: squat.ID}},
	})
	require.NoError(t, err)

	err = exercises.Delete(ctx, squat.ID)
	require.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	require.Equal(t, storeerr.ReasonExerciseInUse, apperror.As(err).Reason)
	require.Equal(t, storeerr.MessageExerciseInUse, apperror.As(err).Message)

	_, err = exercises.GetByID(ctx, squat.ID)
	require.NoError(t, err)

	require.NoError(t, workouts.Delete(ctx, w.ID))
	require.NoError(t, exercises.Delete(ctx, squat.ID))

	_, err = exercises.GetByID(ctx, squat.ID)
	require.True(t, apperror.IsNotFound(err, apperror.EntityExercise))

	err = exercises.Delete(ctx, squat.ID)
	require.True(t, apperror.IsNotFound(err, apperror.EntityExercise))
}
