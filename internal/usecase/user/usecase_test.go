package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/apperror"
	exercisedomain "github.com/petedillo/fitness-api/internal/domain/exercise"
	workoutdomain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	"github.com/petedillo/fitness-api/internal/repository/memory"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
	useruc "github.com/petedillo/fitness-api/internal/usecase/user"
	workoutuc "github.com/petedillo/fitness-api/internal/usecase/workout"
	"github.com/petedillo/fitness-api/pkg/logger"
	"github.com/petedillo/fitness-api/pkg/password"
)

func strPtr(v string) *string { return &v }

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := useruc.NewService(memory.NewStore(), logger.Nop())

	u, err := svc.Register(ctx, " Alice@Example.com ", "hash", " alice ")
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	require.Equal(t, "alice@example.com", u.Email)
	require.Equal(t, "alice", u.Username)

	_, err = svc.Register(ctx, "alice@example.com", "hash", "alice2")
	require.Equal(t, storeerr.ReasonEmailExists, apperror.As(err).Reason)

	_, err = svc.Register(ctx, "other@example.com", "hash", "alice")
	require.Equal(t, storeerr.ReasonUsernameExists, apperror.As(err).Reason)
}

func TestRegister_Validation(t *testing.T) {
	svc := useruc.NewService(memory.NewStore(), logger.Nop())

	tests := []struct {
		name     string
		email    string
		hash     string
		username string
	}{
		{"missing hash", "a@example.com", "", "alice"},
		{"bad email", "not-an-email", "hash", "alice"},
		{"short username", "a@example.com", "hash", "al"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.hash, tt.username)
			require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
}

func TestHashPassword(t *testing.T) {
	_, err := useruc.HashPassword("short")
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err = useruc.HashPassword(string(long))
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	hash, err := useruc.HashPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, password.Compare(hash, "correct horse"))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := useruc.NewService(memory.NewStore(), logger.Nop())

	alice, err := svc.Register(ctx, "alice@example.com", "hash", "alice")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob@example.com", "hash", "bob")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice.ID, useruc.UpdateInput{
		Username: strPtr("alice_k"),
		Password: strPtr("new password"),
	})
	require.NoError(t, err)
	require.Equal(t, "alice_k", updated.Username)
	require.Equal(t, "alice@example.com", updated.Email)
	require.NoError(t, password.Compare(updated.PasswordHash, "new password"))

	_, err = svc.Update(ctx, alice.ID, useruc.UpdateInput{Email: strPtr("BOB@example.com")})
	require.Equal(t, storeerr.ReasonEmailExists, apperror.As(err).Reason)

	_, err = svc.Update(ctx, 404, useruc.UpdateInput{Username: strPtr("nobody")})
	require.True(t, apperror.IsNotFound(err, apperror.EntityUser))
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc := useruc.NewService(memory.NewStore(), logger.Nop())

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	_, err = svc.Register(ctx, "alice@example.com", "hash", "alice")
	require.NoError(t, err)
	users, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestDelete_CascadesEverythingOwned(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	users := useruc.NewService(store, logger.Nop())
	workouts := workoutuc.NewService(store, logger.Nop())

	alice, err := users.Register(ctx, "alice@example.com", "hash", "alice")
	require.NoError(t, err)
	bob, err := users.Register(ctx, "bob@example.com", "hash", "bob")
	require.NoError(t, err)

	squat := exercisedomain.NewExercise("Squat", nil)
	require.NoError(t, store.Exercises().Create(ctx, squat))

	w, err := workouts.Create(ctx, workoutuc.CreateInput{
		UserID:    alice.ID,
		Name:      "Leg Day",
		Exercises: []workoutdomain.ExerciseInput{{ExerciseID: squat.ID}},
	})
	require.NoError(t, err)
	bobsWorkout, err := workouts.Create(ctx, workoutuc.CreateInput{
		UserID:    bob.ID,
		Name:      "Bob Legs",
		Exercises: []workoutdomain.ExerciseInput{{ExerciseID: squat.ID}},
	})
	require.NoError(t, err)

	own := workoutdomain.NewLog(alice.ID, w.ID, w.Exercises[0].ID, 1, time.Time{})
	require.NoError(t, store.Logs().Create(ctx, own))
	foreign := workoutdomain.NewLog(bob.ID, w.ID, w.Exercises[0].ID, 1, time.Time{})
	require.NoError(t, store.Logs().Create(ctx, foreign))
	kept := workoutdomain.NewLog(bob.ID, bobsWorkout.ID, bobsWorkout.Exercises[0].ID, 1, time.Time{})
	require.NoError(t, store.Logs().Create(ctx, kept))

	require.NoError(t, users.Delete(ctx, alice.ID))

	_, err = users.GetByID(ctx, alice.ID)
	require.True(t, apperror.IsNotFound(err, apperror.EntityUser))
	_, err = store.Workouts().GetByID(ctx, w.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)
	_, err = store.Workouts().GetExercise(ctx, w.Exercises[0].ID)
	require.ErrorIs(t, err, repo.ErrNotFound)
	for _, id := range []int64{own.ID, foreign.ID} {
		_, err = store.Logs().GetByID(ctx, id)
		require.ErrorIs(t, err, repo.ErrNotFound)
	}

	_, err = store.Logs().GetByID(ctx, kept.ID)
	require.NoError(t, err)
	_, err = store.Workouts().GetByID(ctx, bobsWorkout.ID)
	require.NoError(t, err)

	err = users.Delete(ctx, alice.ID)
	require.True(t, apperror.IsNotFound(err, apperror.EntityUser))
}
