package reference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/apperror"
	exercisedomain "github.com/petedillo/fitness-api/internal/domain/exercise"
	"github.com/petedillo/fitness-api/internal/repository/memory"
	"github.com/petedillo/fitness-api/internal/usecase/reference"
)

func TestValidateExerciseIDs_ReturnsExistingSubset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	squat := exercisedomain.NewExercise("Squat", nil)
	require.NoError(t, store.Exercises().Create(ctx, squat))

	v := reference.New(store.Exercises())

	found, err := v.ValidateExerciseIDs(ctx, []int64{squat.ID, 404})
	require.NoError(t, err)
	require.Equal(t, []int64{squat.ID}, found)

	again, err := v.ValidateExerciseIDs(ctx, []int64{squat.ID, 404})
	require.NoError(t, err)
	require.Equal(t, found, again)

	empty, err := v.ValidateExerciseIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestRequire_ReportsMissingIDs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	squat := exercisedomain.NewExercise("Squat", nil)
	require.NoError(t, store.Exercises().Create(ctx, squat))

	v := reference.New(store.Exercises())
	require.NoError(t, v.Require(ctx, []int64{squat.ID}))

	err := v.Require(ctx, []int64{squat.ID, 9, 9, 10})
	require.True(t, apperror.IsNotFound(err, apperror.EntityExercise))
	require.Equal(t,
		map[string]interface{}{"missingExerciseIds": []int64{9, 10}},
		apperror.As(err).Details)
}
