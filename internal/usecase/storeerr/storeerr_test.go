package storeerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/apperror"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   apperror.Kind
		reason string
	}{
		{"not found", repo.ErrNotFound, apperror.KindNotFound, "workout_not_found"},
		{"missing reference", fmt.Errorf("insert: %w", repo.ErrReferenceMissing), apperror.KindNotFound, "exercise_not_found"},
		{"exercise in use", repo.ErrExerciseInUse, apperror.KindConflict, ReasonExerciseInUse},
		{"duplicate entry", repo.ErrDuplicateWorkoutExercise, apperror.KindConflict, ReasonDuplicateEntry},
		{"email", repo.ErrEmailExists, apperror.KindConflict, ReasonEmailExists},
		{"cancelled", context.Canceled, apperror.KindInternal, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apperror.As(Translate(tt.err, apperror.EntityWorkout, apperror.EntityExercise))
			require.Equal(t, tt.kind, got.Kind)
			require.Equal(t, tt.reason, got.Reason)
		})
	}
}

func TestTranslate_PassesAppErrorsThrough(t *testing.T) {
	original := apperror.Validation("workout name is required")
	require.Same(t, original, Translate(original, apperror.EntityWorkout, apperror.EntityExercise))
	require.NoError(t, Translate(nil, apperror.EntityWorkout, apperror.EntityExercise))
	require.True(t, errors.Is(Translate(repo.ErrNotFound, apperror.EntityUser, ""), &apperror.Error{Kind: apperror.KindNotFound}))
}
