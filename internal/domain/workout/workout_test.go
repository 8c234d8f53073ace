package workout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/domain/workout"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestNewWorkoutExercise_Defaults(t *testing.T) {
	we := workout.NewWorkoutExercise(7, workout.ExerciseInput{ExerciseID: 5, Repetitions: strPtr("  8-10 ")})

	require.Equal(t, int64(7), we.WorkoutID)
	require.Equal(t, int64(5), we.ExerciseID)
	require.Equal(t, workout.DefaultSets, we.Sets)
	require.Equal(t, workout.DefaultOrder, we.Order)
	require.NotNil(t, we.Repetitions)
	require.Equal(t, "8-10", *we.Repetitions)
	require.Nil(t, we.Weight)
}

func TestFindDuplicateKey_UsesResolvedOrder(t *testing.T) {
	// Отсутствующий order равен 1, поэтому эти записи конфликтуют.
	inputs := []workout.ExerciseInput{
		{ExerciseID: 5},
		{ExerciseID: 5, Order: intPtr(1)},
	}
	key, dup := workout.FindDuplicateKey(inputs)
	require.True(t, dup)
	require.Equal(t, workout.Key{ExerciseID: 5, Order: 1}, key)
}

func TestFindDuplicateKey_SameExerciseDifferentOrder(t *testing.T) {
	inputs := []workout.ExerciseInput{
		{ExerciseID: 5, Order: intPtr(1)},
		{ExerciseID: 5, Order: intPtr(3)},
	}
	_, dup := workout.FindDuplicateKey(inputs)
	require.False(t, dup)
	require.Equal(t, []int64{5}, workout.DistinctExerciseIDs(inputs))
}

func TestNewWorkout_TrimsDescription(t *testing.T) {
	w := workout.NewWorkout(1, "  Leg Day ", strPtr("   "))
	require.Equal(t, "Leg Day", w.Name)
	require.Nil(t, w.Description)

	w.SetDescription(strPtr("  heavy squats "))
	require.Equal(t, "heavy squats", *w.Description)
	w.SetDescription(strPtr(""))
	require.Nil(t, w.Description)
}

func TestSortByOrder(t *testing.T) {
	items := []*workout.WorkoutExercise{
		{ID: 3, Order: 2},
		{ID: 2, Order: 1},
		{ID: 1, Order: 2},
	}
	workout.SortByOrder(items)
	require.Equal(t, int64(2), items[0].ID)
	require.Equal(t, int64(1), items[1].ID)
	require.Equal(t, int64(3), items[2].ID)
}
