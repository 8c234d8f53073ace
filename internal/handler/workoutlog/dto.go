package workoutlog

import (
	"time"

	domain "github.com/petedillo/fitness-api/internal/domain/workout"
)

// CreateRequest описывает тело запроса записи подхода.
type CreateRequest struct {
	UserID            int64      `json:"userId" binding:"required,gt=0"`
	WorkoutID         int64      `json:"workoutId" binding:"required,gt=0"`
	WorkoutExerciseID int64      `json:"workoutExerciseId" binding:"required,gt=0"`
	SetNumber         int        `json:"setNumber"`
	RepsCompleted     *int       `json:"repsCompleted"`
	WeightUsed        *float64   `json:"weightUsed"`
	Notes             *string    `json:"notes"`
	Timestamp         *time.Time `json:"timestamp"`
}

// UpdateRequest описывает частичное обновление записи журнала.
type UpdateRequest struct {
	SetNumber     *int       `json:"setNumber"`
	RepsCompleted *int       `json:"repsCompleted"`
	WeightUsed    *float64   `json:"weightUsed"`
	Notes         *string    `json:"notes"`
	Timestamp     *time.Time `json:"timestamp"`
}

// Response описывает запись журнала в ответах API.
type Response struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	WorkoutID         int64     `json:"workoutId"`
	WorkoutExerciseID int64     `json:"workoutExerciseId"`
	SetNumber         int       `json:"setNumber"`
	RepsCompleted     *int      `json:"repsCompleted"`
	WeightUsed        *float64  `json:"weightUsed"`
	Notes             *string   `json:"notes"`
	Timestamp         time.Time `json:"timestamp"`
}

func toResponse(l *domain.Log) Response {
	return Response{
		ID:                l.ID,
		UserID:            l.UserID,
		WorkoutID:         l.WorkoutID,
		WorkoutExerciseID: l.WorkoutExerciseID,
		SetNumber:         l.SetNumber,
		RepsCompleted:     l.RepsCompleted,
		WeightUsed:        l.WeightUsed,
		Notes:             l.Notes,
		Timestamp:         l.Timestamp,
	}
}

func toResponses(items []*domain.Log) []Response {
	out := make([]Response, 0, len(items))
	for _, l := range items {
		out = append(out, toResponse(l))
	}
	return out
}
