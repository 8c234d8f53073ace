package workout

import (
	"time"

	domain "github.com/petedillo/fitness-api/internal/domain/workout"
	exercisehandler "github.com/petedillo/fitness-api/internal/handler/exercise"
)

// ExerciseRequest описывает одну запись упражнения в теле запроса.
type ExerciseRequest struct {
	ExerciseID  int64    `json:"exerciseId"`
	Sets        *int     `json:"sets"`
	Repetitions *string  `json:"repetitions"`
	Weight      *float64 `json:"weight"`
	Order       *int     `json:"order"`
}

// CreateRequest описывает тело запроса создания тренировки.
// Пустое имя и пустой список упражнений отклоняет usecase-слой.
type CreateRequest struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Exercises   []ExerciseRequest `json:"exercises"`
}

// UpdateRequest описывает частичное обновление тренировки.
// Отсутствующее поле exercises оставляет набор без изменений, переданное заменяет его целиком.
type UpdateRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Exercises   []ExerciseRequest `json:"exercises"`
}

// ExercisePatchRequest описывает частичное обновление одной записи упражнения.
type ExercisePatchRequest struct {
	Sets        *int     `json:"sets"`
	Repetitions *string  `json:"repetitions"`
	Weight      *float64 `json:"weight"`
	Order       *int     `json:"order"`
}

// WorkoutExerciseResponse описывает запись упражнения внутри тренировки.
type WorkoutExerciseResponse struct {
	ID          int64                     `json:"id"`
	WorkoutID   int64                     `json:"workoutId"`
	ExerciseID  int64                     `json:"exerciseId"`
	Sets        int                       `json:"sets"`
	Repetitions *string                   `json:"repetitions"`
	Weight      *float64                  `json:"weight"`
	Order       int                       `json:"order"`
	Exercise    *exercisehandler.Response `json:"exercise,omitempty"`
}

// Response описывает тренировку в ответах API.
type Response struct {
	ID               int64                     `json:"id"`
	UserID           int64                     `json:"userId"`
	Name             string                    `json:"name"`
	Description      *string                   `json:"description"`
	CreatedAt        time.Time                 `json:"createdAt"`
	WorkoutExercises []WorkoutExerciseResponse `json:"workoutExercises"`
}

func toInputs(items []ExerciseRequest) []domain.ExerciseInput {
	if items == nil {
		return nil
	}
	out := make([]domain.ExerciseInput, 0, len(items))
	for _, it := range items {
		out = append(out, it.toInput())
	}
	return out
}

func (r ExerciseRequest) toInput() domain.ExerciseInput {
	return domain.ExerciseInput{
		ExerciseID:  r.ExerciseID,
		Sets:        r.Sets,
		Repetitions: r.Repetitions,
		Weight:      r.Weight,
		Order:       r.Order,
	}
}

func toExerciseResponse(we *domain.WorkoutExercise) WorkoutExerciseResponse {
	out := WorkoutExerciseResponse{
		ID:          we.ID,
		WorkoutID:   we.WorkoutID,
		ExerciseID:  we.ExerciseID,
		Sets:        we.Sets,
		Repetitions: we.Repetitions,
		Weight:      we.Weight,
		Order:       we.Order,
	}
	if we.Exercise != nil {
		e := exercisehandler.ToResponse(we.Exercise)
		out.Exercise = &e
	}
	return out
}

func toResponse(w *domain.Workout) Response {
	items := make([]WorkoutExerciseResponse, 0, len(w.Exercises))
	for _, we := range w.Exercises {
		items = append(items, toExerciseResponse(we))
	}
	return Response{
		ID:               w.ID,
		UserID:           w.UserID,
		Name:             w.Name,
		Description:      w.Description,
		CreatedAt:        w.CreatedAt,
		WorkoutExercises: items,
	}
}
