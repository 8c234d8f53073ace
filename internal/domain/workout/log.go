package workout

import (
	"strings"
	"time"
)

// Log - фактическое выполнение одного подхода.
// Листовая запись: на неё никто не ссылается, удаляется вместе с родительской
// тренировкой или записью WorkoutExercise.
type Log struct {
	ID                int64
	UserID            int64
	WorkoutID         int64
	WorkoutExerciseID int64
	SetNumber         int
	RepsCompleted     *int
	WeightUsed        *float64
	Notes             *string
	Timestamp         time.Time
}

// NewLog создаёт запись выполнения. Нулевое время заменяется текущим.
func NewLog(userID, workoutID, workoutExerciseID int64, setNumber int, ts time.Time) *Log {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &Log{
		UserID:            userID,
		WorkoutID:         workoutID,
		WorkoutExerciseID: workoutExerciseID,
		SetNumber:         setNumber,
		Timestamp:         ts,
	}
}

// SetNotes сохраняет заметку, пустая строка очищает поле.
func (l *Log) SetNotes(notes *string) {
	if notes == nil {
		return
	}
	v := strings.TrimSpace(*notes)
	if v == "" {
		l.Notes = nil
		return
	}
	l.Notes = &v
}
