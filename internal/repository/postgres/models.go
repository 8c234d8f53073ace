package postgres

import (
	"time"

	exercisedomain "github.com/petedillo/fitness-api/internal/domain/exercise"
	userdomain "github.com/petedillo/fitness-api/internal/domain/user"
	workoutdomain "github.com/petedillo/fitness-api/internal/domain/workout"
)

// ORM-модели максимально близко отражают схему БД из migrations
// и маппятся в доменные модели через toDomain/from*.

type pgUser struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;type:varchar(50);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (pgUser) TableName() string {
	return "users"
}

type pgExercise struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description *string   `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null"`
}

func (pgExercise) TableName() string {
	return "exercises"
}

type pgWorkout struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;not null"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description *string   `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null"`

	Exercises []pgWorkoutExercise `gorm:"foreignKey:WorkoutID"`
}

func (pgWorkout) TableName() string {
	return "workouts"
}

type pgWorkoutExercise struct {
	ID          int64    `gorm:"column:id;primaryKey;autoIncrement"`
	WorkoutID   int64    `gorm:"column:workout_id;not null"`
	ExerciseID  int64    `gorm:"column:exercise_id;not null"`
	Sets        int      `gorm:"column:sets;not null"`
	Repetitions *string  `gorm:"column:repetitions;type:varchar(50)"`
	Weight      *float64 `gorm:"column:weight"`
	SortOrder   int      `gorm:"column:sort_order;not null"`

	Exercise *pgExercise `gorm:"foreignKey:ExerciseID"`
}

func (pgWorkoutExercise) TableName() string {
	return "workout_exercises"
}

type pgLog struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID            int64     `gorm:"column:user_id;not null"`
	WorkoutID         int64     `gorm:"column:workout_id;not null"`
	WorkoutExerciseID int64     `gorm:"column:workout_exercise_id;not null"`
	SetNumber         int       `gorm:"column:set_number;not null"`
	RepsCompleted     *int      `gorm:"column:reps_completed"`
	WeightUsed        *float64  `gorm:"column:weight_used"`
	Notes             *string   `gorm:"column:notes;type:text"`
	Timestamp         time.Time `gorm:"column:logged_at;type:timestamptz;not null"`
}

func (pgLog) TableName() string {
	return "workout_logs"
}

func (m *pgUser) toDomain() *userdomain.User {
	return &userdomain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func fromDomainUser(u *userdomain.User) *pgUser {
	return &pgUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (m *pgExercise) toDomain() *exercisedomain.Exercise {
	return &exercisedomain.Exercise{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainExercise(e *exercisedomain.Exercise) *pgExercise {
	return &pgExercise{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *pgWorkout) toDomain() *workoutdomain.Workout {
	w := &workoutdomain.Workout{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		Exercises:   make([]*workoutdomain.WorkoutExercise, 0, len(m.Exercises)),
	}
	for i := range m.Exercises {
		w.Exercises = append(w.Exercises, m.Exercises[i].toDomain())
	}
	workoutdomain.SortByOrder(w.Exercises)
	return w
}

func fromDomainWorkout(w *workoutdomain.Workout) *pgWorkout {
	return &pgWorkout{
		ID:          w.ID,
		UserID:      w.UserID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
	}
}

func (m *pgWorkoutExercise) toDomain() *workoutdomain.WorkoutExercise {
	we := &workoutdomain.WorkoutExercise{
		ID:          m.ID,
		WorkoutID:   m.WorkoutID,
		ExerciseID:  m.ExerciseID,
		Sets:        m.Sets,
		Repetitions: m.Repetitions,
		Weight:      m.Weight,
		Order:       m.SortOrder,
	}
	if m.Exercise != nil {
		we.Exercise = m.Exercise.toDomain()
	}
	return we
}

func fromDomainWorkoutExercise(we *workoutdomain.WorkoutExercise) *pgWorkoutExercise {
	return &pgWorkoutExercise{
		ID:          we.ID,
		WorkoutID:   we.WorkoutID,
		ExerciseID:  we.ExerciseID,
		Sets:        we.Sets,
		Repetitions: we.Repetitions,
		Weight:      we.Weight,
		SortOrder:   we.Order,
	}
}

func (m *pgLog) toDomain() *workoutdomain.Log {
	return &workoutdomain.Log{
		ID:                m.ID,
		UserID:            m.UserID,
		WorkoutID:         m.WorkoutID,
		WorkoutExerciseID: m.WorkoutExerciseID,
		SetNumber:         m.SetNumber,
		RepsCompleted:     m.RepsCompleted,
		WeightUsed:        m.WeightUsed,
		Notes:             m.Notes,
		Timestamp:         m.Timestamp,
	}
}

func fromDomainLog(l *workoutdomain.Log) *pgLog {
	return &pgLog{
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
