package exercise

import (
	"strings"
	"time"
)

// Exercise - элемент общего каталога упражнений.
// Не принадлежит ни одной тренировке, поэтому удаление блокируется,
// пока на упражнение ссылается хотя бы одна запись WorkoutExercise.
type Exercise struct {
	ID          int64
	Name        string  // Уникальное название
	Description *string // Необязательное описание
	CreatedAt   time.Time
}

// NewExercise создаёт упражнение с нормализованными полями.
func NewExercise(name string, description *string) *Exercise {
	return &Exercise{
		Name:        strings.TrimSpace(name),
		Description: TrimOptional(description),
		CreatedAt:   time.Now().UTC(),
	}
}

// TrimOptional обрезает пробелы у необязательной строки.
// Пустая после обрезки строка превращается в nil.
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
