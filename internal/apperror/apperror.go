// Package apperror описывает типизированную иерархию ошибок бизнес-логики:
// ValidationError, NotFound, Conflict и Internal.
//
// Usecase-слой возвращает только такие ошибки, а HTTP-адаптер переводит их
// в коды ответа, не завися от кодов ошибок конкретного хранилища.
package apperror

import (
	"errors"
	"fmt"
)

// Kind - класс ошибки.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// Сущности для ошибок NotFound.
const (
	EntityUser            = "user"
	EntityExercise        = "exercise"
	EntityWorkout         = "workout"
	EntityWorkoutExercise = "workout_exercise"
	EntityLog             = "log"
)

// Error - ошибка бизнес-логики со стабильной машиночитаемой причиной.
type Error struct {
	Kind    Kind
	Reason  string // Машиночитаемая причина, например "exercise_not_found"
	Message string // Человекочитаемое описание
	Entity  string      // Заполняется для KindNotFound
	Details interface{} // Необязательные подробности для клиента
	Err     error       // Исходная ошибка (для Internal и обёрток)
}

// WithDetails возвращает копию ошибки с подробностями.
func (e *Error) WithDetails(details interface{}) *Error {
	c := *e
	c.Details = details
	return &c
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать ошибки по Kind и Reason через errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Validation создаёт ошибку валидации входных данных.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Reason: "validation_error", Message: message}
}

// NotFound создаёт ошибку отсутствия сущности.
func NotFound(entity string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Reason:  entity + "_not_found",
		Message: entity + " not found",
		Entity:  entity,
	}
}

// Conflict создаёт ошибку нарушения уникальности или блокирующей ссылки.
func Conflict(reason, message string) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Message: message}
}

// Internal оборачивает непредвиденную ошибку хранилища.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Reason: "internal_error", Message: "internal error", Err: err}
}

// As извлекает *Error из цепочки. Любая другая ошибка считается Internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// KindOf возвращает класс ошибки.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return As(err).Kind
}

// IsNotFound сообщает, является ли ошибка NotFound для указанной сущности.
// Пустая entity соответствует любой сущности.
func IsNotFound(err error, entity string) bool {
	e := As(err)
	if e == nil || e.Kind != KindNotFound {
		return false
	}
	return entity == "" || e.Entity == entity
}
