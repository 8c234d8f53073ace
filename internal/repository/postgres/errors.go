package postgres

import (
	"errors"
	"strings"

	legacypgconn "github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Коды SQLSTATE, которые транслируются в ошибки репозитория.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Имена индексов и ограничений из миграций.
const (
	constraintUsersEmail            = "idx_users_email_unique"
	constraintUsersUsername         = "idx_users_username_unique"
	constraintExercisesName         = "idx_exercises_name_unique"
	constraintWorkoutExerciseOrder  = "idx_workout_exercises_workout_exercise_order_unique"
	constraintWorkoutExerciseToExer = "fk_workout_exercises_exercise"
)

type pgErrorInfo struct {
	Code       string
	Constraint string
}

// pgErrorFrom извлекает код ошибки и имя ограничения из ошибки драйвера.
// GORM работает через pgx v5, мигратор - через lib/pq; старый pgconn встречается
// в ошибках, пришедших из вспомогательных инструментов.
func pgErrorFrom(err error) (pgErrorInfo, bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgErrorInfo{Code: pgxErr.Code, Constraint: pgxErr.ConstraintName}, true
	}
	var legacyErr *legacypgconn.PgError
	if errors.As(err, &legacyErr) {
		return pgErrorInfo{Code: legacyErr.Code, Constraint: legacyErr.ConstraintName}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgErrorInfo{Code: string(pqErr.Code), Constraint: pqErr.Constraint}, true
	}
	return pgErrorInfo{}, false
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникального ограничения PostgreSQL.
// Ориентируется на код ошибки 23505 (unique_violation) и, при наличии, имя индекса/constraint.
func isUniqueViolation(err error, constraintNames ...string) bool {
	return isViolation(err, codeUniqueViolation, constraintNames...)
}

// isForeignKeyViolation проверяет нарушение внешнего ключа (23503).
func isForeignKeyViolation(err error, constraintNames ...string) bool {
	return isViolation(err, codeForeignKeyViolation, constraintNames...)
}

func isViolation(err error, code string, constraintNames ...string) bool {
	if err == nil {
		return false
	}

	// Предпочитаем структурированную ошибку драйвера
	if info, ok := pgErrorFrom(err); ok {
		if info.Code != code {
			return false
		}
		// Если конкретные имена не заданы - достаточно кода ошибки
		if len(constraintNames) == 0 {
			return true
		}
		for _, name := range constraintNames {
			if name != "" && strings.EqualFold(info.Constraint, name) {
				return true
			}
		}
		return false
	}

	// Fallback для нестандартных ошибок: ищем код и имя индекса/constraint в сообщении
	errStr := err.Error()
	if !strings.Contains(errStr, code) {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	lower := strings.ToLower(errStr)
	for _, name := range constraintNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}
