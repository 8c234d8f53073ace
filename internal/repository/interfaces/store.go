package interfaces

import "context"

// Repositories группирует репозитории, работающие в одном контексте хранилища:
// либо напрямую, либо внутри одной транзакции.
type Repositories interface {
	Users() UserRepository
	Exercises() ExerciseRepository
	Workouts() WorkoutRepository
	Logs() LogRepository
}

// Store - явно передаваемый дескриптор хранилища (вместо глобального клиента).
type Store interface {
	Repositories

	// WithinTransaction выполняет fn в одной транзакции.
	// Если fn возвращает ошибку или контекст отменён, все изменения откатываются.
	// Репозитории, переданные в fn, действительны только до возврата из fn.
	WithinTransaction(ctx context.Context, fn func(tx Repositories) error) error

	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}
