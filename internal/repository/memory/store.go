// Package memory содержит хранилище в памяти для локальной разработки и тестов.
//
// Хранилище воспроизводит ограничения схемы PostgreSQL (уникальные индексы,
// внешние ключи с CASCADE/RESTRICT) и возвращает те же ошибки репозитория,
// поэтому use case'ы ведут себя одинаково на обоих драйверах.
package memory

import (
	"context"
	"errors"
	"sync"

	exercisedomain "github.com/petedillo/fitness-api/internal/domain/exercise"
	userdomain "github.com/petedillo/fitness-api/internal/domain/user"
	workoutdomain "github.com/petedillo/fitness-api/internal/domain/workout"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// errTxClosed возвращается при обращении к репозиториям завершенной транзакции.
var errTxClosed = errors.New("memory: transaction already closed")

// state - один согласованный снимок всех таблиц.
type state struct {
	users            map[int64]*userdomain.User
	exercises        map[int64]*exercisedomain.Exercise
	workouts         map[int64]*workoutdomain.Workout
	workoutExercises map[int64]*workoutdomain.WorkoutExercise
	logs             map[int64]*workoutdomain.Log

	seqUser            int64
	seqExercise        int64
	seqWorkout         int64
	seqWorkoutExercise int64
	seqLog             int64
}

func newState() *state {
	return &state{
		users:            make(map[int64]*userdomain.User),
		exercises:        make(map[int64]*exercisedomain.Exercise),
		workouts:         make(map[int64]*workoutdomain.Workout),
		workoutExercises: make(map[int64]*workoutdomain.WorkoutExercise),
		logs:             make(map[int64]*workoutdomain.Log),
	}
}

// clone копирует карты. Значения неизменяемы: каждая запись заменяется целиком.
func (s *state) clone() *state {
	next := &state{
		users:              make(map[int64]*userdomain.User, len(s.users)),
		exercises:          make(map[int64]*exercisedomain.Exercise, len(s.exercises)),
		workouts:           make(map[int64]*workoutdomain.Workout, len(s.workouts)),
		workoutExercises:   make(map[int64]*workoutdomain.WorkoutExercise, len(s.workoutExercises)),
		logs:               make(map[int64]*workoutdomain.Log, len(s.logs)),
		seqUser:            s.seqUser,
		seqExercise:        s.seqExercise,
		seqWorkout:         s.seqWorkout,
		seqWorkoutExercise: s.seqWorkoutExercise,
		seqLog:             s.seqLog,
	}
	for k, v := range s.users {
		next.users[k] = v
	}
	for k, v := range s.exercises {
		next.exercises[k] = v
	}
	for k, v := range s.workouts {
		next.workouts[k] = v
	}
	for k, v := range s.workoutExercises {
		next.workoutExercises[k] = v
	}
	for k, v := range s.logs {
		next.logs[k] = v
	}
	return next
}

// backend дает репозиториям доступ к снимку на чтение и запись.
type backend interface {
	read(ctx context.Context, fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

// Store реализует repo.Store в памяти процесса.
//
// Читатели всегда видят последний зафиксированный снимок. Запись (одиночная
// или транзакция) выполняется над копией под txMu и публикуется заменой
// указателя, поэтому частично выполненный replace-all никому не виден.
type Store struct {
	txMu sync.Mutex   // сериализует пишущие операции и транзакции
	mu   sync.RWMutex // защищает указатель data
	data *state

	repositories
}

var _ repo.Store = (*Store)(nil)

// NewStore создает пустое хранилище.
func NewStore() *Store {
	s := &Store{data: newState()}
	s.repositories = newRepositories(s)
	return s
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

func (s *Store) publish(next *state) {
	s.mu.Lock()
	s.data = next
	s.mu.Unlock()
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s.snapshot())
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	next := s.snapshot().clone()
	if err := fn(next); err != nil {
		return err
	}
	s.publish(next)
	return nil
}

// WithinTransaction выполняет fn над приватной копией данных.
// Изменения публикуются только если fn вернула nil и контекст не отменен.
func (s *Store) WithinTransaction(ctx context.Context, fn func(tx repo.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txBackend{st: s.snapshot().clone()}
	defer func() { tx.closed = true }()

	if err := fn(newRepositories(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.publish(tx.st)
	return nil
}

// Ping всегда успешен: хранилище живет в памяти процесса.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// txBackend работает с приватной копией; блокировки уже удерживает WithinTransaction.
type txBackend struct {
	st     *state
	closed bool
}

func (t *txBackend) read(ctx context.Context, fn func(st *state) error) error {
	if t.closed {
		return errTxClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

// write применяет fn к копии снимка транзакции, чтобы ошибка посреди
// операции не оставила частичных изменений.
func (t *txBackend) write(ctx context.Context, fn func(st *state) error) error {
	if t.closed {
		return errTxClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	next := t.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	t.st = next
	return nil
}

type repositories struct {
	users     *UserRepository
	exercises *ExerciseRepository
	workouts  *WorkoutRepository
	logs      *LogRepository
}

func newRepositories(b backend) repositories {
	return repositories{
		users:     &UserRepository{b: b},
		exercises: &ExerciseRepository{b: b},
		workouts:  &WorkoutRepository{b: b},
		logs:      &LogRepository{b: b},
	}
}

func (r repositories) Users() repo.UserRepository         { return r.users }
func (r repositories) Exercises() repo.ExerciseRepository { return r.exercises }
func (r repositories) Workouts() repo.WorkoutRepository   { return r.workouts }
func (r repositories) Logs() repo.LogRepository           { return r.logs }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Каскады, которые в PostgreSQL выполняют внешние ключи ON DELETE CASCADE.

func cascadeDeleteWorkoutExercise(st *state, id int64) {
	for logID, l := range st.logs {
		if l.WorkoutExerciseID == id {
			delete(st.logs, logID)
		}
	}
	delete(st.workoutExercises, id)
}

func cascadeDeleteWorkout(st *state, id int64) {
	for logID, l := range st.logs {
		if l.WorkoutID == id {
			delete(st.logs, logID)
		}
	}
	for weID, we := range st.workoutExercises {
		if we.WorkoutID == id {
			cascadeDeleteWorkoutExercise(st, weID)
		}
	}
	delete(st.workouts, id)
}
