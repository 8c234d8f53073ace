package memory

import (
	"context"
	"sort"

	domain "github.com/petedillo/fitness-api/internal/domain/user"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
)

// UserRepository реализует repo.UserRepository в памяти.
type UserRepository struct {
	b backend
}

var _ repo.UserRepository = (*UserRepository)(nil)

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

// checkUserUnique повторяет уникальные индексы users.email и users.username.
func checkUserUnique(st *state, u *domain.User) error {
	for _, existing := range st.users {
		if existing.ID == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return repo.ErrEmailExists
		}
		if existing.Username == u.Username {
			return repo.ErrUsernameExists
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.b.write(ctx, func(st *state) error {
		if err := checkUserUnique(st, user); err != nil {
			return err
		}
		st.seqUser++
		user.ID = st.seqUser
		st.users[user.ID] = copyUser(user)
		return nil
	})
}

func (r *UserRepository) find(ctx context.Context, match func(u *domain.User) bool) (*domain.User, error) {
	var found *domain.User
	err := r.b.read(ctx, func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				found = copyUser(u)
				return nil
			}
		}
		return repo.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var found *domain.User
	err := r.b.read(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repo.ErrNotFound
		}
		found = copyUser(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u *domain.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(ctx, func(u *domain.User) bool { return u.Username == username })
}

// List возвращает пользователей, новые первыми.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	err := r.b.read(ctx, func(st *state) error {
		out = make([]*domain.User, 0, len(st.users))
		for _, u := range st.users {
			out = append(out, copyUser(u))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.b.write(ctx, func(st *state) error {
		existing, ok := st.users[user.ID]
		if !ok {
			return repo.ErrNotFound
		}
		if err := checkUserUnique(st, user); err != nil {
			return err
		}
		updated := copyUser(existing)
		updated.Username = user.Username
		updated.Email = user.Email
		updated.PasswordHash = user.PasswordHash
		st.users[user.ID] = updated
		return nil
	})
}

// Delete удаляет пользователя; зависимые строки удаляются каскадно, как в схеме БД.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.b.write(ctx, func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return repo.ErrNotFound
		}
		for logID, l := range st.logs {
			if l.UserID == id {
				delete(st.logs, logID)
			}
		}
		for workoutID, w := range st.workouts {
			if w.UserID == id {
				cascadeDeleteWorkout(st, workoutID)
			}
		}
		delete(st.users, id)
		return nil
	})
}
