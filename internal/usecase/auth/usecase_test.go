package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/apperror"
	"github.com/petedillo/fitness-api/internal/config"
	"github.com/petedillo/fitness-api/internal/repository/memory"
	authuc "github.com/petedillo/fitness-api/internal/usecase/auth"
	"github.com/petedillo/fitness-api/internal/usecase/storeerr"
	useruc "github.com/petedillo/fitness-api/internal/usecase/user"
	jwtsvc "github.com/petedillo/fitness-api/pkg/jwt"
	"github.com/petedillo/fitness-api/pkg/logger"
)

type fixture struct {
	ctx    context.Context
	auth   authuc.Service
	users  useruc.Service
	tokens jwtsvc.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	tokens := jwtsvc.NewService(&config.JWTConfig{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		Issuer:        "fitness-api-test",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	users := useruc.NewService(store, logger.Nop())
	return &fixture{
		ctx:    context.Background(),
		auth:   authuc.NewService(store.Users(), users, tokens, logger.Nop()),
		users:  users,
		tokens: tokens,
	}
}

func TestRegister_IssuesTokens(t *testing.T) {
	f := newFixture()

	user, access, refresh, err := f.auth.Register(f.ctx, "alice@example.com", "s3cret-pass", "alice")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", user.PasswordHash)

	claims, err := f.tokens.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	claims, err = f.tokens.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)

	_, _, _, err = f.auth.Register(f.ctx, "alice@example.com", "s3cret-pass", "alice2")
	require.Equal(t, storeerr.ReasonEmailExists, apperror.As(err).Reason)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture()

	_, _, _, err := f.auth.Register(f.ctx, "alice@example.com", "short", "alice")
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, _, _, err = f.auth.Register(f.ctx, "", "s3cret-pass", "alice")
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestLogin(t *testing.T) {
	f := newFixture()
	registered, _, _, err := f.auth.Register(f.ctx, "alice@example.com", "s3cret-pass", "alice")
	require.NoError(t, err)

	user, access, _, err := f.auth.Login(f.ctx, " ALICE@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, access)

	_, _, _, err = f.auth.Login(f.ctx, "alice@example.com", "wrong-pass")
	require.ErrorIs(t, err, authuc.ErrInvalidCredentials)

	_, _, _, err = f.auth.Login(f.ctx, "nobody@example.com", "s3cret-pass")
	require.ErrorIs(t, err, authuc.ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	f := newFixture()
	registered, access, refresh, err := f.auth.Register(f.ctx, "alice@example.com", "s3cret-pass", "alice")
	require.NoError(t, err)

	user, newAccess, newRefresh, err := f.auth.Refresh(f.ctx, refresh)
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, newAccess)
	require.NotEqual(t, refresh, newRefresh)

	_, _, _, err = f.auth.Refresh(f.ctx, access)
	require.ErrorIs(t, err, authuc.ErrInvalidRefreshToken)

	require.NoError(t, f.users.Delete(f.ctx, registered.ID))
	_, _, _, err = f.auth.Refresh(f.ctx, refresh)
	require.ErrorIs(t, err, authuc.ErrInvalidRefreshToken)
}
