package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/config"
	domain "github.com/petedillo/fitness-api/internal/domain/user"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "fitness-api",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
}

func testUser() *domain.User {
	return &domain.User{ID: 42, Username: "alice", Email: "alice@example.com"}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := NewService(testConfig())

	token, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestRefreshToken_NotAcceptedAsAccess(t *testing.T) {
	svc := NewService(testConfig())

	refresh, jti, err := svc.GenerateRefreshToken(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	_, err = svc.ParseAccessToken(refresh)
	require.Error(t, err)

	claims, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, jti, claims.ID)
}

func TestAccessToken_Expired(t *testing.T) {
	cfg := testConfig()
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	issuer := &service{cfg: cfg, now: func() time.Time { return issued }}
	token, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	later := &service{cfg: cfg, now: func() time.Time { return issued.Add(2 * time.Minute) }}
	_, err = later.ParseAccessToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken_WrongIssuer(t *testing.T) {
	other := testConfig()
	other.Issuer = "someone-else"
	token, err := NewService(other).GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = NewService(testConfig()).ParseAccessToken(token)
	require.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}
