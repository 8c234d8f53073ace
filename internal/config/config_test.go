package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredJWT(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredJWT(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	require.False(t, cfg.Storage.AutoMigrate)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	require.Equal(t, []string{"X-Request-ID"}, cfg.CORS.ExposedHeaders)
	require.True(t, cfg.Observability.MetricsEnabled)
	require.True(t, cfg.UsesPostgres())
}

func TestLoad_MemoryDriverAndLists(t *testing.T) {
	setRequiredJWT(t)
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("METRICS_ENABLED", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.False(t, cfg.UsesPostgres())
	require.True(t, cfg.Storage.AutoMigrate)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	require.True(t, cfg.Observability.MetricsEnabled)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Host: "localhost", Port: "8080"},
		Storage: StorageConfig{Driver: "sqlite"},
		JWT:     JWTConfig{AccessSecret: "a", RefreshSecret: "b", AccessTTL: time.Minute, RefreshTTL: time.Hour},
	}
	require.ErrorContains(t, cfg.Validate(), "STORAGE_DRIVER")
}

func TestDatabaseConfig_URL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "fit", SSLMode: "disable"}
	require.Equal(t, "postgres://u:p@db:5432/fit?sslmode=disable", d.URL())
	require.Equal(t, "host=db port=5432 user=u password=p dbname=fit sslmode=disable", d.DSN())
}

func TestLoadDatabase_NoJWTRequired(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("DB_NAME", "fitness_test")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	require.Equal(t, "fitness_test", cfg.Database.DBName)

	cfg.Database.Host = ""
	require.ErrorContains(t, cfg.Database.Validate(), "DB_HOST")
}
