package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "garagehub-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "garage", cfg.Database.DBPrefix)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "console format outside production")
	assert.NotEmpty(t, cfg.JWT.Secret, "development gets a fallback secret")
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GARAGE_APP_PORT", "9090")
	t.Setenv("GARAGE_DATABASE_HOST", "db.internal")
	t.Setenv("GARAGE_DATABASE_DB_PREFIX", "shopfloor")
	t.Setenv("GARAGE_JWT_SECRET", "from-env")
	t.Setenv("GARAGE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "shopfloor", cfg.Database.DBPrefix)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("GARAGE_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")

	t.Setenv("GARAGE_JWT_SECRET", "prod-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.Log.Format, "json format in production")
}

func TestDatabaseConfig_DSNForDatabase(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres", Password: "secret", SSLMode: "disable",
	}
	dsn := d.DSNForDatabase("garage_alpha")
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=garage_alpha sslmode=disable", dsn)
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
