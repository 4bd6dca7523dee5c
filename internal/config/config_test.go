package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ENV", "HTTP_PORT", "LOG_LEVEL", "STORAGE_DRIVER", "DATABASE_URL", "MIGRATIONS_PATH",
	"POSTGRESQL_HOST", "POSTGRESQL_PORT", "POSTGRESQL_USER", "POSTGRESQL_PASSWORD", "POSTGRESQL_DBNAME",
	"JWT_SECRET", "ACCESS_TOKEN_TTL", "WEBHOOK_SECRET", "CORS_ALLOWED_ORIGINS",
	"RATE_LIMIT_LIMIT", "RATE_LIMIT_PERIOD", "STORAGE_TIMEOUT", "DISPUTE_WINDOW", "STATS_CACHE_TTL",
	"NOTIFY_TIMEZONE", "PUSH_GATEWAY_URL", "PUSH_GATEWAY_TOKEN", "PUSH_GATEWAY_TIMEOUT",
}

// unsetAll удаляет переменные на время теста: getEnv отличает пустое значение от отсутствующего.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestFromEnv_DevelopmentDefaults(t *testing.T) {
	unsetAll(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 5*time.Second, cfg.StorageTimeout)
	assert.Equal(t, 24*time.Hour, cfg.DisputeWindow)
	assert.Equal(t, "America/New_York", cfg.NotifyTimezone)
	assert.Len(t, cfg.AllowedOrigins, 2)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_DatabaseURLFromParts(t *testing.T) {
	unsetAll(t)
	t.Setenv("POSTGRESQL_HOST", "db")
	t.Setenv("POSTGRESQL_USER", "swipe")
	t.Setenv("POSTGRESQL_PASSWORD", "p@ss")
	t.Setenv("POSTGRESQL_DBNAME", "swipeshare")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://swipe:p%40ss@db:5432/swipeshare?sslmode=disable", cfg.DatabaseURL)
}

func TestFromEnv_ProductionRequirements(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "short jwt secret",
			env:     map[string]string{"JWT_SECRET": "short", "WEBHOOK_SECRET": "w", "CORS_ALLOWED_ORIGINS": "https://a"},
			wantErr: "JWT_SECRET",
		},
		{
			name:    "missing webhook secret",
			env:     map[string]string{"JWT_SECRET": secret, "CORS_ALLOWED_ORIGINS": "https://a"},
			wantErr: "WEBHOOK_SECRET",
		},
		{
			name:    "missing cors",
			env:     map[string]string{"JWT_SECRET": secret, "WEBHOOK_SECRET": "w"},
			wantErr: "CORS_ALLOWED_ORIGINS",
		},
		{
			name:    "memory storage",
			env:     map[string]string{"JWT_SECRET": secret, "WEBHOOK_SECRET": "w", "CORS_ALLOWED_ORIGINS": "https://a", "STORAGE_DRIVER": "memory"},
			wantErr: "STORAGE_DRIVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetAll(t)
			t.Setenv("APP_ENV", EnvProduction)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromEnv_Production(t *testing.T) {
	unsetAll(t)
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("WEBHOOK_SECRET", "hook")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://swipeshare.app, https://admin.swipeshare.app ,")
	t.Setenv("DISPUTE_WINDOW", "48h")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"https://swipeshare.app", "https://admin.swipeshare.app"}, cfg.AllowedOrigins)
	assert.Equal(t, 48*time.Hour, cfg.DisputeWindow)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad duration":   {"STORAGE_TIMEOUT": "soon"},
		"bad number":     {"RATE_LIMIT_LIMIT": "many"},
		"zero timeout":   {"STORAGE_TIMEOUT": "0s"},
		"bad timezone":   {"NOTIFY_TIMEZONE": "Mars/Olympus"},
		"unknown driver": {"STORAGE_DRIVER": "sqlite"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			unsetAll(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
