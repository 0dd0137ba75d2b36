package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/todo.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Database.TimeoutSeconds)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 30, cfg.RateLimit.PerMinute)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, 60, cfg.Backup.IntervalMinutes)
	assert.False(t, cfg.Debug)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TODO_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("TODO_AUTH_JWTSECRET", "super-secret")
	t.Setenv("TODO_AUTH_TOKENTTLHOURS", "48")
	t.Setenv("TODO_DATABASE_PATH", "/var/lib/todo/todo.db")
	t.Setenv("TODO_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 48, cfg.Auth.TokenTTLHours)
	assert.Equal(t, "/var/lib/todo/todo.db", cfg.Database.Path)
	assert.True(t, cfg.Debug)
}
