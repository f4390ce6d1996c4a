package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "8081", cfg.WebPort)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, "9091", cfg.WebMetricsPort)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, 10, cfg.DBConnAttempts)

	assert.Error(t, cfg.CheckServer())
	assert.Error(t, cfg.CheckWeb())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://u:p@localhost:5432/purchase")
	t.Setenv("SERVER_PORT", "18080")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("DB_CONN_ATTEMPTS", "0")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("SESSION_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "18080", cfg.ServerPort)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, 1, cfg.DBConnAttempts)
	assert.True(t, cfg.SeedDemo)
	assert.NoError(t, cfg.CheckServer())
	assert.NoError(t, cfg.CheckWeb())
}
