package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, 5, cfg.DatabaseConnectRetryCount)
	assert.Equal(t, 2*time.Second, cfg.DatabaseConnectRetryDelay)
	assert.NotEmpty(t, cfg.Hostname)
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv("BIBLIOCAT_SERVER_PORT", "9999")
	t.Setenv("BIBLIOCAT_DATABASE_DEBUG", "true")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.ServerPort)
	assert.True(t, cfg.DatabaseDebug)
}

func TestNewTestEnvironmentUsesMemoryDatabase(t *testing.T) {
	t.Setenv("BIBLIOCAT_ENVIRONMENT", "test")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DatabaseFilePath)
}
