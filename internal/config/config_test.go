package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/autopilot")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/autopilot", cfg.DatabaseURL)
}

func TestNewServerConfig_CustomPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/autopilot")

	cfg, err := NewServerConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestNewServerConfig_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("DATABASE_URL", "postgres://localhost/autopilot")

	cfg, err := NewServerConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestNewServerConfig_PortOutOfRange(t *testing.T) {
	t.Setenv("PORT", "70000")
	t.Setenv("DATABASE_URL", "postgres://localhost/autopilot")

	cfg, err := NewServerConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "PORT out of range")
}

func TestNewServerConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := NewServerConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}
